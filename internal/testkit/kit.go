// Package testkit provides seeded fixtures for estimator gold-standard tests.
package testkit

import (
	"math/rand"

	"powerfit/domain/powerlaw"
	"powerfit/internal/sampler"
)

// SeededUniforms returns n deterministic uniforms in [0, 1)
func SeededUniforms(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	u := make([]float64, n)
	for i := range u {
		u[i] = rng.Float64()
	}
	return u
}

// PowerLawSample draws a deterministic bounded power-law sample. Panics on
// invalid fixture parameters; fixtures are meant to be correct by
// construction.
func PowerLawSample(seed int64, n int, b powerlaw.Bounds, alpha float64) powerlaw.Sample {
	s, err := sampler.Draw(sampler.Config{Bounds: b, Alpha: alpha, Seed: seed}, n)
	if err != nil {
		panic("testkit: bad fixture parameters: " + err.Error())
	}
	return s
}

// ReferenceBounds is the concrete scenario support used across tests
// (xmin=0.0001, xmax=10)
func ReferenceBounds() powerlaw.Bounds {
	return powerlaw.Bounds{XMin: 0.0001, XMax: 10.0}
}
