package ports

// UniformSource produces independent uniform draws in [0, 1).
// *math/rand.Rand satisfies it; tests substitute fixed sequences.
type UniformSource interface {
	Float64() float64
}

// FixedUniforms is a UniformSource replaying a predefined sequence.
// It wraps around when exhausted.
type FixedUniforms struct {
	Values []float64
	next   int
}

func (f *FixedUniforms) Float64() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return v
}
