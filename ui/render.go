package ui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"powerfit/internal/trials"
)

// SummaryMarkdown renders the sweep comparison as a markdown table
func SummaryMarkdown(sweep *trials.Sweep) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Estimator comparison\n\n")
	fmt.Fprintf(&b, "Sweep `%s`: true α = %g on [%g, %g], seed %d, %d trials per size.\n\n",
		sweep.ID, sweep.Config.Alpha, sweep.Config.Bounds.XMin, sweep.Config.Bounds.XMax,
		sweep.Config.Seed, sweep.Config.TrialsPerSize)

	b.WriteString("| n | graphical mean α | graphical MAE | MLE mean α | MLE MAE | graphical failures | MLE failures |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, s := range sweep.Summaries {
		fmt.Fprintf(&b, "| %d | %.4f | %.4f | %.4f | %.4f | %d | %d |\n",
			s.N, s.GraphicalMeanAlpha, s.GraphicalMAE, s.MLEMeanAlpha, s.MLEMAE,
			s.GraphicalFailures, s.MLEFailures)
	}

	return b.String()
}

// renderPage wraps the markdown report in a minimal HTML shell
func renderPage(sweep *trials.Sweep) []byte {
	md := "# Estimator comparison\n\nNo sweep has run yet. Hit `/api/sweep` to start one.\n"
	if sweep != nil {
		md = SummaryMarkdown(sweep)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	var page strings.Builder
	page.WriteString("<!DOCTYPE html><html><head><title>powerfit</title>")
	page.WriteString("<style>body{font-family:sans-serif;margin:2rem}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px}</style>")
	page.WriteString("</head><body>")
	page.Write(body)
	page.WriteString("</body></html>")
	return []byte(page.String())
}
