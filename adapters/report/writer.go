package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"powerfit/internal/errors"
	"powerfit/internal/trials"
)

// Writer renders a sweep comparison into a CSV or Excel workbook. The
// workbook variant carries the comparison chart; this is the downstream
// presentation layer, no estimation logic lives here.
type Writer struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewWriter creates a writer that picks the output format from the extension
func NewWriter(filePath string) *Writer {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Writer{filePath: filePath, fileType: fileType}
}

// Write renders the sweep to disk
func (w *Writer) Write(sweep *trials.Sweep) error {
	log.Printf("[Report] Writing %s sweep report: %s", w.fileType, w.filePath)
	start := time.Now()

	var err error
	switch w.fileType {
	case "csv":
		err = w.writeCSV(sweep)
	case "xlsx":
		err = w.writeExcel(sweep)
	default:
		err = errors.InvalidInput("unsupported report format: " + w.fileType)
	}
	if err != nil {
		return errors.ReportError(w.filePath, err)
	}

	log.Printf("[Report] Report written in %.2fms", float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

var summaryHeader = []string{
	"n", "trials",
	"graphical_mean_alpha", "graphical_mae", "graphical_failures",
	"mle_mean_alpha", "mle_mae", "mle_failures",
}

func (w *Writer) writeCSV(sweep *trials.Sweep) error {
	f, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range sweep.Summaries {
		row := []string{
			strconv.Itoa(s.N),
			strconv.Itoa(s.Trials),
			formatFloat(s.GraphicalMeanAlpha),
			formatFloat(s.GraphicalMAE),
			strconv.Itoa(s.GraphicalFailures),
			formatFloat(s.MLEMeanAlpha),
			formatFloat(s.MLEMAE),
			strconv.Itoa(s.MLEFailures),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeExcel(sweep *trials.Sweep) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	header := make([]interface{}, len(summaryHeader))
	for i, h := range summaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range sweep.Summaries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			s.N, s.Trials,
			s.GraphicalMeanAlpha, s.GraphicalMAE, s.GraphicalFailures,
			s.MLEMeanAlpha, s.MLEMAE, s.MLEFailures,
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := w.writeTrialsSheet(f, sweep); err != nil {
		return err
	}

	if len(sweep.Summaries) >= 2 {
		if err := w.addComparisonChart(f, summarySheet, len(sweep.Summaries)); err != nil {
			// Chart failure degrades to a plain table
			log.Printf("[Report] Warning: comparison chart skipped: %v", err)
		}
	}

	return f.SaveAs(w.filePath)
}

func (w *Writer) writeTrialsSheet(f *excelize.File, sweep *trials.Sweep) error {
	const sheet = "Trials"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{
		"n", "trial",
		"graphical_alpha", "graphical_sigma", "graphical_error",
		"mle_alpha", "mle_error",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, t := range sweep.Trials {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			t.N, t.Index,
			t.Graphical.Alpha, t.Graphical.Sigma, t.Graphical.Err,
			t.MLE.Alpha, t.MLE.Err,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// addComparisonChart draws mean estimated alpha per sample size for both
// estimators, the chart the reference notebook rendered downstream
func (w *Writer) addComparisonChart(f *excelize.File, sheet string, rows int) error {
	last := rows + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", sheet, last)

	return f.AddChart(sheet, "J2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$C$1", sheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheet, last),
			},
			{
				Name:       fmt.Sprintf("%s!$F$1", sheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$F$2:$F$%d", sheet, last),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Graphical vs MLE estimate by sample size"},
		},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
