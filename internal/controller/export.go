package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
	"github.com/muurk/mallas/internal/page"
)

// Export file parameters.
const (
	ExportFileName = "simulacion_mallas.csv"
	ExportMIME     = "text/csv;charset=utf-8;"
)

var currentToken = regexp.MustCompile(`[\d.-]+`)

// CurrentToken extracts the first numeric-looking run from a result text,
// e.g. "2.182" from "2.182 A".
func CurrentToken(text string) (string, bool) {
	tok := currentToken.FindString(text)
	return tok, tok != ""
}

// BuildCSV renders the parameters and, when present, the mesh currents.
//
//	Parámetro,Valor
//	R1,2Ω
//	V1,12V
//
//	Resultados,Corriente
//	Malla 1,2.182A
//
// Result entries without a numeric token are skipped.
func BuildCSV(fields []form.Field, results []page.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Parámetro", "Valor"}}
	for _, f := range fields {
		records = append(records, []string{f.Name, f.Display()})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write parameters: %w", err)
	}

	if len(results) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("\n")
	records = [][]string{{"Resultados", "Corriente"}}
	for i, r := range results {
		tok, ok := CurrentToken(r.Text)
		if !ok {
			logging.Warn("Result has no numeric value, skipped",
				zap.Int("mesh", i+1),
				zap.String("text", r.Text),
			)
			continue
		}
		records = append(records, []string{fmt.Sprintf("Malla %d", i+1), tok + "A"})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write results: %w", err)
	}

	return buf.Bytes(), nil
}

// ResultsText is the clipboard rendering of the results.
func ResultsText(results []page.Result) string {
	var b strings.Builder
	b.WriteString(form.ResultsClipboardHdr)
	b.WriteString("\n\n")
	for i, r := range results {
		b.WriteString(fmt.Sprintf("Malla %d: %s\n", i+1, r.Text))
	}
	return b.String()
}

// Exporter turns the current page into a CSV download or clipboard text.
type Exporter struct {
	fields   FieldSurface
	results  ResultSurface
	out      Downloader
	clip     Clipboard
	feedback *FeedbackRenderer
}

// NewExporter creates an exporter. clip may be nil, in which case copying
// always fails with a clipboard error.
func NewExporter(fields FieldSurface, results ResultSurface, out Downloader, clip Clipboard, feedback *FeedbackRenderer) *Exporter {
	return &Exporter{fields: fields, results: results, out: out, clip: clip, feedback: feedback}
}

// ExportCSV builds the CSV from the page and hands it to the downloader.
// A page with no fields yields the header line only.
func (e *Exporter) ExportCSV() ([]byte, error) {
	data, err := BuildCSV(e.fields.FormFields(), e.results.ResultEntries())
	if err != nil {
		return nil, NewExportError(err)
	}
	if err := e.out.Download(ExportFileName, ExportMIME, data); err != nil {
		return nil, NewExportError(err)
	}
	logging.Info("CSV exported", zap.String("file", ExportFileName), zap.Int("bytes", len(data)))
	return data, nil
}

// CopyResults writes the results to the clipboard and confirms with a
// notification. Failures are logged and returned, never shown.
func (e *Exporter) CopyResults() error {
	if e.clip == nil {
		err := NewClipboardError(fmt.Errorf("no clipboard available"))
		logging.Warn("Copy failed", zap.Error(err))
		return err
	}
	if err := e.clip.WriteAll(ResultsText(e.results.ResultEntries())); err != nil {
		cerr := NewClipboardError(err)
		logging.Warn("Copy failed", zap.Error(cerr))
		return cerr
	}
	e.feedback.ShowNotification(form.MsgResultsCopied)
	return nil
}
