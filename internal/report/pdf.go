package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

var (
	scheduleHeaders = []string{"Lecturer", "Course", "Class", "Day", "Time", "Room", "Status"}
	scheduleWidths  = []float64{52, 64, 24, 28, 32, 22, 26}
	failureHeaders  = []string{"Lecturer", "Course", "Class", "Reason", "Available Day", "Available Times", "SKS"}
	failureWidths   = []float64{40, 46, 20, 70, 54, 32, 12}
)

// PDFRenderer renders a schedule as one table per major batch followed by
// the failure list. ONLINE rows are highlighted.
type PDFRenderer struct {
	Title     string
	Highlight [3]int
}

func NewPDFRenderer(title string) *PDFRenderer {
	return &PDFRenderer{Title: title, Highlight: [3]int{255, 255, 0}}
}

func (r *PDFRenderer) Render(s *model.Schedule) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetFillColor(r.Highlight[0], r.Highlight[1], r.Highlight[2])
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, g := range ByBatch(s) {
		pdf.AddPage()
		r.heading(pdf, tr, g.Key)
		tableHeader(pdf, tr, scheduleHeaders, scheduleWidths)
		pdf.SetFont("Arial", "", 8)
		for _, row := range g.Rows {
			fill := row.Status == string(model.StatusOnline)
			cells := []string{row.Lecturer, row.Course, row.Class, row.Day, row.Time, row.Room, row.Status}
			for i, c := range cells {
				pdf.CellFormat(scheduleWidths[i], 6, tr(c), "1", 0, "", fill, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.AddPage()
	r.heading(pdf, tr, "FAILED_SCHEDULE")
	tableHeader(pdf, tr, failureHeaders, failureWidths)
	pdf.SetFont("Arial", "", 8)
	for _, f := range Failures(s) {
		cells := []string{f.Lecturer, f.Course, f.Class, f.Reason, f.AvailableDays, f.AvailableTimes, strconv.Itoa(f.Credits)}
		for i, c := range cells {
			pdf.CellFormat(failureWidths[i], 6, tr(c), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) heading(pdf *gofpdf.Fpdf, tr func(string) string, section string) {
	pdf.SetFont("Arial", "B", 13)
	title := section
	if r.Title != "" {
		title = strings.ToUpper(r.Title) + " - " + section
	}
	pdf.CellFormat(0, 9, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func tableHeader(pdf *gofpdf.Fpdf, tr func(string) string, headers []string, widths []float64) {
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}
