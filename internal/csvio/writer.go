package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/lecture-scheduler/internal/report"
	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

const (
	ScheduleFile = "schedule.csv"
	SummaryFile  = "SUMMARY_COURSE_PER_CLASS.csv"
	FailuresFile = "FAILED_SCHEDULE.csv"
	PDFFile      = "schedule.pdf"
	LecturerDir  = "lecturers"
)

// writeFile marshals rows into a freshly truncated file at path.
func writeFile(path string, rows any) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()
	if err := gocsv.MarshalFile(rows, out); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportSchedule writes every placement, fallbacks included, to the CSV file
// at path.
func ExportSchedule(schedule *model.Schedule, path string) error {
	rows := report.Rows(schedule)
	return writeFile(path, &rows)
}

// ExportFailures writes the failure list to the CSV file at path.
func ExportFailures(schedule *model.Schedule, path string) error {
	rows := report.Failures(schedule)
	return writeFile(path, &rows)
}

// ExportScheduleString formats the schedule as CSV text.
func ExportScheduleString(schedule *model.Schedule) (string, error) {
	rows := report.Rows(schedule)
	return gocsv.MarshalString(&rows)
}

// ExportFailuresString formats the failure list as CSV text.
func ExportFailuresString(schedule *model.Schedule) (string, error) {
	rows := report.Failures(schedule)
	return gocsv.MarshalString(&rows)
}

// ExportViews writes the published views into dir: one file per major batch,
// one per lecturer under lecturers/, the course summary, the failure list
// and, when pdf is set, the PDF rendering. Returns the written paths.
func ExportViews(schedule *model.Schedule, dir string, pdf bool) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(dir, LecturerDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	var written []string
	write := func(path string, rows any) error {
		if err := writeFile(path, rows); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if err := write(filepath.Join(dir, ScheduleFile), ptr(report.Rows(schedule))); err != nil {
		return written, err
	}
	for _, g := range report.ByBatch(schedule) {
		if err := write(filepath.Join(dir, g.Key+".csv"), &g.Rows); err != nil {
			return written, err
		}
	}
	for _, g := range report.ByLecturer(schedule) {
		if err := write(filepath.Join(dir, LecturerDir, g.Key+".csv"), &g.Rows); err != nil {
			return written, err
		}
	}
	if err := write(filepath.Join(dir, SummaryFile), ptr(report.CourseSummary(schedule))); err != nil {
		return written, err
	}
	if err := write(filepath.Join(dir, FailuresFile), ptr(report.Failures(schedule))); err != nil {
		return written, err
	}

	if pdf {
		data, err := report.NewPDFRenderer("Lecture schedule").Render(schedule)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, PDFFile)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func ptr[T any](v T) *T { return &v }

// PrintSchedule prints the weekly schedule grouped by major batch.
func PrintSchedule(w io.Writer, schedule *model.Schedule) {
	order := make(map[string]int, len(model.Week)+1)
	for i, d := range model.Week {
		order[string(d)] = i
	}
	order[string(model.DayOnline)] = len(model.Week)

	printed := 0
	for _, g := range report.ByBatch(schedule) {
		rows := slices.Clone(g.Rows)
		slices.SortStableFunc(rows, func(a, b *model.ScheduleCSVRow) int {
			if day := order[a.Day] - order[b.Day]; day != 0 {
				return day
			}
			if t := strings.Compare(a.Time, b.Time); t != 0 {
				return t
			}
			return strings.Compare(a.Class, b.Class)
		})
		fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(g.Key))/2), g.Key, strings.Repeat("-", int(0.5+(32-float32(len(g.Key)))/2.0)))
		for _, r := range rows {
			fmt.Fprintf(w, "%-10s %-12s %-7s %-8s %-9s %s\n", r.Day, r.Time, r.Class, r.Room, r.Status, r.Course)
			printed++
		}
	}
	fmt.Fprintf(w, "Printed rows: %d\n", printed)
}
