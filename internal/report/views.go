// Package report groups a finished schedule into the published views: per
// major batch, per lecturer, a course summary per section and the failure
// list, and renders them as PDF.
package report

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// OthersBatch collects sections whose code has no major-batch prefix.
const OthersBatch = "OTHERS"

// MaxSheetName is the longest lecturer sheet or file name.
const MaxSheetName = 31

var (
	batchPattern  = regexp.MustCompile(`^([A-Z]{2})([0-9]{2})`)
	sheetReplacer = strings.NewReplacer(`\`, "_", "/", "_", "*", "_", "?", "_", ":", "_", "[", "_", "]", "_")
)

// Group is a named slice of schedule rows.
type Group struct {
	Key  string
	Rows []*model.ScheduleCSVRow
}

// BatchKey maps a section code to its major and intake year: "TI21B" -> "TI2021".
func BatchKey(section string) string {
	m := batchPattern.FindStringSubmatch(strings.ToUpper(section))
	if m == nil {
		return OthersBatch
	}
	return m[1] + "20" + m[2]
}

// SheetName makes a lecturer name safe for a sheet or file name.
func SheetName(lecturer string) string {
	name := []rune(sheetReplacer.Replace(lecturer))
	if len(name) > MaxSheetName {
		name = name[:MaxSheetName]
	}
	return string(name)
}

// Rows formats every placement in schedule order.
func Rows(s *model.Schedule) []*model.ScheduleCSVRow {
	rows := make([]*model.ScheduleCSVRow, 0, len(s.Placements))
	for _, p := range s.Placements {
		rows = append(rows, p.Row())
	}
	return rows
}

// Failures formats every failure record in schedule order.
func Failures(s *model.Schedule) []*model.FailureCSVRow {
	rows := make([]*model.FailureCSVRow, 0, len(s.Failures))
	for _, f := range s.Failures {
		rows = append(rows, f.Row())
	}
	return rows
}

func groupBy(s *model.Schedule, key func(*model.Placement) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, p := range s.Placements {
		k := key(p)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, p.Row())
	}
	slices.SortStableFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Key, b.Key)
	})
	return groups
}

// ByBatch groups placements by major batch, in key order.
func ByBatch(s *model.Schedule) []Group {
	return groupBy(s, func(p *model.Placement) string { return BatchKey(p.Section) })
}

// ByLecturer groups placements by lecturer, in lecturer order. Keys are sheet
// names; lecturers that collide after sanitizing get a numeric suffix.
func ByLecturer(s *model.Schedule) []Group {
	groups := groupBy(s, func(p *model.Placement) string { return p.Lecturer })
	used := make(map[string]bool, len(groups))
	for i := range groups {
		name := SheetName(groups[i].Key)
		for n := 2; used[name]; n++ {
			suffix := "_" + strconv.Itoa(n)
			base := []rune(SheetName(groups[i].Key))
			if len(base)+len(suffix) > MaxSheetName {
				base = base[:MaxSheetName-len(suffix)]
			}
			name = string(base) + suffix
		}
		used[name] = true
		groups[i].Key = name
	}
	return groups
}

// CourseSummary lists, per section, the distinct course names taught to it.
func CourseSummary(s *model.Schedule) []*model.SummaryCSVRow {
	courses := make(map[string][]string)
	for _, p := range s.Placements {
		names := courses[p.Section]
		if p.Course != "" && !slices.Contains(names, p.Course) {
			names = append(names, p.Course)
		}
		courses[p.Section] = names
	}
	sections := make([]string, 0, len(courses))
	for section := range courses {
		sections = append(sections, section)
	}
	slices.Sort(sections)

	rows := make([]*model.SummaryCSVRow, 0, len(sections))
	for _, section := range sections {
		names := courses[section]
		slices.Sort(names)
		rows = append(rows, &model.SummaryCSVRow{Class: section, Courses: strings.Join(names, ", ")})
	}
	return rows
}
