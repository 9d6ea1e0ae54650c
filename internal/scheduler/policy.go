package scheduler

import (
	"slices"
	"strings"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// Policy derives day and time-of-day rules from a class section code.
// Sections containing B are Saturday classes, C Sunday classes and M evening
// classes.
type Policy struct {
	cfg *Configuration
}

func NewPolicy(cfg *Configuration) Policy {
	return Policy{cfg: cfg}
}

func isEvening(section string) bool {
	return strings.Contains(section, "M")
}

func isWeekend(section string) bool {
	return strings.ContainsAny(section, "BC")
}

// AllowedDays returns the weekdays a section may be taught on.
func (p Policy) AllowedDays(section string) []model.Day {
	switch {
	case strings.Contains(section, "B"):
		return []model.Day{model.Saturday}
	case strings.Contains(section, "C"):
		return []model.Day{model.Sunday}
	}
	return model.Week
}

// Window returns the time-of-day window. The evening rule wins over the
// weekend rule.
func (p Policy) Window(section string) model.Interval {
	switch {
	case isEvening(section):
		return p.cfg.EveningWindow
	case isWeekend(section):
		return p.cfg.WeekendWindow
	}
	return p.cfg.DaytimeWindow
}

// DailyCap returns how many sessions a section may hold on one day.
func (p Policy) DailyCap(section string) int {
	if isEvening(section) || isWeekend(section) {
		return p.cfg.ExtendedDailyCap
	}
	return p.cfg.RegularDailyCap
}

// EligibleDays intersects requested days with the allowed ones, keeping the
// requested order.
func (p Policy) EligibleDays(section string, requested []model.Day) []model.Day {
	allowed := p.AllowedDays(section)
	var days []model.Day
	for _, d := range requested {
		if slices.Contains(allowed, d) {
			days = append(days, d)
		}
	}
	return days
}
