package scheduler

import (
	"fmt"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// Validate audits a finished pass: no entity is double booked, fallback
// placements left nothing in the calendar, no section exceeds its daily cap
// and every fallback has a failure record.
// Returns false and a message for invalid schedules.
func Validate(schedule *model.Schedule, cal *Calendar, cfg *Configuration) (bool, string) {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	policy := NewPolicy(cfg)
	var message string
	var valid bool = true
	var hasDoubleBooking bool = false
	var hasFallbackLeak bool = false
	var hasCapViolation bool = false

	for _, day := range cal.Days() {
		if day == model.DayOnline {
			hasFallbackLeak = true
			message += "- Calendar holds commits for " + string(model.DayOnline) + "\n"
			continue
		}
		for _, key := range cal.Keys(day) {
			ivs := cal.Intervals(day, key)
			for i := 0; i < len(ivs); i++ {
				for j := i + 1; j < len(ivs); j++ {
					if ivs[i].Overlaps(ivs[j]) {
						hasDoubleBooking = true
						message += fmt.Sprintf("- %s %s double booked on %s: %s and %s\n", key.Kind, key.ID, day, ivs[i], ivs[j])
					}
				}
			}
		}
	}

	fallbacks := 0
	perDay := make(map[sectionDay]int)
	for _, p := range schedule.Placements {
		if p.Outcome == model.OutcomeFallback {
			fallbacks++
			if p.Room != model.NoRoom || p.Day != model.DayOnline {
				hasFallbackLeak = true
				message += fmt.Sprintf("- Fallback %s %s holds day %s room %s\n", p.Section, p.Course, p.Day, p.Room)
			}
			continue
		}
		perDay[sectionDay{section: p.Section, day: p.Day}]++
	}
	for _, p := range schedule.Placements {
		key := sectionDay{section: p.Section, day: p.Day}
		n, ok := perDay[key]
		if !ok {
			continue
		}
		if limit := policy.DailyCap(p.Section); n > limit {
			hasCapViolation = true
			message += fmt.Sprintf("- Section %s has %d sessions on %s (cap %d)\n", p.Section, n, p.Day, limit)
		}
		delete(perDay, key)
	}

	if fallbacks != len(schedule.Failures) {
		hasFallbackLeak = true
		message += fmt.Sprintf("- %d fallback placements but %d failure records\n", fallbacks, len(schedule.Failures))
	}
	if fallbacks > 0 {
		message += fmt.Sprintf("- There are %d sessions without a room:\n", fallbacks)
		for _, f := range schedule.Failures {
			message += fmt.Sprintf("    %s %s %s %d\n", f.Section, f.Course, f.Lecturer, f.Credits)
		}
	}

	if hasCapViolation {
		valid = false
		message = "[FAIL]: Daily section cap check.\n" + message
	} else {
		message = "[  OK]: Daily section cap check.\n" + message
	}
	if hasFallbackLeak {
		valid = false
		message = "[FAIL]: Fallback isolation check.\n" + message
	} else {
		message = "[  OK]: Fallback isolation check.\n" + message
	}
	if hasDoubleBooking {
		valid = false
		message = "[FAIL]: Double booking check.\n" + message
	} else {
		message = "[  OK]: Double booking check.\n" + message
	}

	return valid, message
}
