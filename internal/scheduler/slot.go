package scheduler

import (
	"fmt"
	"strings"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// EarliestStart is the parsed lower bound from the free-text available-times
// column. Set is false when there is no usable bound.
type EarliestStart struct {
	At  model.Clock
	Set bool
}

// ParseEarliestStart reads the leading "HH:MM" token (up to the first "-")
// of an available-times constraint. ALL means no bound. A token that cannot
// be parsed also means no bound and comes back with a non-nil warning.
func ParseEarliestStart(constraint string) (EarliestStart, error) {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || constraint == model.AllSentinel {
		return EarliestStart{}, nil
	}
	token, _, _ := strings.Cut(constraint, "-")
	at, err := model.ParseClock(token)
	if err != nil {
		return EarliestStart{}, fmt.Errorf("failed to parse available times %q: %w", constraint, err)
	}
	return EarliestStart{At: at, Set: true}, nil
}

type slotRequest struct {
	lecturer string
	section  string
	duration int
	window   model.Interval
	earliest EarliestStart
}

// firstSlot scans the window in SlotStep increments and returns the earliest
// interval on day that fits the window, avoids the breaks, respects the
// earliest start and is free for both lecturer and section.
func (a *Allocator) firstSlot(day model.Day, req slotRequest) (model.Interval, bool) {
	for start := req.window.Start; start < req.window.End; start = start.Add(a.cfg.SlotStep) {
		iv := model.Interval{Start: start, End: start.Add(req.duration)}
		if iv.End > req.window.End || inBreak(a.cfg.Breaks, iv) {
			continue
		}
		if req.earliest.Set && start < req.earliest.At {
			continue
		}
		if a.calendar.Conflict(day, LecturerKey(req.lecturer), iv) {
			continue
		}
		if a.calendar.Conflict(day, SectionKey(req.section), iv) {
			continue
		}
		return iv, true
	}
	return model.Interval{}, false
}
