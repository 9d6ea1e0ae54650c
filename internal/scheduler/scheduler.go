package scheduler

import (
	"go.uber.org/zap"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// Recorder receives allocation events, e.g. for metrics.
type Recorder interface {
	ObservePlacement(p *model.Placement)
	ObserveWarning()
}

type nopRecorder struct{}

func (nopRecorder) ObservePlacement(*model.Placement) {}
func (nopRecorder) ObserveWarning()                   {}

type sectionDay struct {
	section string
	day     model.Day
}

// Allocator places sessions one section at a time, first fit, in input
// order. It owns the calendar; earlier placements constrain later ones and
// nothing is ever revised. An Allocator is not safe for concurrent use.
type Allocator struct {
	cfg      *Configuration
	policy   Policy
	rooms    *RoomIndex
	calendar *Calendar
	daily    map[sectionDay]int
	logger   *zap.Logger
	recorder Recorder
}

func NewAllocator(cfg *Configuration, rooms *RoomIndex, logger *zap.Logger, recorder Recorder) *Allocator {
	if cfg == nil {
		cfg = NewDefaultConfiguration()
	}
	if cfg.SlotStep <= 0 {
		cfg.SlotStep = 10
	}
	if rooms == nil {
		rooms = NewRoomIndex(model.DefaultRooms(), DefaultPreferences())
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Allocator{
		cfg:      cfg,
		policy:   NewPolicy(cfg),
		rooms:    rooms,
		calendar: NewCalendar(),
		daily:    make(map[sectionDay]int),
		logger:   logger,
		recorder: recorder,
	}
}

// Calendar exposes the allocator's calendar.
func (a *Allocator) Calendar() *Calendar {
	return a.calendar
}

// Allocate runs the pass over sessions and returns one placement per
// (session, section), plus a failure record for every fallback. Calling it
// again continues on the same calendar.
func (a *Allocator) Allocate(sessions []*model.Session) *model.Schedule {
	schedule := &model.Schedule{}
	for _, session := range sessions {
		earliest, warn := ParseEarliestStart(session.AvailableTimes)
		for _, section := range session.Sections {
			if warn != nil {
				a.logger.Warn("ignoring available times constraint",
					zap.String("lecturer", session.Lecturer),
					zap.String("section", section),
					zap.String("available_times", session.AvailableTimes),
					zap.Error(warn))
				schedule.Warnings = append(schedule.Warnings, warn.Error())
				a.recorder.ObserveWarning()
			}
			p, failure := a.place(session, section, earliest)
			schedule.Placements = append(schedule.Placements, p)
			if failure != nil {
				schedule.Failures = append(schedule.Failures, failure)
			}
			a.recorder.ObservePlacement(p)
		}
	}
	a.logger.Info("allocation finished",
		zap.Int("placements", len(schedule.Placements)),
		zap.Int("scheduled", schedule.Count(model.OutcomeScheduled)),
		zap.Int("overflow", schedule.Count(model.OutcomeOverflow)),
		zap.Int("fallback", schedule.Count(model.OutcomeFallback)),
		zap.Int("warnings", len(schedule.Warnings)))
	return schedule
}

func (a *Allocator) place(session *model.Session, section string, earliest EarliestStart) (*model.Placement, *model.FailureRecord) {
	req := slotRequest{
		lecturer: session.Lecturer,
		section:  section,
		duration: session.Duration(),
		window:   a.policy.Window(section),
		earliest: earliest,
	}

	for _, day := range a.policy.EligibleDays(section, session.Days) {
		iv, ok := a.firstSlot(day, req)
		if !ok {
			continue
		}
		// A missing room or a full section gives up the whole day.
		room, ok := a.rooms.FindRoom(a.calendar, day, iv, section)
		if !ok {
			a.logger.Debug("no room", zap.String("section", section), zap.String("day", string(day)), zap.Stringer("time", iv))
			continue
		}
		key := sectionDay{section: section, day: day}
		if a.daily[key] >= a.policy.DailyCap(section) {
			a.logger.Debug("daily cap reached", zap.String("section", section), zap.String("day", string(day)))
			continue
		}

		a.calendar.Commit(day, LecturerKey(session.Lecturer), iv)
		a.calendar.Commit(day, SectionKey(section), iv)
		a.calendar.Commit(day, RoomKey(room), iv)
		a.daily[key]++

		outcome := model.OutcomeScheduled
		if iv.End > a.cfg.OverflowAfter {
			outcome = model.OutcomeOverflow
		}
		return &model.Placement{
			Lecturer: session.Lecturer,
			Course:   session.Course,
			Section:  section,
			Day:      day,
			Interval: iv,
			Room:     room,
			Outcome:  outcome,
		}, nil
	}

	open := req.window.Start
	fallback := &model.Placement{
		Lecturer: session.Lecturer,
		Course:   session.Course,
		Section:  section,
		Day:      model.DayOnline,
		Interval: model.Interval{Start: open, End: open.Add(req.duration)},
		Room:     model.NoRoom,
		Outcome:  model.OutcomeFallback,
	}
	failure := &model.FailureRecord{
		Lecturer:       session.Lecturer,
		Course:         session.Course,
		Section:        section,
		Reason:         a.cfg.FallbackReason,
		AvailableDays:  model.JoinDays(session.Days),
		AvailableTimes: session.AvailableTimes,
		Credits:        session.Credits,
	}
	return fallback, failure
}
