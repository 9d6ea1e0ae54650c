package model

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusOnline    Status = "ONLINE"
)

// Outcome is the terminal state of one (session, section) pair.
type Outcome int

const (
	OutcomeScheduled Outcome = iota
	OutcomeOverflow          // real day and room, ends after the overflow cut-off
	OutcomeFallback          // nothing feasible, nominal interval, not committed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScheduled:
		return "scheduled"
	case OutcomeOverflow:
		return "overflow"
	case OutcomeFallback:
		return "fallback"
	}
	return "unknown"
}

// Status maps the outcome onto the exported status tag.
func (o Outcome) Status() Status {
	if o == OutcomeScheduled {
		return StatusScheduled
	}
	return StatusOnline
}

type Placement struct {
	Lecturer string
	Course   string
	Section  string
	Day      Day
	Interval Interval
	Room     string
	Outcome  Outcome
}

// Status returns SCHEDULED or ONLINE.
func (p *Placement) Status() Status {
	return p.Outcome.Status()
}

type FailureRecord struct {
	Lecturer       string
	Course         string
	Section        string
	Reason         string
	AvailableDays  string
	AvailableTimes string
	Credits        int
}

// Schedule is the ordered result of one allocation pass.
type Schedule struct {
	Placements []*Placement
	Failures   []*FailureRecord
	Warnings   []string
}

// Count returns the number of placements with the given outcome.
func (s *Schedule) Count(o Outcome) int {
	n := 0
	for _, p := range s.Placements {
		if p.Outcome == o {
			n++
		}
	}
	return n
}

type ScheduleCSVRow struct {
	Lecturer string `csv:"Lecturer"`
	Course   string `csv:"Course"`
	Class    string `csv:"Class"`
	Day      string `csv:"Day"`
	Time     string `csv:"Time"`
	Room     string `csv:"Room"`
	Status   string `csv:"Status"`
}

type FailureCSVRow struct {
	Lecturer       string `csv:"Lecturer"`
	Course         string `csv:"Course"`
	Class          string `csv:"Class"`
	Reason         string `csv:"Reason"`
	AvailableDays  string `csv:"Available Day"`
	AvailableTimes string `csv:"Available Times"`
	Credits        int    `csv:"SKS"`
}

type SummaryCSVRow struct {
	Class   string `csv:"Class"`
	Courses string `csv:"Course"`
}

// Row formats a placement for export.
func (p *Placement) Row() *ScheduleCSVRow {
	return &ScheduleCSVRow{
		Lecturer: p.Lecturer,
		Course:   p.Course,
		Class:    p.Section,
		Day:      string(p.Day),
		Time:     p.Interval.String(),
		Room:     p.Room,
		Status:   string(p.Status()),
	}
}

// Row formats a failure record for export.
func (f *FailureRecord) Row() *FailureCSVRow {
	return &FailureCSVRow{
		Lecturer:       f.Lecturer,
		Course:         f.Course,
		Class:          f.Section,
		Reason:         f.Reason,
		AvailableDays:  f.AvailableDays,
		AvailableTimes: f.AvailableTimes,
		Credits:        f.Credits,
	}
}
