package model

import "strings"

// MinutesPerCredit is the teaching time of one credit unit (sks).
const MinutesPerCredit = 50

// SessionCSV is one row of the teaching load table.
type SessionCSV struct {
	Lecturer       string `csv:"DOSEN"`
	Course         string `csv:"Mata Kuliah"`
	Sections       string `csv:"Kelas"`
	Credits        int    `csv:"SKS"`
	AvailableDays  string `csv:"Available Day"`
	AvailableTimes string `csv:"Available Times"`
}

// Session is a normalized teaching load entry. A session may list several
// class sections sharing lecturer, course and credit load.
type Session struct {
	Lecturer       string   `validate:"required"`
	Course         string   `validate:"required"`
	Sections       []string `validate:"required,min=1,dive,required"`
	Credits        int      `validate:"min=1"`
	Days           []Day
	AvailableTimes string `validate:"required"`
}

// NewSession normalizes a raw row: missing days and times default to ALL,
// everything constraint-like is upper-cased, the section list is split and
// trimmed.
func NewSession(row *SessionCSV) *Session {
	times := strings.ToUpper(strings.TrimSpace(row.AvailableTimes))
	if times == "" {
		times = AllSentinel
	}
	var sections []string
	for _, s := range strings.Split(strings.ToUpper(row.Sections), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sections = append(sections, s)
		}
	}
	return &Session{
		Lecturer:       strings.TrimSpace(row.Lecturer),
		Course:         strings.TrimSpace(row.Course),
		Sections:       sections,
		Credits:        row.Credits,
		Days:           ParseDays(row.AvailableDays),
		AvailableTimes: times,
	}
}

// Duration returns the session length in minutes.
func (s *Session) Duration() int {
	return s.Credits * MinutesPerCredit
}
