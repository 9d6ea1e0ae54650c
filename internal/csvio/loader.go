package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/go-playground/validator/v10"

	"github.com/rhyrak/lecture-scheduler/internal/apperrors"
	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

var validate = validator.New()

func newReader(in io.Reader, delim rune) *csv.Reader {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true
	return r
}

func invalid(err error, format string, args ...any) *apperrors.Error {
	return apperrors.Wrap(err, apperrors.ErrInvalidInput.Code, apperrors.ErrInvalidInput.Status, fmt.Sprintf(format, args...))
}

// LoadSessions reads the teaching load table and normalizes every row.
// Rows without lecturer, course or sections, or with SKS below one, are
// rejected.
func LoadSessions(in io.Reader, delim rune) ([]*model.Session, error) {
	rows := []*model.SessionCSV{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rows); err != nil {
		return nil, invalid(err, "failed to parse session table")
	}

	sessions := make([]*model.Session, 0, len(rows))
	for i, row := range rows {
		s := model.NewSession(row)
		if err := validate.Struct(s); err != nil {
			// +2: header line and 1-based numbering
			return nil, invalid(err, "invalid session on line %d", i+2)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// LoadSessionsFile opens path and calls LoadSessions.
func LoadSessionsFile(path string, delim rune) ([]*model.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, invalid(err, "failed to open %s", path)
	}
	defer f.Close()
	return LoadSessions(f, delim)
}

// LoadRooms reads the room inventory. Row order is the declared search
// order.
func LoadRooms(in io.Reader, delim rune) ([]*model.Room, error) {
	rooms := []*model.Room{}
	if err := gocsv.UnmarshalCSV(newReader(in, delim), &rooms); err != nil {
		return nil, invalid(err, "failed to parse room inventory")
	}
	seen := make(map[string]bool, len(rooms))
	for i, r := range rooms {
		r.Building = strings.TrimSpace(r.Building)
		r.ID = strings.TrimSpace(r.ID)
		if err := validate.Struct(r); err != nil {
			return nil, invalid(err, "invalid room on line %d", i+2)
		}
		if seen[r.ID] {
			return nil, invalid(nil, "duplicate room %s on line %d", r.ID, i+2)
		}
		seen[r.ID] = true
	}
	return rooms, nil
}

// LoadRoomsFile opens path and calls LoadRooms.
func LoadRoomsFile(path string, delim rune) ([]*model.Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, invalid(err, "failed to open %s", path)
	}
	defer f.Close()
	return LoadRooms(f, delim)
}
