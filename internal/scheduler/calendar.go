package scheduler

import (
	"slices"
	"strings"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

type EntityKind int

const (
	KindLecturer EntityKind = iota
	KindSection
	KindRoom
)

func (k EntityKind) String() string {
	switch k {
	case KindLecturer:
		return "lecturer"
	case KindSection:
		return "section"
	case KindRoom:
		return "room"
	}
	return "unknown"
}

// EntityKey identifies a lecturer, section or room in the calendar. The kind
// keeps a lecturer and a room with the same name apart.
type EntityKey struct {
	Kind EntityKind
	ID   string
}

func LecturerKey(id string) EntityKey { return EntityKey{Kind: KindLecturer, ID: id} }
func SectionKey(id string) EntityKey  { return EntityKey{Kind: KindSection, ID: id} }
func RoomKey(id string) EntityKey     { return EntityKey{Kind: KindRoom, ID: id} }

// Calendar records committed intervals per day and entity. It only grows.
type Calendar struct {
	days map[model.Day]map[EntityKey][]model.Interval
}

func NewCalendar() *Calendar {
	return &Calendar{days: make(map[model.Day]map[EntityKey][]model.Interval)}
}

// Conflict reports whether iv overlaps anything committed for key on day.
func (c *Calendar) Conflict(day model.Day, key EntityKey, iv model.Interval) bool {
	for _, committed := range c.days[day][key] {
		if committed.Overlaps(iv) {
			return true
		}
	}
	return false
}

// Commit records iv for key on day. Callers check Conflict first.
func (c *Calendar) Commit(day model.Day, key EntityKey, iv model.Interval) {
	entities, ok := c.days[day]
	if !ok {
		entities = make(map[EntityKey][]model.Interval)
		c.days[day] = entities
	}
	entities[key] = append(entities[key], iv)
}

// Intervals returns a copy of the intervals committed for key on day.
func (c *Calendar) Intervals(day model.Day, key EntityKey) []model.Interval {
	return slices.Clone(c.days[day][key])
}

// Days returns the days holding at least one commit.
func (c *Calendar) Days() []model.Day {
	days := make([]model.Day, 0, len(c.days))
	for d := range c.days {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// Keys returns the entities with commits on day, sorted by kind then id.
func (c *Calendar) Keys(day model.Day) []EntityKey {
	keys := make([]EntityKey, 0, len(c.days[day]))
	for k := range c.days[day] {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b EntityKey) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return keys
}
