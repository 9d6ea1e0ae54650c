package scheduler

import (
	"regexp"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

// Section codes start with a two-letter major prefix, optionally followed by
// the batch digits ("TI21B" -> "TI").
var sectionPrefix = regexp.MustCompile(`^([A-Z]{2})[0-9]*`)

// SectionPrefix extracts the major prefix. ok is false for codes that do not
// follow the grammar.
func SectionPrefix(section string) (prefix string, ok bool) {
	m := sectionPrefix.FindStringSubmatch(section)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type floor struct {
	number int
	rooms  []string
}

type building struct {
	name   string
	floors []*floor
}

func (b *building) floor(number int) *floor {
	for _, f := range b.floors {
		if f.number == number {
			return f
		}
	}
	return nil
}

// RoomIndex holds the room inventory in declared order and the per-prefix
// floor preferences.
type RoomIndex struct {
	buildings   []*building
	preferences map[string][]int
}

// NewRoomIndex groups rooms by building and floor in order of first
// appearance. Preferences map a section prefix to an ordered floor list.
func NewRoomIndex(rooms []*model.Room, preferences map[string][]int) *RoomIndex {
	ix := &RoomIndex{preferences: make(map[string][]int, len(preferences))}
	for prefix, floors := range preferences {
		ix.preferences[prefix] = append([]int(nil), floors...)
	}
	for _, r := range rooms {
		var b *building
		for _, existing := range ix.buildings {
			if existing.name == r.Building {
				b = existing
				break
			}
		}
		if b == nil {
			b = &building{name: r.Building}
			ix.buildings = append(ix.buildings, b)
		}
		f := b.floor(r.Floor)
		if f == nil {
			f = &floor{number: r.Floor}
			b.floors = append(b.floors, f)
		}
		f.rooms = append(f.rooms, r.ID)
	}
	return ix
}

// PreferredFloors returns the floor order for a section. Unknown or malformed
// prefixes yield no floors.
func (ix *RoomIndex) PreferredFloors(section string) []int {
	prefix, ok := SectionPrefix(section)
	if !ok {
		return nil
	}
	return ix.preferences[prefix]
}

// FindRoom returns the first room free for iv on day. Buildings are visited
// in declared order, floors in preference order, rooms in declared order.
func (ix *RoomIndex) FindRoom(cal *Calendar, day model.Day, iv model.Interval, section string) (string, bool) {
	floors := ix.PreferredFloors(section)
	for _, b := range ix.buildings {
		for _, number := range floors {
			f := b.floor(number)
			if f == nil {
				continue
			}
			for _, room := range f.rooms {
				if !cal.Conflict(day, RoomKey(room), iv) {
					return room, true
				}
			}
		}
	}
	return "", false
}

// DefaultPreferences returns the stock prefix to floor preferences.
func DefaultPreferences() map[string][]int {
	return map[string][]int{
		"TI": {3, 4},
		"SI": {3, 4},
		"DK": {4, 5},
		"SD": {2, 3},
		"HK": {3, 4},
		"ME": {4, 5},
		"EL": {4, 5},
	}
}
