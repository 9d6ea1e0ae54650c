package model

import "fmt"

// Room is one entry of the static room inventory.
type Room struct {
	Building string `csv:"building" validate:"required"`
	Floor    int    `csv:"floor_number"`
	ID       string `csv:"classroom_id" validate:"required"`
}

// NoRoom is the room shown for placements without a physical room.
const NoRoom = "-"

// DefaultRooms returns the stock inventory: building GD A with floors 2-5 of
// eight rooms each, building GD B with floors 3-5 of five rooms each.
func DefaultRooms() []*Room {
	var rooms []*Room
	add := func(building, prefix string, floors []int, perFloor int) {
		for _, floor := range floors {
			for i := 1; i <= perFloor; i++ {
				rooms = append(rooms, &Room{
					Building: building,
					Floor:    floor,
					ID:       roomID(prefix, floor, i),
				})
			}
		}
	}
	add("GD A", "A", []int{2, 3, 4, 5}, 8)
	add("GD B", "B", []int{3, 4, 5}, 5)
	return rooms
}

func roomID(prefix string, floor, n int) string {
	return fmt.Sprintf("%s%d-%d", prefix, floor, n)
}
