package domain

import "fmt"

// Room is bookable inventory. A new room starts available; only BookRoom and
// CancelBooking change that.
type Room struct {
	ID        int
	Type      string
	Amenities map[string]struct{}
	booked    bool
}

func NewRoom(id int, roomType string, amenities ...string) *Room {
	set := make(map[string]struct{}, len(amenities))
	for _, a := range amenities {
		set[a] = struct{}{}
	}
	return &Room{ID: id, Type: roomType, Amenities: set}
}

func (r *Room) Available() bool { return !r.booked }

// BookRoom is idempotent.
func (r *Room) BookRoom() { r.booked = true }

func (r *Room) CancelBooking() { r.booked = false }

// HasAmenities reports whether every requested amenity is present.
func (r *Room) HasAmenities(want []string) bool {
	for _, a := range want {
		if _, ok := r.Amenities[a]; !ok {
			return false
		}
	}
	return true
}

func (r *Room) String() string { return fmt.Sprintf("Room %d", r.ID) }
