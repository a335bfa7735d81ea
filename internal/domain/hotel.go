package domain

import (
	"fmt"
	"strings"
)

// Hotel owns its rooms and the reservations made against them. It is not
// safe for concurrent use; callers that share a Hotel must serialize access.
type Hotel struct {
	Name         string
	rooms        []*Room
	reservations []*Reservation

	monotonic bool
	lastID    int
}

type Option func(*Hotel)

// WithMonotonicIDs assigns reservation ids from a counter that never repeats.
// Without it, ids are len(reservations)+1, which can reuse the id of a
// cancelled reservation or even of one still on the books.
func WithMonotonicIDs() Option {
	return func(h *Hotel) { h.monotonic = true }
}

func NewHotel(name string, opts ...Option) *Hotel {
	h := &Hotel{Name: name}
	for _, o := range opts {
		o(h)
	}
	return h
}

// AddRoom appends to the inventory. Duplicate ids are not rejected.
func (h *Hotel) AddRoom(r *Room) { h.rooms = append(h.rooms, r) }

func (h *Hotel) Rooms() []*Room { return append([]*Room(nil), h.rooms...) }

// Room returns the first room with the given id.
func (h *Hotel) Room(id int) (*Room, bool) {
	for _, r := range h.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

func (h *Hotel) Reservations() []*Reservation { return append([]*Reservation(nil), h.reservations...) }

// FindReservation returns the oldest reservation on the books with the given id.
func (h *Hotel) FindReservation(id int) (*Reservation, bool) {
	for _, r := range h.reservations {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// RoomFilter narrows a room search. A nil Type or nil Amenities means no constraint.
type RoomFilter struct {
	Type      *string
	Amenities []string
}

// SearchAvailableRooms returns available rooms matching f, in insertion order.
func (h *Hotel) SearchAvailableRooms(f RoomFilter) []*Room {
	var out []*Room
	for _, r := range h.rooms {
		if !r.Available() {
			continue
		}
		if f.Type != nil && r.Type != *f.Type {
			continue
		}
		if f.Amenities != nil && !r.HasAmenities(f.Amenities) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MakeReservation books room for guest. It returns nil, without side effects,
// when the room is already booked. The invoice and the reservation share an id.
func (h *Hotel) MakeReservation(g *Guest, room *Room, checkIn, checkOut string, p Payment) *Reservation {
	if !room.Available() {
		return nil
	}
	room.BookRoom()
	id := h.nextID()
	inv := NewInvoice(id, p, Charges{})
	res := NewReservation(id, g, room, checkIn, checkOut, inv)
	h.reservations = append(h.reservations, res)
	g.AddReservation(res)
	return res
}

func (h *Hotel) nextID() int {
	if !h.monotonic {
		return len(h.reservations) + 1
	}
	h.lastID++
	return h.lastID
}

// CancelReservation frees the reservation's room and drops it from the books.
// The room is freed before the lookup, so an unknown reservation still
// releases its room before ErrReservationNotFound is returned. Guest history
// is left untouched.
func (h *Hotel) CancelReservation(res *Reservation) error {
	res.Room.CancelBooking()
	for i, r := range h.reservations {
		if r == res {
			h.reservations = append(h.reservations[:i], h.reservations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cancel reservation %d: %w", res.ID, ErrReservationNotFound)
}

func (h *Hotel) String() string {
	names := make([]string, 0, len(h.rooms))
	for _, r := range h.rooms {
		names = append(names, "'"+r.String()+"'")
	}
	return fmt.Sprintf("Hotel %s - Rooms: [%s]", h.Name, strings.Join(names, ", "))
}
