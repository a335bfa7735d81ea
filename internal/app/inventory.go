package app

import (
	"sync"

	"hotel_reservation/internal/domain"
)

// Inventory is the process-wide booking state shared by the command and query
// services. The domain Hotel is not safe for concurrent use, so every access
// goes through mu; this keeps the availability check and the booking in
// MakeReservation atomic.
type Inventory struct {
	mu          sync.Mutex
	hotel       *domain.Hotel
	guests      map[int]*domain.Guest
	feedbackSeq int
	generation  uint64 // bumped on every room availability change
	guestVer    map[int]uint64
}

func NewInventory(h *domain.Hotel) *Inventory {
	return &Inventory{hotel: h, guests: map[int]*domain.Guest{}, guestVer: map[int]uint64{}}
}

// touchGuest bumps the guest's cache version and returns the previous one.
// Callers hold mu.
func (inv *Inventory) touchGuest(id int) uint64 {
	prev := inv.guestVer[id]
	inv.guestVer[id] = prev + 1
	return prev
}

func (inv *Inventory) availableCount() int {
	return len(inv.hotel.SearchAvailableRooms(domain.RoomFilter{}))
}
