package domain

import "fmt"

// Reservation binds a guest to a room for a stay. Guest and Room are shared
// references; the invoice belongs to the reservation. CheckIn and CheckOut
// are kept as supplied by the caller.
type Reservation struct {
	ID       int
	Guest    *Guest
	Room     *Room
	CheckIn  string
	CheckOut string
	Invoice  *Invoice
}

func NewReservation(id int, g *Guest, r *Room, checkIn, checkOut string, inv *Invoice) *Reservation {
	return &Reservation{ID: id, Guest: g, Room: r, CheckIn: checkIn, CheckOut: checkOut, Invoice: inv}
}

func (r *Reservation) String() string {
	return fmt.Sprintf("Reservation %d - Invoice: %v", r.ID, r.Invoice)
}
