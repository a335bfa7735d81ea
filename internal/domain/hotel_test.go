package domain_test

import (
	"errors"
	"testing"

	"hotel_reservation/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func grandPlaza() (*domain.Hotel, *domain.Room, *domain.Room) {
	h := domain.NewHotel("Grand Plaza")
	r101 := domain.NewRoom(101, "Double", "WiFi")
	r102 := domain.NewRoom(102, "Single")
	h.AddRoom(r101)
	h.AddRoom(r102)
	return h, r101, r102
}

func TestRoom_BookThenCancelRoundTrip(t *testing.T) {
	r := domain.NewRoom(1, "Suite")
	if !r.Available() {
		t.Fatalf("new room should be available")
	}
	r.BookRoom()
	r.BookRoom()
	if r.Available() {
		t.Fatalf("booked room should be unavailable")
	}
	r.CancelBooking()
	if !r.Available() {
		t.Fatalf("room should be available after cancel")
	}
}

func TestMakeReservation_BooksRoom(t *testing.T) {
	h, r101, r102 := grandPlaza()
	alice := domain.NewGuest(1, "Alice", "alice@example.com", "555-0100", false)

	res := h.MakeReservation(alice, r101, "2025-01-01", "2025-01-03", domain.NewCashPayment(150, "USD"))
	if res == nil {
		t.Fatalf("expected reservation")
	}
	if res.Room != r101 || res.Guest != alice {
		t.Fatalf("reservation references wrong room/guest: %+v", res)
	}
	if r101.Available() {
		t.Fatalf("room 101 should be booked")
	}
	if res.ID != 1 || res.Invoice.ID != res.ID {
		t.Fatalf("unexpected ids: reservation %d invoice %d", res.ID, res.Invoice.ID)
	}
	if res.Invoice.TotalAmount != 0 {
		t.Fatalf("invoice built by booking should have zero total, got %v", res.Invoice.TotalAmount)
	}

	avail := h.SearchAvailableRooms(domain.RoomFilter{})
	if len(avail) != 1 || avail[0] != r102 {
		t.Fatalf("expected only room 102 available, got %v", avail)
	}
	if n := len(alice.Reservations()); n != 1 {
		t.Fatalf("guest history length = %d, want 1", n)
	}
	if n := len(h.Reservations()); n != 1 {
		t.Fatalf("hotel reservations = %d, want 1", n)
	}
}

func TestMakeReservation_UnavailableRoomReturnsNil(t *testing.T) {
	h, r101, _ := grandPlaza()
	alice := domain.NewGuest(1, "Alice", "", "", false)
	r101.BookRoom()

	if res := h.MakeReservation(alice, r101, "a", "b", domain.NewCashPayment(1, "USD")); res != nil {
		t.Fatalf("expected nil reservation, got %v", res)
	}
	if r101.Available() {
		t.Fatalf("room state must not change")
	}
	if len(h.Reservations()) != 0 || len(alice.Reservations()) != 0 {
		t.Fatalf("no reservation should be recorded")
	}
}

func TestCancelReservation(t *testing.T) {
	h, r101, _ := grandPlaza()
	alice := domain.NewGuest(1, "Alice", "", "", false)
	res := h.MakeReservation(alice, r101, "2025-01-01", "2025-01-03", domain.NewCashPayment(150, "USD"))

	if err := h.CancelReservation(res); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !r101.Available() {
		t.Fatalf("room 101 should be available again")
	}
	if len(h.Reservations()) != 0 {
		t.Fatalf("reservation should be removed from hotel")
	}
	// guest history is not touched by cancellation
	if len(alice.Reservations()) != 1 {
		t.Fatalf("guest history changed on cancel")
	}

	err := h.CancelReservation(res)
	if !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}

func TestCancelReservation_UnknownStillFreesRoom(t *testing.T) {
	h, r101, _ := grandPlaza()
	r101.BookRoom()
	stray := domain.NewReservation(9, domain.NewGuest(2, "Bob", "", "", false), r101, "", "", nil)

	if err := h.CancelReservation(stray); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
	if !r101.Available() {
		t.Fatalf("room is released before the lookup fails")
	}
}

func TestReservationIDs_LengthBasedCanCollide(t *testing.T) {
	h := domain.NewHotel("Grand Plaza")
	rooms := []*domain.Room{domain.NewRoom(1, "Single"), domain.NewRoom(2, "Single"), domain.NewRoom(3, "Single")}
	for _, r := range rooms {
		h.AddRoom(r)
	}
	g := domain.NewGuest(1, "Alice", "", "", false)
	pay := domain.NewCashPayment(10, "EUR")

	first := h.MakeReservation(g, rooms[0], "", "", pay)
	second := h.MakeReservation(g, rooms[1], "", "", pay)
	if err := h.CancelReservation(first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	third := h.MakeReservation(g, rooms[2], "", "", pay)
	if third.ID != second.ID {
		t.Fatalf("length-based ids: expected reuse of %d, got %d", second.ID, third.ID)
	}
}

func TestReservationIDs_Monotonic(t *testing.T) {
	h := domain.NewHotel("Grand Plaza", domain.WithMonotonicIDs())
	rooms := []*domain.Room{domain.NewRoom(1, "Single"), domain.NewRoom(2, "Single"), domain.NewRoom(3, "Single")}
	for _, r := range rooms {
		h.AddRoom(r)
	}
	g := domain.NewGuest(1, "Alice", "", "", false)
	pay := domain.NewCashPayment(10, "EUR")

	first := h.MakeReservation(g, rooms[0], "", "", pay)
	h.MakeReservation(g, rooms[1], "", "", pay)
	_ = h.CancelReservation(first)
	third := h.MakeReservation(g, rooms[2], "", "", pay)
	if third.ID != 3 {
		t.Fatalf("monotonic id = %d, want 3", third.ID)
	}
}

func TestSearchAvailableRooms_Filters(t *testing.T) {
	h := domain.NewHotel("Grand Plaza")
	suiteA := domain.NewRoom(201, "Suite", "WiFi", "TV", "Mini-bar")
	suiteB := domain.NewRoom(202, "Suite", "WiFi")
	double := domain.NewRoom(203, "Double", "WiFi", "TV")
	bookedSuite := domain.NewRoom(204, "Suite", "WiFi", "TV")
	bookedSuite.BookRoom()
	for _, r := range []*domain.Room{suiteA, suiteB, double, bookedSuite} {
		h.AddRoom(r)
	}

	tests := []struct {
		name   string
		filter domain.RoomFilter
		want   []*domain.Room
	}{
		{"no filter", domain.RoomFilter{}, []*domain.Room{suiteA, suiteB, double}},
		{"suite only", domain.RoomFilter{Type: ptr("Suite")}, []*domain.Room{suiteA, suiteB}},
		{"amenities", domain.RoomFilter{Amenities: []string{"WiFi", "TV"}}, []*domain.Room{suiteA, double}},
		{"suite with tv", domain.RoomFilter{Type: ptr("Suite"), Amenities: []string{"TV"}}, []*domain.Room{suiteA}},
		{"empty amenity list", domain.RoomFilter{Amenities: []string{}}, []*domain.Room{suiteA, suiteB, double}},
		{"unknown type", domain.RoomFilter{Type: ptr("Penthouse")}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := h.SearchAvailableRooms(tc.filter)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("position %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestHotelString(t *testing.T) {
	h, _, _ := grandPlaza()
	if got, want := h.String(), "Hotel Grand Plaza - Rooms: ['Room 101', 'Room 102']"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
