package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hotel_reservation/internal/domain"
)

type QueryService struct {
	inv      *Inventory
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(inv *Inventory, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{inv: inv, cache: c, cacheTTL: ttl}
}

// guestKey carries the guest's version; a view built before a mutation is
// stored under a key nobody reads again.
func guestKey(id int, ver uint64) string { return fmt.Sprintf("guest:%d:v%d", id, ver) }

// searchKey embeds the inventory generation, so a booking or cancellation
// makes older entries unreachable and they age out by TTL. Type matching is
// case-sensitive and amenity names may contain any byte, so parts are quoted.
func searchKey(gen uint64, f domain.RoomFilter) string {
	typ := "*"
	if f.Type != nil {
		typ = strconv.Quote(*f.Type)
	}
	amen := "*"
	if f.Amenities != nil {
		a := make([]string, len(f.Amenities))
		for i, v := range f.Amenities {
			a[i] = strconv.Quote(v)
		}
		sort.Strings(a)
		amen = "[" + strings.Join(a, ",") + "]"
	}
	return fmt.Sprintf("rooms:available:%d:%s:%s", gen, typ, amen)
}

func (s *QueryService) HotelSummary(ctx context.Context) HotelView {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	return hotelView(s.inv.hotel)
}

func (s *QueryService) SearchAvailableRooms(ctx context.Context, f domain.RoomFilter) ([]RoomView, error) {
	s.inv.mu.Lock()
	gen := s.inv.generation
	s.inv.mu.Unlock()

	key := searchKey(gen, f)
	var out []RoomView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	s.inv.mu.Lock()
	out = roomViews(s.inv.hotel.SearchAvailableRooms(f))
	gen = s.inv.generation
	s.inv.mu.Unlock()

	if s.cache != nil {
		_ = s.cache.Set(ctx, searchKey(gen, f), out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) GetGuest(ctx context.Context, id int) (GuestView, error) {
	var gv GuestView
	if s.cache != nil {
		s.inv.mu.Lock()
		ver := s.inv.guestVer[id]
		s.inv.mu.Unlock()
		if ok, _ := s.cache.Get(ctx, guestKey(id, ver), &gv); ok {
			return gv, nil
		}
	}

	s.inv.mu.Lock()
	g, ok := s.inv.guests[id]
	if ok {
		gv = guestView(g)
	}
	ver := s.inv.guestVer[id]
	s.inv.mu.Unlock()
	if !ok {
		return GuestView{}, fmt.Errorf("guest %d: %w", id, domain.ErrGuestNotFound)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, guestKey(id, ver), gv, int(s.cacheTTL.Seconds()))
	}
	return gv, nil
}

func (s *QueryService) ListReservations(ctx context.Context) []ReservationView {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	rs := s.inv.hotel.Reservations()
	out := make([]ReservationView, 0, len(rs))
	for _, r := range rs {
		out = append(out, reservationView(r))
	}
	return out
}

func (s *QueryService) GetReservation(ctx context.Context, id int) (ReservationView, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	r, ok := s.inv.hotel.FindReservation(id)
	if !ok {
		return ReservationView{}, fmt.Errorf("reservation %d: %w", id, domain.ErrReservationNotFound)
	}
	return reservationView(r), nil
}
