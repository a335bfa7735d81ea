package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/domain"
)

type BookingService struct {
	inv   *Inventory
	cache domain.Cache
	sink  domain.EventSink
}

// NewBookingService wires the command side. cache and sink may be nil.
func NewBookingService(inv *Inventory, cache domain.Cache, sink domain.EventSink) *BookingService {
	return &BookingService{inv: inv, cache: cache, sink: sink}
}

type NewGuest struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactInfo   string `json:"contact_info"`
	LoyaltyStatus bool   `json:"loyalty_status"`
}

type PaymentInput struct {
	Method string  `json:"method"` // credit_card|card|cash
	Amount float64 `json:"amount"`
	// CardNumber or Currency, depending on Method.
	CardNumber string `json:"card_number,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

func (p PaymentInput) build() (domain.Payment, error) {
	detail := p.CardNumber
	if p.Method == domain.MethodCash {
		detail = p.Currency
	}
	return domain.NewPayment(p.Method, p.Amount, detail)
}

type ReservationRequest struct {
	GuestID  int          `json:"guest_id"`
	RoomID   int          `json:"room_id"`
	CheckIn  string       `json:"check_in"`
	CheckOut string       `json:"check_out"`
	Payment  PaymentInput `json:"payment"`
}

func (s *BookingService) AddRoom(ctx context.Context, id int, roomType string, amenities []string) RoomView {
	s.inv.mu.Lock()
	room := domain.NewRoom(id, roomType, amenities...)
	s.inv.hotel.AddRoom(room)
	s.inv.generation++
	view := roomView(room)
	observability.SetRoomsAvailable(s.inv.availableCount())
	s.inv.mu.Unlock()

	log.Info().Int("room", id).Str("type", roomType).Msg("room added")
	e := domain.NewEvent(domain.EventRoomAdded)
	e.RoomID = id
	s.record(ctx, e)
	return view
}

func (s *BookingService) RegisterGuest(ctx context.Context, in NewGuest) (GuestView, error) {
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	if _, ok := s.inv.guests[in.ID]; ok {
		return GuestView{}, fmt.Errorf("guest %d: %w", in.ID, domain.ErrGuestExists)
	}
	g := domain.NewGuest(in.ID, in.Name, in.Email, in.ContactInfo, in.LoyaltyStatus)
	s.inv.guests[in.ID] = g
	log.Info().Int("guest", in.ID).Msg("guest registered")
	return guestView(g), nil
}

func (s *BookingService) UpdateGuest(ctx context.Context, id int, u domain.GuestUpdate) (GuestView, error) {
	s.inv.mu.Lock()
	g, ok := s.inv.guests[id]
	if !ok {
		s.inv.mu.Unlock()
		return GuestView{}, fmt.Errorf("guest %d: %w", id, domain.ErrGuestNotFound)
	}
	g.UpdateInfo(u)
	view := guestView(g)
	prev := s.inv.touchGuest(id)
	s.inv.mu.Unlock()

	s.invalidateGuest(ctx, id, prev)
	return view, nil
}

// RecordPayment attaches a payment to the guest's ledger without booking anything.
func (s *BookingService) RecordPayment(ctx context.Context, guestID int, in PaymentInput) (PaymentView, error) {
	p, err := in.build()
	if err != nil {
		return PaymentView{}, err
	}
	s.inv.mu.Lock()
	g, ok := s.inv.guests[guestID]
	if !ok {
		s.inv.mu.Unlock()
		return PaymentView{}, fmt.Errorf("guest %d: %w", guestID, domain.ErrGuestNotFound)
	}
	g.AddPayment(p)
	prev := s.inv.touchGuest(guestID)
	s.inv.mu.Unlock()

	s.invalidateGuest(ctx, guestID, prev)
	return *paymentView(p), nil
}

// MakeReservation books a room for a registered guest. A room that is already
// taken yields ErrRoomUnavailable and leaves every record unchanged.
func (s *BookingService) MakeReservation(ctx context.Context, req ReservationRequest) (ReservationView, error) {
	pay, err := req.Payment.build()
	if err != nil {
		observability.ObserveReservation("rejected")
		return ReservationView{}, err
	}

	s.inv.mu.Lock()
	g, ok := s.inv.guests[req.GuestID]
	if !ok {
		s.inv.mu.Unlock()
		observability.ObserveReservation("rejected")
		return ReservationView{}, fmt.Errorf("guest %d: %w", req.GuestID, domain.ErrGuestNotFound)
	}
	room, ok := s.inv.hotel.Room(req.RoomID)
	if !ok {
		s.inv.mu.Unlock()
		observability.ObserveReservation("rejected")
		return ReservationView{}, fmt.Errorf("room %d: %w", req.RoomID, domain.ErrRoomNotFound)
	}
	res := s.inv.hotel.MakeReservation(g, room, req.CheckIn, req.CheckOut, pay)
	if res == nil {
		s.inv.mu.Unlock()
		observability.ObserveReservation("unavailable")
		log.Info().Int("room", req.RoomID).Int("guest", req.GuestID).Msg("room unavailable")
		return ReservationView{}, fmt.Errorf("room %d: %w", req.RoomID, domain.ErrRoomUnavailable)
	}
	s.inv.generation++
	prev := s.inv.touchGuest(req.GuestID)
	view := reservationView(res)
	observability.SetRoomsAvailable(s.inv.availableCount())
	s.inv.mu.Unlock()

	observability.ObserveReservation("created")
	log.Info().Int("reservation", view.ID).Int("room", view.RoomID).Int("guest", view.GuestID).Msg("reservation created")
	s.invalidateGuest(ctx, req.GuestID, prev)

	e := domain.NewEvent(domain.EventReservationCreated)
	e.ReservationID, e.GuestID, e.RoomID, e.Amount = view.ID, view.GuestID, view.RoomID, pay.Amount()
	s.record(ctx, e)
	return view, nil
}

// CancelReservation releases the room of the oldest reservation with the given id.
// Guest history keeps the cancelled reservation.
func (s *BookingService) CancelReservation(ctx context.Context, id int) error {
	s.inv.mu.Lock()
	res, ok := s.inv.hotel.FindReservation(id)
	if !ok {
		s.inv.mu.Unlock()
		observability.ObserveCancellation("not_found")
		return fmt.Errorf("reservation %d: %w", id, domain.ErrReservationNotFound)
	}
	if err := s.inv.hotel.CancelReservation(res); err != nil {
		s.inv.mu.Unlock()
		observability.ObserveCancellation("not_found")
		return err
	}
	s.inv.generation++
	observability.SetRoomsAvailable(s.inv.availableCount())
	s.inv.mu.Unlock()

	observability.ObserveCancellation("cancelled")
	log.Info().Int("reservation", id).Int("room", res.Room.ID).Msg("reservation cancelled")

	e := domain.NewEvent(domain.EventReservationCancelled)
	e.ReservationID, e.RoomID = id, res.Room.ID
	if res.Guest != nil {
		e.GuestID = res.Guest.ID
	}
	s.record(ctx, e)
	return nil
}

func (s *BookingService) LeaveFeedback(ctx context.Context, guestID int, comments string) (FeedbackView, error) {
	s.inv.mu.Lock()
	g, ok := s.inv.guests[guestID]
	if !ok {
		s.inv.mu.Unlock()
		return FeedbackView{}, fmt.Errorf("guest %d: %w", guestID, domain.ErrGuestNotFound)
	}
	s.inv.feedbackSeq++
	fb := domain.NewFeedback(s.inv.feedbackSeq, g, comments)
	g.AddFeedback(fb)
	view := feedbackView(fb)
	prev := s.inv.touchGuest(guestID)
	s.inv.mu.Unlock()

	s.invalidateGuest(ctx, guestID, prev)
	e := domain.NewEvent(domain.EventFeedbackReceived)
	e.GuestID, e.Detail = guestID, comments
	s.record(ctx, e)
	return view, nil
}

func (s *BookingService) record(ctx context.Context, e domain.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Record(ctx, e); err != nil {
		log.Warn().Err(err).Str("kind", string(e.Kind)).Str("event", e.ID.String()).Msg("event delivery failed")
	}
}

// invalidateGuest drops the view cached under the guest's previous version.
// Readers already use the new key; the delete only frees space early.
func (s *BookingService) invalidateGuest(ctx context.Context, id int, prev uint64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, guestKey(id, prev))
	}
}
