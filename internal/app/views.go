package app

import (
	"sort"

	"hotel_reservation/internal/domain"
)

// Views are the JSON-safe projections of the domain graph: ids instead of
// back-references, so they can be cached and encoded.

type RoomView struct {
	ID        int      `json:"id"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
	Available bool     `json:"available"`
}

type PaymentView struct {
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	CardLast4 string  `json:"card_last4,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Summary   string  `json:"summary"`
}

type InvoiceView struct {
	ID           int          `json:"id"`
	NightlyRate  float64      `json:"nightly_rate"`
	ExtraCharges float64      `json:"extra_charges"`
	Discount     float64      `json:"discount"`
	TotalAmount  float64      `json:"total_amount"`
	Payment      *PaymentView `json:"payment,omitempty"`
}

type ReservationView struct {
	ID        int          `json:"id"`
	GuestID   int          `json:"guest_id"`
	GuestName string       `json:"guest_name"`
	RoomID    int          `json:"room_id"`
	CheckIn   string       `json:"check_in"`
	CheckOut  string       `json:"check_out"`
	Invoice   *InvoiceView `json:"invoice,omitempty"`
	Summary   string       `json:"summary"`
}

type FeedbackView struct {
	ID       int    `json:"id"`
	GuestID  int    `json:"guest_id"`
	Comments string `json:"comments"`
	Summary  string `json:"summary"`
}

type GuestView struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	ContactInfo    string         `json:"contact_info"`
	LoyaltyStatus  bool           `json:"loyalty_status"`
	ReservationIDs []int          `json:"reservation_ids"`
	Payments       []PaymentView  `json:"payments"`
	Feedback       []FeedbackView `json:"feedback"`
	Summary        string         `json:"summary"`
}

type HotelView struct {
	Name         string     `json:"name"`
	Rooms        []RoomView `json:"rooms"`
	Reservations int        `json:"reservations"`
	Summary      string     `json:"summary"`
}

func roomView(r *domain.Room) RoomView {
	amen := make([]string, 0, len(r.Amenities))
	for a := range r.Amenities {
		amen = append(amen, a)
	}
	sort.Strings(amen)
	return RoomView{ID: r.ID, Type: r.Type, Amenities: amen, Available: r.Available()}
}

func roomViews(rs []*domain.Room) []RoomView {
	out := make([]RoomView, 0, len(rs))
	for _, r := range rs {
		out = append(out, roomView(r))
	}
	return out
}

func paymentView(p domain.Payment) *PaymentView {
	if p == nil {
		return nil
	}
	pv := &PaymentView{Method: p.Method(), Amount: p.Amount(), Summary: p.String()}
	switch v := p.(type) {
	case *domain.CreditCardPayment:
		pv.CardLast4 = v.LastFour()
	case *domain.CashPayment:
		pv.Currency = v.Currency
	}
	return pv
}

func invoiceView(i *domain.Invoice) *InvoiceView {
	if i == nil {
		return nil
	}
	return &InvoiceView{
		ID:           i.ID,
		NightlyRate:  i.NightlyRate,
		ExtraCharges: i.ExtraCharges,
		Discount:     i.Discount,
		TotalAmount:  i.TotalAmount,
		Payment:      paymentView(i.Payment),
	}
}

func reservationView(r *domain.Reservation) ReservationView {
	v := ReservationView{
		ID:       r.ID,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Invoice:  invoiceView(r.Invoice),
		Summary:  r.String(),
	}
	if r.Guest != nil {
		v.GuestID, v.GuestName = r.Guest.ID, r.Guest.Name
	}
	if r.Room != nil {
		v.RoomID = r.Room.ID
	}
	return v
}

func feedbackView(f *domain.Feedback) FeedbackView {
	v := FeedbackView{ID: f.ID, Comments: f.Comments, Summary: f.String()}
	if f.Guest != nil {
		v.GuestID = f.Guest.ID
	}
	return v
}

func guestView(g *domain.Guest) GuestView {
	v := GuestView{
		ID:             g.ID,
		Name:           g.Name,
		Email:          g.Email,
		ContactInfo:    g.ContactInfo,
		LoyaltyStatus:  g.LoyaltyStatus,
		ReservationIDs: []int{},
		Payments:       []PaymentView{},
		Feedback:       []FeedbackView{},
		Summary:        g.String(),
	}
	for _, r := range g.Reservations() {
		v.ReservationIDs = append(v.ReservationIDs, r.ID)
	}
	for _, p := range g.Payments() {
		v.Payments = append(v.Payments, *paymentView(p))
	}
	for _, f := range g.Feedbacks() {
		v.Feedback = append(v.Feedback, feedbackView(f))
	}
	return v
}

func hotelView(h *domain.Hotel) HotelView {
	return HotelView{
		Name:         h.Name,
		Rooms:        roomViews(h.Rooms()),
		Reservations: len(h.Reservations()),
		Summary:      h.String(),
	}
}
