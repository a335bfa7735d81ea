package domain

import "fmt"

type Guest struct {
	ID            int
	Name          string
	Email         string
	ContactInfo   string
	LoyaltyStatus bool

	reservations []*Reservation
	payments     []Payment
	feedbacks    []*Feedback
}

func NewGuest(id int, name, email, contactInfo string, loyalty bool) *Guest {
	return &Guest{ID: id, Name: name, Email: email, ContactInfo: contactInfo, LoyaltyStatus: loyalty}
}

// GuestUpdate carries optional profile changes. A nil field is left alone;
// empty strings are treated as absent too. LoyaltyStatus distinguishes an
// explicit false from "not provided".
type GuestUpdate struct {
	Email         *string
	ContactInfo   *string
	LoyaltyStatus *bool
}

func (g *Guest) UpdateInfo(u GuestUpdate) {
	if u.Email != nil && *u.Email != "" {
		g.Email = *u.Email
	}
	if u.ContactInfo != nil && *u.ContactInfo != "" {
		g.ContactInfo = *u.ContactInfo
	}
	if u.LoyaltyStatus != nil {
		g.LoyaltyStatus = *u.LoyaltyStatus
	}
}

// AddReservation appends to the history without checking for duplicates.
func (g *Guest) AddReservation(r *Reservation) { g.reservations = append(g.reservations, r) }

func (g *Guest) AddPayment(p Payment) { g.payments = append(g.payments, p) }

func (g *Guest) AddFeedback(f *Feedback) { g.feedbacks = append(g.feedbacks, f) }

func (g *Guest) Reservations() []*Reservation { return append([]*Reservation(nil), g.reservations...) }

func (g *Guest) Payments() []Payment { return append([]Payment(nil), g.payments...) }

func (g *Guest) Feedbacks() []*Feedback { return append([]*Feedback(nil), g.feedbacks...) }

func (g *Guest) String() string { return fmt.Sprintf("Guest %d - %s", g.ID, g.Name) }
