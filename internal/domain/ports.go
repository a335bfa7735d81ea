package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// EventSink receives booking events after the in-memory state has changed.
// Sinks are outbound only; hotel state is never rebuilt from them.
type EventSink interface {
	Record(ctx context.Context, e Event) error
}

type EventKind string

const (
	EventRoomAdded            EventKind = "room.added"
	EventReservationCreated   EventKind = "reservation.created"
	EventReservationCancelled EventKind = "reservation.cancelled"
	EventFeedbackReceived     EventKind = "feedback.received"
)

type Event struct {
	ID            uuid.UUID `json:"id"`
	Kind          EventKind `json:"kind"`
	ReservationID int       `json:"reservation_id,omitempty"`
	GuestID       int       `json:"guest_id,omitempty"`
	RoomID        int       `json:"room_id,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	At            time.Time `json:"at"`
}

func NewEvent(kind EventKind) Event {
	return Event{ID: uuid.New(), Kind: kind, At: time.Now().UTC()}
}

// AuditReader reads back recorded events, newest first.
type AuditReader interface {
	ListEvents(ctx context.Context, reservationID int, limit int) ([]Event, error)
}
