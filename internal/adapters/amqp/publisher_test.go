package amqpad

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"hotel_reservation/internal/domain"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { f.closed = true; return nil }

func TestPublisher_Record(t *testing.T) {
	ch := &fakeChannel{}
	p := newWithChannel(ch)

	e := domain.NewEvent(domain.EventReservationCreated)
	e.ReservationID, e.RoomID, e.GuestID, e.Amount = 1, 101, 1, 150
	if err := p.Record(context.Background(), e); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ch.exchange != Exchange || ch.key != "reservation.created" {
		t.Fatalf("routed to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.MessageId != e.ID.String() {
		t.Fatalf("unexpected publishing: %+v", ch.msg)
	}
	var got domain.Event
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("body: %v", err)
	}
	if got.RoomID != 101 || got.Kind != domain.EventReservationCreated {
		t.Fatalf("unexpected body: %+v", got)
	}

	if err := p.Close(); err != nil || !ch.closed {
		t.Fatalf("close: %v closed=%v", err, ch.closed)
	}
}

func TestPublisher_RecordError(t *testing.T) {
	boom := errors.New("channel closed")
	p := newWithChannel(&fakeChannel{err: boom})
	if err := p.Record(context.Background(), domain.NewEvent(domain.EventRoomAdded)); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}
