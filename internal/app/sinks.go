package app

import (
	"context"
	"errors"
	"fmt"

	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/domain"
)

type NamedSink struct {
	Name string
	Sink domain.EventSink
}

// MultiSink delivers each event to every sink, continuing past failures.
type MultiSink []NamedSink

func (m MultiSink) Record(ctx context.Context, e domain.Event) error {
	var errs []error
	for _, s := range m {
		err := s.Sink.Record(ctx, e)
		observability.ObserveEvent(s.Name, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}
