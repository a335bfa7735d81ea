package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"hotel_reservation/internal/domain"
)

func valInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func valF64(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// AuditLog is an append-only record of booking events. It is never read back
// into the hotel's in-memory state.
type AuditLog struct{ db *sql.DB }

func New(db *sql.DB) *AuditLog { return &AuditLog{db: db} }

func (a *AuditLog) Record(ctx context.Context, e domain.Event) error {
	_, err := a.db.ExecContext(ctx, insertEventSQL,
		e.ID.String(),
		string(e.Kind),
		valInt(e.ReservationID),
		valInt(e.GuestID),
		valInt(e.RoomID),
		valF64(e.Amount),
		valStr(e.Detail),
		e.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	return nil
}

func (a *AuditLog) ListEvents(ctx context.Context, reservationID int, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx, listEventsSQL, reservationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e                      domain.Event
			id, kind               string
			resID, guestID, roomID sql.NullInt64
			amount                 sql.NullFloat64
			detail                 sql.NullString
		)
		if err := rows.Scan(&id, &kind, &resID, &guestID, &roomID, &amount, &detail, &e.At); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("event id %q: %w", id, err)
		}
		e.Kind = domain.EventKind(kind)
		e.ReservationID = int(resID.Int64)
		e.GuestID = int(guestID.Int64)
		e.RoomID = int(roomID.Int64)
		e.Amount = amount.Float64
		e.Detail = detail.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
