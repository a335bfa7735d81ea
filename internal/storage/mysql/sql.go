package mysql

// Inserts are idempotent on the event id so a retried delivery is harmless.
const insertEventSQL = `
INSERT INTO booking_events
  (id, kind, reservation_id, guest_id, room_id, amount, detail, occurred_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id = id
`

// Reservation ids can repeat under length-based numbering, so the log is
// ordered by time and an id may match events from different stays.
const listEventsSQL = `
SELECT id, kind, reservation_id, guest_id, room_id, amount, detail, occurred_at
FROM booking_events
WHERE reservation_id = ?
ORDER BY occurred_at DESC, recorded_at DESC
LIMIT ?
`
