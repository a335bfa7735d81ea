package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrRoomUnavailable     = errors.New("room unavailable")
	ErrRoomNotFound        = errors.New("room not found")
	ErrGuestNotFound       = errors.New("guest not found")
	ErrGuestExists         = errors.New("guest already registered")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidPayment      = errors.New("invalid payment")
)
