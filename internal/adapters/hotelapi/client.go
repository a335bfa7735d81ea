// internal/adapters/hotelapi/client.go
package hotelapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/app"
)

// Client talks to the reservation API.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	ErrNotFound   = errors.New("hotelapi: not found")
	ErrConflict   = errors.New("hotelapi: conflict")
	ErrBadRequest = errors.New("hotelapi: bad request")
	// ErrUnconfirmed means a state-changing call failed in a way that does not
	// tell whether the server applied it. It is never retried.
	ErrUnconfirmed = errors.New("hotelapi: outcome unknown")
	errRetryBudget = errors.New("hotelapi: retries exhausted")
)

// ---- Public API ----

type RoomSpec struct {
	ID        int      `json:"id"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
}

func (c *Client) AddRoom(ctx context.Context, r RoomSpec) (app.RoomView, error) {
	var out app.RoomView
	return out, c.do(ctx, http.MethodPost, "/v1/rooms", "rooms", r, &out)
}

func (c *Client) SearchAvailableRooms(ctx context.Context, roomType string, amenities []string) ([]app.RoomView, error) {
	q := url.Values{}
	if roomType != "" {
		q.Set("type", roomType)
	}
	for _, a := range amenities {
		q.Add("amenity", a)
	}
	path := "/v1/rooms/available"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []app.RoomView
	return out, c.do(ctx, http.MethodGet, path, "rooms_available", nil, &out)
}

func (c *Client) RegisterGuest(ctx context.Context, g app.NewGuest) (app.GuestView, error) {
	var out app.GuestView
	return out, c.do(ctx, http.MethodPost, "/v1/guests", "guests", g, &out)
}

// MakeReservation returns ErrConflict when the room is already booked.
func (c *Client) MakeReservation(ctx context.Context, req app.ReservationRequest) (app.ReservationView, error) {
	var out app.ReservationView
	return out, c.do(ctx, http.MethodPost, "/v1/reservations", "reservations", req, &out)
}

func (c *Client) CancelReservation(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/v1/reservations/"+strconv.Itoa(id), "reservations", nil, nil)
}

// ---- Internals ----

// do performs one API call with client-side rate limiting, retries, and JSON decode into out.
// Every method is retried on 429, which the server sends before doing any work.
// Transport errors and 502/503/504 are retried only for GET and HEAD; the
// server may have applied a mutation before the gateway or timeout answered.
func (c *Client) do(ctx context.Context, method, path, endpoint string, in, out any) error {
	idempotent := method == http.MethodGet || method == http.MethodHead

	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-reservation-client/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("hotel_api", endpoint, 0, time.Since(start))
			if !idempotent {
				return fmt.Errorf("%w: %s %s: %v", ErrUnconfirmed, method, path, err)
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("hotel_api", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			var err error
			if out != nil {
				err = json.NewDecoder(resp.Body).Decode(out)
			}
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			return withDetail(resp, ErrNotFound)

		case http.StatusConflict:
			return withDetail(resp, ErrConflict)

		case http.StatusBadRequest:
			return withDetail(resp, ErrBadRequest)

		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !idempotent {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return fmt.Errorf("%w: %s %s: remote %d", ErrUnconfirmed, method, path, resp.StatusCode)
			}
			fallthrough

		case http.StatusTooManyRequests:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", errRetryBudget, lastErr)

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// withDetail closes the body and wraps sentinel with the server's problem detail.
func withDetail(resp *http.Response, sentinel error) error {
	defer resp.Body.Close()
	var p problem
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&p); err != nil || p.Detail == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, p.Detail)
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 100ms doubling per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
