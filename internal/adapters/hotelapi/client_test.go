package hotelapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel_reservation/internal/adapters/hotelapi"
	"hotel_reservation/internal/app"
)

func TestClient_AddRoom_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/rooms" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// rejected before any work was done
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			var spec hotelapi.RoomSpec
			_ = json.NewDecoder(r.Body).Decode(&spec)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(app.RoomView{ID: spec.ID, Type: spec.Type, Available: true})
		}
	}))
	defer ts.Close()

	cl, err := hotelapi.New(ts.URL, 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.AddRoom(ctx, hotelapi.RoomSpec{ID: 101, Type: "Double"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != 101 || !got.Available {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_MutationNotRetriedAfter503(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cl, _ := hotelapi.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := cl.MakeReservation(ctx, app.ReservationRequest{GuestID: 1, RoomID: 101})
	if !errors.Is(err, hotelapi.ErrUnconfirmed) {
		t.Fatalf("expected ErrUnconfirmed, got %v", err)
	}
	if err := cl.CancelReservation(ctx, 1); !errors.Is(err, hotelapi.ErrUnconfirmed) {
		t.Fatalf("expected ErrUnconfirmed, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("mutations must be sent once each, got %d calls", n)
	}
}

func TestClient_SearchRetriedAfter503(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([]app.RoomView{{ID: 102, Type: "Single", Available: true}})
	}))
	defer ts.Close()

	cl, _ := hotelapi.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.SearchAvailableRooms(ctx, "Single", nil)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %+v %v", got, err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected one retry, got %d calls", n)
	}
}

func TestClient_Conflict(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Room Unavailable","status":409,"detail":"room 101: room unavailable"}`))
	}))
	defer ts.Close()

	cl, _ := hotelapi.New(ts.URL, 100)
	_, err := cl.MakeReservation(context.Background(), app.ReservationRequest{GuestID: 1, RoomID: 101})
	if !errors.Is(err, hotelapi.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestClient_Cancel404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, _ := hotelapi.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := cl.CancelReservation(ctx, 1); !errors.Is(err, hotelapi.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_SearchQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "Suite" || len(q["amenity"]) != 2 {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]app.RoomView{{ID: 201, Type: "Suite"}})
	}))
	defer ts.Close()

	cl, _ := hotelapi.New(ts.URL, 100)
	rooms, err := cl.SearchAvailableRooms(context.Background(), "Suite", []string{"WiFi", "TV"})
	if err != nil || len(rooms) != 1 {
		t.Fatalf("rooms=%+v err=%v", rooms, err)
	}
}
