package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_reservation/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/v1/rooms/available", "GET", 200, 12*time.Millisecond)
	observability.ObserveReservation("created")
	observability.ObserveCancellation("not_found")
	observability.ObserveEvent("mysql", errors.New("boom"))
	observability.SetRoomsAvailable(3)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"hotel_http_requests_total",
		`hotel_reservations_total{outcome="created"}`,
		`hotel_cancellations_total{outcome="not_found"}`,
		`hotel_events_published_total{sink="mysql",status="error"}`,
		"hotel_rooms_available 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
