package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_reservation/internal/adapters/redis"
	"hotel_reservation/internal/app"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var miss app.GuestView
	if ok, err := c.Get(ctx, "guest:1", &miss); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := app.GuestView{ID: 1, Name: "Alice", ReservationIDs: []int{1}, Summary: "Guest 1 - Alice"}
	if err := c.Set(ctx, "guest:1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("hotel:guest:1") {
		t.Fatalf("expected prefixed key in redis")
	}

	var out app.GuestView
	ok, err := c.Get(ctx, "guest:1", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Name != "Alice" || len(out.ReservationIDs) != 1 {
		t.Fatalf("unexpected view: %+v", out)
	}

	if err := c.Del(ctx, "guest:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("hotel:guest:1") {
		t.Fatalf("key should be gone")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	rooms := []app.RoomView{{ID: 101, Type: "Double", Amenities: []string{"WiFi"}, Available: true}}
	if err := c.Set(ctx, "rooms:available:0:*:*", rooms, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var out []app.RoomView
	if ok, _ := c.Get(ctx, "rooms:available:0:*:*", &out); ok {
		t.Fatalf("entry should have expired")
	}
}
