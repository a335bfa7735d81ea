package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_reservation/internal/adapters/hotelapi"
	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/shared"
)

// defaultRooms mirrors the two-room demo hotel.
var defaultRooms = []hotelapi.RoomSpec{
	{ID: 101, Type: "Double", Amenities: []string{"WiFi"}},
	{ID: 102, Type: "Single", Amenities: []string{}},
}

func loadRooms(path string) ([]hotelapi.RoomSpec, error) {
	if path == "" {
		return defaultRooms, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rooms []hotelapi.RoomSpec
	if err := json.Unmarshal(b, &rooms); err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, errors.New("seed file contains no rooms")
	}
	return rooms, nil
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	rooms, err := loadRooms(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("failed to load rooms")
	}
	log.Info().
		Str("base", cfg.APIBaseURL).
		Int("workers", cfg.SeedWorkers).
		Int("rooms", len(rooms)).
		Msg("seeder starting")

	client, err := hotelapi.New(cfg.APIBaseURL, cfg.RateLimitRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}

	workers := cfg.SeedWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, room := range rooms {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(r hotelapi.RoomSpec) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := client.AddRoom(ctx, r); err != nil {
				failed.Add(1)
				log.Warn().Int("room", r.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int("room", r.ID).Str("type", r.Type).Msg("room seeded")
		}(room)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("seeding incomplete")
	}
	log.Info().Msg("seeding completed")
}
