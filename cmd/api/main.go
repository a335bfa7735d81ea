package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	amqpad "hotel_reservation/internal/adapters/amqp"
	server "hotel_reservation/internal/adapters/http_server"
	"hotel_reservation/internal/adapters/observability"
	redisad "hotel_reservation/internal/adapters/redis"
	"hotel_reservation/internal/app"
	"hotel_reservation/internal/domain"
	"hotel_reservation/internal/shared"
	mysqlrepo "hotel_reservation/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	var opts []domain.Option
	if cfg.ReservationIDs == "monotonic" {
		opts = append(opts, domain.WithMonotonicIDs())
	}
	inv := app.NewInventory(domain.NewHotel(cfg.HotelName, opts...))

	// cache (optional)
	var cache domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable; caching disabled")
		_ = rc.Close()
	} else {
		defer rc.Close()
		cache = rc
	}

	// event sinks (optional)
	var sinks app.MultiSink
	var audit domain.AuditReader
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("audit database unavailable")
		}
		defer db.Close()
		log.Info().Msg("audit database connection ok")
		al := mysqlrepo.New(db)
		sinks = append(sinks, app.NamedSink{Name: "mysql", Sink: al})
		audit = al
	}
	if cfg.AMQPURL != "" {
		pub, err := amqpad.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp dial failed")
		}
		defer pub.Close()
		sinks = append(sinks, app.NamedSink{Name: "amqp", Sink: pub})
	}
	var sink domain.EventSink
	if len(sinks) > 0 {
		sink = sinks
	}

	b := app.NewBookingService(inv, cache, sink)
	q := app.NewQueryService(inv, cache, cfg.CacheTTL)

	// http
	reg := observability.InitRegistry()
	srv := server.New(server.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{B: b, Q: q, Audit: audit})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return observability.Serve(gctx, cfg.MetricsAddr, reg) })
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("hotel", cfg.HotelName).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
