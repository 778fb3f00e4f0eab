package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotel_site/internal/adapters/http_server"
	"hotel_site/internal/adapters/liteapi"
	"hotel_site/internal/adapters/locale"
	"hotel_site/internal/adapters/observability"
	redisad "hotel_site/internal/adapters/redis"
	"hotel_site/internal/app"
	"hotel_site/internal/domain"
	"hotel_site/internal/shared"
	"hotel_site/internal/site"
	"hotel_site/internal/storage/memory"
	mysqlrepo "hotel_site/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// redis backs the hotel-card cache, and visitor state when STATE_BACKEND=redis
	var cache domain.Cache
	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable; hotel cards fetched live")
	} else {
		cache = rc
	}
	cancel()

	var state domain.StateStorage
	switch cfg.StateBackend {
	case "redis":
		if cache == nil {
			log.Fatal().Msg("STATE_BACKEND=redis but redis is unreachable")
		}
		state = rc
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		state = mysqlrepo.New(db)
	case "memory":
		state = memory.New()
	default:
		log.Fatal().Str("backend", cfg.StateBackend).Msg("unknown STATE_BACKEND")
	}
	log.Info().Str("backend", cfg.StateBackend).Msg("visitor state storage ready")

	// deps
	provider, err := liteapi.New(cfg.ProviderDataURL, cfg.ProviderBookURL, cfg.ProviderKey, cfg.ProviderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider client")
	}
	content, err := site.LoadContent(cfg.SiteContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load site content")
	}
	pages, err := site.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}

	// http
	srv := server.New(server.Options{SecureCookies: cfg.SecureCookies})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Booking:  app.NewBookingService(provider),
		Stores:   app.NewStores(state, cfg.DefaultCurrency),
		Catalog:  app.NewCatalogService(provider, cache, cfg.CacheTTL),
		Detector: locale.NewDetector(cfg.SupportedCurrencies),
		Content:  content,
		Pages:    pages,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("site listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
