package main

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_site/internal/adapters/liteapi"
	"hotel_site/internal/adapters/observability"
	redisad "hotel_site/internal/adapters/redis"
	"hotel_site/internal/app"
	"hotel_site/internal/shared"
	"hotel_site/internal/site"
)

// warmer refreshes the cached hotel cards for every featured hotel so the home page
// renders without waiting on the provider.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	content, err := site.LoadContent(cfg.SiteContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load site content")
	}

	log.Info().
		Str("base", cfg.ProviderDataURL).
		Int("workers", cfg.Workers).
		Int("hotels", len(content.Featured.Hotels)).
		Msg("warmer starting")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	client, err := liteapi.New(cfg.ProviderDataURL, cfg.ProviderBookURL, cfg.ProviderKey, cfg.ProviderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider client")
	}
	catalog := app.NewCatalogService(client, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(max(cfg.Workers, 1)))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, h := range content.Featured.Hotels {
		if h.ID == "" {
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			card, err := catalog.Refresh(ctx, hotelID)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("id", hotelID).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("id", hotelID).Str("name", card.Name).Msg("warm ok")
		}(h.ID)
	}

	wg.Wait()
	log.Info().Int32("failed", failed.Load()).Msg("warming completed")
}
