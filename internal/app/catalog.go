package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_site/internal/domain"
)

const featuredParallelism = 4

// CatalogService serves hotel cards for the marketing pages, cache-aside over the provider.
type CatalogService struct {
	provider domain.Provider
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewCatalogService accepts a nil cache; every card is then fetched live.
func NewCatalogService(p domain.Provider, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{provider: p, cache: c, cacheTTL: ttl}
}

func cardKey(id string) string { return fmt.Sprintf("hotel-card:%s", id) }

func (s *CatalogService) Card(ctx context.Context, id string) (domain.HotelCard, error) {
	var card domain.HotelCard
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, cardKey(id), &card)
		if err == nil && ok {
			return card, nil
		}
		if err != nil {
			// unreadable entry: refetch and overwrite it
			log.Warn().Str("hotel", id).Err(err).Msg("hotel card cache read failed")
		}
	}
	return s.Refresh(ctx, id)
}

// Refresh fetches the card from the provider and overwrites any cached copy.
func (s *CatalogService) Refresh(ctx context.Context, id string) (domain.HotelCard, error) {
	raw, err := s.provider.GetHotelDetails(ctx, id)
	if err != nil {
		return domain.HotelCard{}, err
	}
	card, err := mapCard(id, raw)
	if err != nil {
		return domain.HotelCard{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cardKey(id), card, int(s.cacheTTL.Seconds()))
	}
	return card, nil
}

// Featured resolves the editorial cards against live data, keeping input order.
// A hotel the provider cannot serve keeps its editorial card.
func (s *CatalogService) Featured(ctx context.Context, editorial []domain.HotelCard) []domain.HotelCard {
	out := make([]domain.HotelCard, len(editorial))
	copy(out, editorial)

	var g errgroup.Group
	g.SetLimit(featuredParallelism)
	for i, fb := range editorial {
		i, fb := i, fb
		if fb.ID == "" {
			continue
		}
		g.Go(func() error {
			live, err := s.Card(ctx, fb.ID)
			if err != nil {
				log.Warn().Str("hotel", fb.ID).Err(err).Msg("featured hotel: using editorial card")
				return nil
			}
			out[i] = mergeCard(fb, live)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
