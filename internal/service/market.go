package service

import (
	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/engine"
	"github.com/Urushihara24/exportum/internal/store"
)

// MarketService exposes the sweep trigger and the match listing.
type MarketService struct {
	market *store.MarketStore
	engine *engine.Engine
}

// NewMarketService creates a new MarketService.
func NewMarketService(market *store.MarketStore, eng *engine.Engine) *MarketService {
	return &MarketService{market: market, engine: eng}
}

// Sweep runs a full matching sweep and returns the number of matches
// created.
func (s *MarketService) Sweep() int {
	return s.engine.FullSweep()
}

// Matches returns all match records ordered by ID.
func (s *MarketService) Matches() []*domain.Match {
	return s.market.ListMatches()
}
