package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/engine"
	"github.com/Urushihara24/exportum/internal/notify"
	"github.com/Urushihara24/exportum/internal/store"
)

// newTestServices wires the full service layer over empty in-memory
// stores at the default conversion rate.
func newTestServices() (*UserService, *BatchService, *PoolService, *MarketService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	us := store.NewUserStore(store.NopPersister{}, logger)
	bs := store.NewBatchStore(store.NopPersister{}, logger)
	ms := store.NewMarketStore(store.NopPersister{}, logger)
	rate := decimal.RequireFromString(domain.DefaultExchangeRate)
	eng := engine.NewEngine(bs, ms, notify.Nop{}, rate, logger)
	return NewUserService(us),
		NewBatchService(bs, us, eng),
		NewPoolService(ms, us, eng),
		NewMarketService(ms, eng)
}

func registerUser(t *testing.T, us *UserService, role string) *domain.User {
	t.Helper()
	u, err := us.Register(RegisterUserRequest{Name: "test " + role, Role: role})
	if err != nil {
		t.Fatalf("failed to register %s: %v", role, err)
	}
	return u
}

func wheatBatchRequest(producerID int64) CreateBatchRequest {
	return CreateBatchRequest{
		ProducerID: producerID,
		Commodity:  "wheat",
		Region:     "Omsk",
		Volume:     decimal.NewFromInt(40),
		Price:      decimal.NewFromInt(14500),
		Moisture:   13,
		Impurity:   1.5,
		Storage:    "elevator",
		ReadyAt:    time.Now(),
	}
}

func wheatPoolRequest(aggregatorID int64) CreatePoolRequest {
	return CreatePoolRequest{
		AggregatorID: aggregatorID,
		Commodity:    "wheat",
		TargetVolume: decimal.NewFromInt(100),
		Price:        decimal.NewFromInt(200),
		Port:         "Novorossiysk",
		MaxMoisture:  14,
		MinNature:    750,
		MaxImpurity:  2,
		MaxWeed:      1,
	}
}
