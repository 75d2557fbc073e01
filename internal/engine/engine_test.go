package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/notify"
	"github.com/Urushihara24/exportum/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine wires an engine over empty in-memory stores at the
// default conversion rate (75 local per reference unit).
func newTestEngine() (*Engine, *store.BatchStore, *store.MarketStore) {
	logger := testLogger()
	bs := store.NewBatchStore(store.NopPersister{}, logger)
	ms := store.NewMarketStore(store.NopPersister{}, logger)
	rate := decimal.RequireFromString(domain.DefaultExchangeRate)
	e := NewEngine(bs, ms, notify.Nop{}, rate, logger)
	return e, bs, ms
}

func newWheatBatch(producerID int64, volume, price int64, moisture, impurity float64) *domain.Batch {
	return &domain.Batch{
		ProducerID:  producerID,
		Commodity:   domain.CommodityWheat,
		Region:      "Omsk",
		Volume:      decimal.NewFromInt(volume),
		Price:       decimal.NewFromInt(price),
		Moisture:    moisture,
		Impurity:    impurity,
		Grade:       domain.ComputeGrade(moisture, impurity),
		Storage:     domain.StorageElevator,
		ReadyAt:     time.Now(),
		Status:      domain.BatchStatusActive,
		Attachments: []domain.Attachment{},
		CreatedAt:   time.Now(),
	}
}

// newWheatPool returns an open pool for 100 t of wheat at 200/t
// reference, ceilings 14% moisture and 2% impurity.
func newWheatPool(aggregatorID int64) *domain.Pool {
	return &domain.Pool{
		AggregatorID: aggregatorID,
		Commodity:    domain.CommodityWheat,
		TargetVolume: decimal.NewFromInt(100),
		Price:        decimal.NewFromInt(200),
		Port:         "Novorossiysk",
		MaxMoisture:  14,
		MinNature:    750,
		MaxImpurity:  2,
		MaxWeed:      1,
		Documents:    []string{},
		Status:       domain.PoolStatusOpen,
		CreatedAt:    time.Now(),
	}
}
