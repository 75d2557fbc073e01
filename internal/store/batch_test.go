package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
)

func newTestBatch(producerID int64, commodity domain.Commodity) *domain.Batch {
	return &domain.Batch{
		ProducerID:  producerID,
		Commodity:   commodity,
		Region:      "Omsk",
		Volume:      decimal.NewFromInt(40),
		Price:       decimal.NewFromInt(14500),
		Moisture:    13,
		Impurity:    1.5,
		Grade:       domain.ComputeGrade(13, 1.5),
		Storage:     domain.StorageElevator,
		ReadyAt:     time.Now(),
		Status:      domain.BatchStatusActive,
		Attachments: []domain.Attachment{},
		CreatedAt:   time.Now(),
	}
}

func TestBatchStore_Create_and_Get(t *testing.T) {
	s := NewBatchStore(NopPersister{}, testLogger())

	b := newTestBatch(1, domain.CommodityWheat)
	s.Create(b)

	if b.ID != 1 {
		t.Fatalf("expected first batch to get ID 1, got %d", b.ID)
	}

	got, err := s.Get(b.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Commodity != domain.CommodityWheat {
		t.Fatalf("expected wheat, got %s", got.Commodity)
	}
}

func TestBatchStore_Get_NotFound(t *testing.T) {
	s := NewBatchStore(NopPersister{}, testLogger())

	_, err := s.Get(7)
	if err != domain.ErrBatchNotFound {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestBatchStore_ListByProducer_InsertionOrder(t *testing.T) {
	s := NewBatchStore(NopPersister{}, testLogger())

	s.Create(newTestBatch(1, domain.CommodityWheat))
	s.Create(newTestBatch(2, domain.CommodityBarley))
	s.Create(newTestBatch(1, domain.CommodityCorn))

	list := s.ListByProducer(1)
	if len(list) != 2 {
		t.Fatalf("expected 2 batches for producer 1, got %d", len(list))
	}
	if list[0].Commodity != domain.CommodityWheat || list[1].Commodity != domain.CommodityCorn {
		t.Fatalf("unexpected order: %s, %s", list[0].Commodity, list[1].Commodity)
	}

	if got := s.ListByProducer(99); len(got) != 0 {
		t.Fatalf("expected no batches for unknown producer, got %d", len(got))
	}
}

func TestBatchStore_ListActive_FiltersByStatus(t *testing.T) {
	s := NewBatchStore(NopPersister{}, testLogger())

	a := newTestBatch(1, domain.CommodityWheat)
	b := newTestBatch(1, domain.CommodityWheat)
	s.Create(a)
	s.Create(b)
	b.Status = domain.BatchStatusSold

	active := s.ListActive()
	if len(active) != 1 {
		t.Fatalf("expected 1 active batch, got %d", len(active))
	}
	if active[0].ID != a.ID {
		t.Fatalf("expected batch %d, got %d", a.ID, active[0].ID)
	}
}

func TestBatchStore_Delete(t *testing.T) {
	s := NewBatchStore(NopPersister{}, testLogger())

	b := newTestBatch(1, domain.CommodityWheat)
	s.Create(b)

	if err := s.Delete(b.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := s.Get(b.ID); err != domain.ErrBatchNotFound {
		t.Fatalf("expected ErrBatchNotFound after delete, got %v", err)
	}
	if got := s.ListByProducer(1); len(got) != 0 {
		t.Fatalf("expected producer index to be empty, got %d entries", len(got))
	}

	if err := s.Delete(b.ID); err != domain.ErrBatchNotFound {
		t.Fatalf("expected ErrBatchNotFound on double delete, got %v", err)
	}
}

func TestBatchStore_ReloadReseedsIDCounter(t *testing.T) {
	p, err := NewFilePersister(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	s := NewBatchStore(p, testLogger())
	s.Create(newTestBatch(1, domain.CommodityWheat))
	s.Create(newTestBatch(2, domain.CommodityBarley))

	s2 := NewBatchStore(p, testLogger())
	got, err := s2.Get(2)
	if err != nil {
		t.Fatalf("expected batch 2 after reload, got %v", err)
	}
	if got.Commodity != domain.CommodityBarley {
		t.Fatalf("expected barley, got %s", got.Commodity)
	}

	b := newTestBatch(1, domain.CommodityCorn)
	s2.Create(b)
	if b.ID != 3 {
		t.Fatalf("expected next ID 3 after reload, got %d", b.ID)
	}
}
