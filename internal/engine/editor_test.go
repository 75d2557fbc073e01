package engine

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Urushihara24/exportum/internal/domain"
)

func TestEditBatch_AppliesUnderLock(t *testing.T) {
	e, bs, _ := newTestEngine()

	b := newWheatBatch(1, 40, 14500, 13, 1.5)
	bs.Create(b)

	got, err := e.EditBatch(b.ID, func(b *domain.Batch) error {
		b.Region = "Altai"
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Region != "Altai" {
		t.Fatalf("expected Altai, got %s", got.Region)
	}
}

func TestEditBatch_NotFound(t *testing.T) {
	e, _, _ := newTestEngine()

	_, err := e.EditBatch(99, func(*domain.Batch) error { return nil })
	if !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestEditBatch_ErrorAborts(t *testing.T) {
	e, bs, _ := newTestEngine()

	b := newWheatBatch(1, 40, 14500, 13, 1.5)
	bs.Create(b)

	boom := errors.New("boom")
	if _, err := e.EditBatch(b.ID, func(*domain.Batch) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected the fn error back, got %v", err)
	}
}

func TestEditBatch_SerializesConcurrentEdits(t *testing.T) {
	e, bs, _ := newTestEngine()

	b := newWheatBatch(1, 40, 14500, 13, 1.5)
	bs.Create(b)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.EditBatch(b.ID, func(b *domain.Batch) error {
				b.Attachments = append(b.Attachments, domain.Attachment{ID: fmt.Sprintf("doc-%d", i)})
				return nil
			})
			if err != nil {
				t.Errorf("edit %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if len(b.Attachments) != n {
		t.Fatalf("expected %d attachments, got %d (lost updates)", n, len(b.Attachments))
	}
}

func TestEditPool_NotFound(t *testing.T) {
	e, _, _ := newTestEngine()

	_, err := e.EditPool(99, func(*domain.Pool) error { return nil })
	if !errors.Is(err, domain.ErrPoolNotFound) {
		t.Fatalf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestDeleteBatch_FnRejects(t *testing.T) {
	e, bs, _ := newTestEngine()

	b := newWheatBatch(1, 40, 14500, 13, 1.5)
	bs.Create(b)

	if err := e.DeleteBatch(b.ID, func(*domain.Batch) error { return domain.ErrBatchNotOwned }); !errors.Is(err, domain.ErrBatchNotOwned) {
		t.Fatalf("expected ErrBatchNotOwned, got %v", err)
	}
	if _, err := bs.Get(b.ID); err != nil {
		t.Fatalf("expected batch to survive a rejected delete, got %v", err)
	}

	if err := e.DeleteBatch(b.ID, func(*domain.Batch) error { return nil }); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := bs.Get(b.ID); !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound after delete, got %v", err)
	}
}
