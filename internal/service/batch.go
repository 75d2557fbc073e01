package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/engine"
	"github.com/Urushihara24/exportum/internal/store"
)

// CreateBatchRequest represents the input for batch creation.
type CreateBatchRequest struct {
	ProducerID int64
	Commodity  string
	Region     string
	Volume     decimal.Decimal
	Price      decimal.Decimal
	Moisture   float64
	Impurity   float64
	Storage    string
	ReadyAt    time.Time
}

// UpdateBatchRequest represents owner field edits. Nil fields are left
// unchanged. Status is not editable here; see UpdateStatus.
type UpdateBatchRequest struct {
	Region   *string
	Volume   *decimal.Decimal
	Price    *decimal.Decimal
	Moisture *float64
	Impurity *float64
	Storage  *string
	ReadyAt  *time.Time
}

// BatchService handles batch lifecycle operations and triggers the
// single-entity matching scan on creation.
type BatchService struct {
	batches *store.BatchStore
	users   *store.UserStore
	engine  *engine.Engine
}

// NewBatchService creates a new BatchService.
func NewBatchService(batches *store.BatchStore, users *store.UserStore, eng *engine.Engine) *BatchService {
	return &BatchService{batches: batches, users: users, engine: eng}
}

// Create validates the request, stores the batch, and runs the
// pool-side matching scan. Returns the batch and its compatible pools.
func (s *BatchService) Create(req CreateBatchRequest) (*domain.Batch, []*domain.Pool, error) {
	owner, err := s.users.Get(req.ProducerID)
	if err != nil {
		return nil, nil, err
	}
	if owner.Role != domain.RoleProducer {
		return nil, nil, &domain.ValidationError{Message: "only producers can create batches"}
	}

	commodity := domain.Commodity(req.Commodity)
	if !commodity.Valid() {
		return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("unknown commodity: %q", req.Commodity)}
	}
	storage := domain.StorageMethod(req.Storage)
	if !storage.Valid() {
		return nil, nil, &domain.ValidationError{Message: fmt.Sprintf("unknown storage method: %q", req.Storage)}
	}
	if !req.Volume.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "volume must be > 0"}
	}
	if !req.Price.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "price must be > 0"}
	}
	if err := validateMetric("moisture", req.Moisture); err != nil {
		return nil, nil, err
	}
	if err := validateMetric("impurity", req.Impurity); err != nil {
		return nil, nil, err
	}

	b := &domain.Batch{
		ProducerID:  req.ProducerID,
		Commodity:   commodity,
		Region:      req.Region,
		Volume:      req.Volume,
		Price:       req.Price,
		Moisture:    req.Moisture,
		Impurity:    req.Impurity,
		Grade:       domain.ComputeGrade(req.Moisture, req.Impurity),
		Storage:     storage,
		ReadyAt:     req.ReadyAt,
		Status:      domain.BatchStatusActive,
		Attachments: []domain.Attachment{},
		CreatedAt:   time.Now(),
	}
	s.batches.Create(b)

	pools := s.engine.MatchPoolsForBatch(b)
	return b, pools, nil
}

// Get retrieves a batch by ID.
func (s *BatchService) Get(id int64) (*domain.Batch, error) {
	return s.batches.Get(id)
}

// ListByProducer returns the producer's batches.
func (s *BatchService) ListByProducer(producerID int64) ([]*domain.Batch, error) {
	if _, err := s.users.Get(producerID); err != nil {
		return nil, err
	}
	return s.batches.ListByProducer(producerID), nil
}

// Update applies owner field edits to an active batch. Quality metric
// edits recompute the grade. Reserved, sold, and withdrawn batches are
// not editable. The whole read-check-write runs inside the engine's
// mutual-exclusion scope so it cannot interleave with a join or sweep.
func (s *BatchService) Update(batchID, ownerID int64, req UpdateBatchRequest) (*domain.Batch, error) {
	if req.Volume != nil && !req.Volume.IsPositive() {
		return nil, &domain.ValidationError{Message: "volume must be > 0"}
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return nil, &domain.ValidationError{Message: "price must be > 0"}
	}
	if req.Moisture != nil {
		if err := validateMetric("moisture", *req.Moisture); err != nil {
			return nil, err
		}
	}
	if req.Impurity != nil {
		if err := validateMetric("impurity", *req.Impurity); err != nil {
			return nil, err
		}
	}
	if req.Storage != nil && !domain.StorageMethod(*req.Storage).Valid() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("unknown storage method: %q", *req.Storage)}
	}

	return s.engine.EditBatch(batchID, func(b *domain.Batch) error {
		if b.ProducerID != ownerID {
			return domain.ErrBatchNotOwned
		}
		if b.Status != domain.BatchStatusActive {
			return domain.ErrBatchNotActive
		}

		if req.Region != nil {
			b.Region = *req.Region
		}
		if req.Volume != nil {
			b.Volume = *req.Volume
		}
		if req.Price != nil {
			b.Price = *req.Price
		}
		if req.Moisture != nil {
			b.Moisture = *req.Moisture
		}
		if req.Impurity != nil {
			b.Impurity = *req.Impurity
		}
		if req.Storage != nil {
			b.Storage = domain.StorageMethod(*req.Storage)
		}
		if req.ReadyAt != nil {
			b.ReadyAt = *req.ReadyAt
		}
		b.Grade = domain.ComputeGrade(b.Moisture, b.Impurity)
		return nil
	})
}

// UpdateStatus applies an owner-driven status change. Owners may mark
// an active batch sold or withdrawn, or a reserved batch sold. The
// reserved status itself is set only by the capacity allocator; the
// status check and write run inside the engine's mutual-exclusion
// scope so they cannot interleave with a join reserving the batch.
func (s *BatchService) UpdateStatus(batchID, ownerID int64, status string) (*domain.Batch, error) {
	next := domain.BatchStatus(status)
	if next != domain.BatchStatusSold && next != domain.BatchStatusWithdrawn {
		return nil, &domain.ValidationError{Message: "status must be sold or withdrawn"}
	}

	return s.engine.EditBatch(batchID, func(b *domain.Batch) error {
		if b.ProducerID != ownerID {
			return domain.ErrBatchNotOwned
		}

		switch next {
		case domain.BatchStatusSold:
			if b.Status != domain.BatchStatusActive && b.Status != domain.BatchStatusReserved {
				return domain.ErrInvalidTransition
			}
		case domain.BatchStatusWithdrawn:
			if b.Status != domain.BatchStatusActive {
				return domain.ErrInvalidTransition
			}
		}

		b.Status = next
		return nil
	})
}

// AddAttachment attaches a document or photo record to the batch.
func (s *BatchService) AddAttachment(batchID, ownerID int64, name, url string) (*domain.Attachment, error) {
	if name == "" {
		return nil, &domain.ValidationError{Message: "attachment name is required"}
	}

	var att domain.Attachment
	_, err := s.engine.EditBatch(batchID, func(b *domain.Batch) error {
		if b.ProducerID != ownerID {
			return domain.ErrBatchNotOwned
		}

		att = domain.Attachment{
			ID:      uuid.New().String(),
			Name:    name,
			URL:     url,
			AddedAt: time.Now(),
		}
		b.Attachments = append(b.Attachments, att)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Delete removes the batch from the owner's collection. Historical
// matches and participant records keep their batch ID references.
func (s *BatchService) Delete(batchID, ownerID int64) error {
	return s.engine.DeleteBatch(batchID, func(b *domain.Batch) error {
		if b.ProducerID != ownerID {
			return domain.ErrBatchNotOwned
		}
		return nil
	})
}

func validateMetric(name string, v float64) error {
	if v < 0 || v > 100 {
		return &domain.ValidationError{Message: name + " must be between 0 and 100"}
	}
	return nil
}
