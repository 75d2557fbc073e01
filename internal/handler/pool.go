package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/service"
)

// PoolHandler handles HTTP requests for pool endpoints.
type PoolHandler struct {
	poolSvc *service.PoolService
	rate    decimal.Decimal
}

// NewPoolHandler creates a new PoolHandler. rate is the shared
// conversion rate used for the local-currency price shown alongside
// the reference price.
func NewPoolHandler(poolSvc *service.PoolService, rate decimal.Decimal) *PoolHandler {
	return &PoolHandler{poolSvc: poolSvc, rate: rate}
}

// createPoolRequest is the JSON request body for POST /pools.
type createPoolRequest struct {
	AggregatorID int64    `json:"aggregator_id"`
	Commodity    string   `json:"commodity"`
	TargetVolume string   `json:"target_volume"`
	Price        string   `json:"price"`
	Port         string   `json:"port"`
	MaxMoisture  float64  `json:"max_moisture"`
	MinNature    float64  `json:"min_nature"`
	MaxImpurity  float64  `json:"max_impurity"`
	MaxWeed      float64  `json:"max_weed"`
	Documents    []string `json:"documents"`
}

// poolStatusRequest is the JSON request body for POST /pools/{pool_id}/status.
type poolStatusRequest struct {
	OwnerID int64  `json:"owner_id"`
	Status  string `json:"status"`
}

// joinPoolRequest is the JSON request body for POST /pools/{pool_id}/join.
type joinPoolRequest struct {
	BatchID    int64 `json:"batch_id"`
	ProducerID int64 `json:"producer_id"`
}

// poolResponse is the JSON representation of a pool. PriceLocal is the
// reference price converted at the shared rate, so listings and the
// compatibility predicate always agree.
type poolResponse struct {
	ID            int64    `json:"id"`
	AggregatorID  int64    `json:"aggregator_id"`
	Commodity     string   `json:"commodity"`
	TargetVolume  string   `json:"target_volume"`
	CurrentVolume string   `json:"current_volume"`
	Remaining     string   `json:"remaining_volume"`
	Price         string   `json:"price"`
	PriceLocal    string   `json:"price_local"`
	Port          string   `json:"port"`
	MaxMoisture   float64  `json:"max_moisture"`
	MinNature     float64  `json:"min_nature"`
	MaxImpurity   float64  `json:"max_impurity"`
	MaxWeed       float64  `json:"max_weed"`
	Documents     []string `json:"documents"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"created_at"`
}

// createPoolResponse adds the compatible batches found on creation.
type createPoolResponse struct {
	poolResponse
	CompatibleBatches []int64 `json:"compatible_batches"`
}

// participantResponse is a single commitment record.
type participantResponse struct {
	ProducerID int64  `json:"producer_id"`
	BatchID    int64  `json:"batch_id"`
	Volume     string `json:"volume"`
	JoinedAt   string `json:"joined_at"`
}

func (h *PoolHandler) buildPoolResponse(p *domain.Pool) poolResponse {
	return poolResponse{
		ID:            p.ID,
		AggregatorID:  p.AggregatorID,
		Commodity:     string(p.Commodity),
		TargetVolume:  p.TargetVolume.String(),
		CurrentVolume: p.CurrentVolume.String(),
		Remaining:     p.RemainingVolume().String(),
		Price:         p.Price.String(),
		PriceLocal:    domain.ToLocal(p.Price, h.rate).String(),
		Port:          p.Port,
		MaxMoisture:   p.MaxMoisture,
		MinNature:     p.MinNature,
		MaxImpurity:   p.MaxImpurity,
		MaxWeed:       p.MaxWeed,
		Documents:     p.Documents,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /pools.
func (h *PoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPoolRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	target, err := decimal.NewFromString(req.TargetVolume)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "target_volume must be a decimal number")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "price must be a decimal number")
		return
	}

	p, batches, err := h.poolSvc.Create(service.CreatePoolRequest{
		AggregatorID: req.AggregatorID,
		Commodity:    req.Commodity,
		TargetVolume: target,
		Price:        price,
		Port:         req.Port,
		MaxMoisture:  req.MaxMoisture,
		MinNature:    req.MinNature,
		MaxImpurity:  req.MaxImpurity,
		MaxWeed:      req.MaxWeed,
		Documents:    req.Documents,
	})
	if err != nil {
		MapDomainError(w, err)
		return
	}

	batchIDs := make([]int64, 0, len(batches))
	for _, b := range batches {
		batchIDs = append(batchIDs, b.ID)
	}
	WriteJSON(w, http.StatusCreated, createPoolResponse{
		poolResponse:      h.buildPoolResponse(p),
		CompatibleBatches: batchIDs,
	})
}

// Get handles GET /pools/{pool_id}.
func (h *PoolHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "pool_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "pool_id must be a positive integer")
		return
	}

	p, err := h.poolSvc.Get(id)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, h.buildPoolResponse(p))
}

// List handles GET /pools.
func (h *PoolHandler) List(w http.ResponseWriter, r *http.Request) {
	pools := h.poolSvc.List()
	result := make([]poolResponse, 0, len(pools))
	for _, p := range pools {
		result = append(result, h.buildPoolResponse(p))
	}
	WriteJSON(w, http.StatusOK, result)
}

// SetStatus handles POST /pools/{pool_id}/status.
func (h *PoolHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "pool_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "pool_id must be a positive integer")
		return
	}

	var req poolStatusRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	p, err := h.poolSvc.SetStatus(id, req.OwnerID, req.Status)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, h.buildPoolResponse(p))
}

// Participants handles GET /pools/{pool_id}/participants.
func (h *PoolHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "pool_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "pool_id must be a positive integer")
		return
	}

	parts, err := h.poolSvc.Participants(id)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	result := make([]participantResponse, 0, len(parts))
	for _, part := range parts {
		result = append(result, participantResponse{
			ProducerID: part.ProducerID,
			BatchID:    part.BatchID,
			Volume:     part.Volume.String(),
			JoinedAt:   part.JoinedAt.UTC().Format(time.RFC3339),
		})
	}
	WriteJSON(w, http.StatusOK, result)
}

// Join handles POST /pools/{pool_id}/join.
func (h *PoolHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "pool_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "pool_id must be a positive integer")
		return
	}

	var req joinPoolRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	part, err := h.poolSvc.Join(id, req.BatchID, req.ProducerID)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, participantResponse{
		ProducerID: part.ProducerID,
		BatchID:    part.BatchID,
		Volume:     part.Volume.String(),
		JoinedAt:   part.JoinedAt.UTC().Format(time.RFC3339),
	})
}
