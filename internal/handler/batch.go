package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/service"
)

// BatchHandler handles HTTP requests for batch endpoints.
type BatchHandler struct {
	batchSvc *service.BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batchSvc *service.BatchService) *BatchHandler {
	return &BatchHandler{batchSvc: batchSvc}
}

// createBatchRequest is the JSON request body for POST /batches.
// Volume and price arrive as strings to avoid float rounding.
type createBatchRequest struct {
	ProducerID int64   `json:"producer_id"`
	Commodity  string  `json:"commodity"`
	Region     string  `json:"region"`
	Volume     string  `json:"volume"`
	Price      string  `json:"price"`
	Moisture   float64 `json:"moisture"`
	Impurity   float64 `json:"impurity"`
	Storage    string  `json:"storage"`
	ReadyAt    *string `json:"ready_at"`
}

// updateBatchRequest is the JSON request body for PATCH /batches/{batch_id}.
type updateBatchRequest struct {
	OwnerID  int64    `json:"owner_id"`
	Region   *string  `json:"region"`
	Volume   *string  `json:"volume"`
	Price    *string  `json:"price"`
	Moisture *float64 `json:"moisture"`
	Impurity *float64 `json:"impurity"`
	Storage  *string  `json:"storage"`
	ReadyAt  *string  `json:"ready_at"`
}

// batchStatusRequest is the JSON request body for POST /batches/{batch_id}/status.
type batchStatusRequest struct {
	OwnerID int64  `json:"owner_id"`
	Status  string `json:"status"`
}

// attachmentRequest is the JSON request body for POST /batches/{batch_id}/attachments.
type attachmentRequest struct {
	OwnerID int64  `json:"owner_id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
}

// deleteBatchRequest is the JSON request body for DELETE /batches/{batch_id}.
type deleteBatchRequest struct {
	OwnerID int64 `json:"owner_id"`
}

// batchResponse is the JSON representation of a batch.
type batchResponse struct {
	ID          int64                `json:"id"`
	ProducerID  int64                `json:"producer_id"`
	Commodity   string               `json:"commodity"`
	Region      string               `json:"region"`
	Volume      string               `json:"volume"`
	Price       string               `json:"price"`
	Moisture    float64              `json:"moisture"`
	Impurity    float64              `json:"impurity"`
	Grade       int                  `json:"grade"`
	Storage     string               `json:"storage"`
	ReadyAt     string               `json:"ready_at"`
	Status      string               `json:"status"`
	Attachments []attachmentResponse `json:"attachments"`
	CreatedAt   string               `json:"created_at"`
}

// attachmentResponse is a single attachment in the batch response.
type attachmentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	AddedAt string `json:"added_at"`
}

// createBatchResponse adds the compatible pools found on creation.
type createBatchResponse struct {
	batchResponse
	CompatiblePools []int64 `json:"compatible_pools"`
}

func buildBatchResponse(b *domain.Batch) batchResponse {
	atts := make([]attachmentResponse, 0, len(b.Attachments))
	for _, a := range b.Attachments {
		atts = append(atts, attachmentResponse{
			ID:      a.ID,
			Name:    a.Name,
			URL:     a.URL,
			AddedAt: a.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return batchResponse{
		ID:          b.ID,
		ProducerID:  b.ProducerID,
		Commodity:   string(b.Commodity),
		Region:      b.Region,
		Volume:      b.Volume.String(),
		Price:       b.Price.String(),
		Moisture:    b.Moisture,
		Impurity:    b.Impurity,
		Grade:       int(b.Grade),
		Storage:     string(b.Storage),
		ReadyAt:     b.ReadyAt.UTC().Format(time.RFC3339),
		Status:      string(b.Status),
		Attachments: atts,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /batches.
func (h *BatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBatchRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	volume, err := decimal.NewFromString(req.Volume)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "volume must be a decimal number")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "price must be a decimal number")
		return
	}

	readyAt := time.Now()
	if req.ReadyAt != nil {
		readyAt, err = time.Parse(time.RFC3339, *req.ReadyAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "ready_at must be a valid RFC 3339 timestamp")
			return
		}
	}

	b, pools, err := h.batchSvc.Create(service.CreateBatchRequest{
		ProducerID: req.ProducerID,
		Commodity:  req.Commodity,
		Region:     req.Region,
		Volume:     volume,
		Price:      price,
		Moisture:   req.Moisture,
		Impurity:   req.Impurity,
		Storage:    req.Storage,
		ReadyAt:    readyAt,
	})
	if err != nil {
		MapDomainError(w, err)
		return
	}

	poolIDs := make([]int64, 0, len(pools))
	for _, p := range pools {
		poolIDs = append(poolIDs, p.ID)
	}
	WriteJSON(w, http.StatusCreated, createBatchResponse{
		batchResponse:   buildBatchResponse(b),
		CompatiblePools: poolIDs,
	})
}

// Get handles GET /batches/{batch_id}.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "batch_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "batch_id must be a positive integer")
		return
	}

	b, err := h.batchSvc.Get(id)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildBatchResponse(b))
}

// Update handles PATCH /batches/{batch_id}.
func (h *BatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "batch_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "batch_id must be a positive integer")
		return
	}

	var req updateBatchRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	upd := service.UpdateBatchRequest{
		Region:   req.Region,
		Moisture: req.Moisture,
		Impurity: req.Impurity,
		Storage:  req.Storage,
	}
	if req.Volume != nil {
		v, err := decimal.NewFromString(*req.Volume)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "volume must be a decimal number")
			return
		}
		upd.Volume = &v
	}
	if req.Price != nil {
		p, err := decimal.NewFromString(*req.Price)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "price must be a decimal number")
			return
		}
		upd.Price = &p
	}
	if req.ReadyAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ReadyAt)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "validation_error", "ready_at must be a valid RFC 3339 timestamp")
			return
		}
		upd.ReadyAt = &t
	}

	b, err := h.batchSvc.Update(id, req.OwnerID, upd)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildBatchResponse(b))
}

// UpdateStatus handles POST /batches/{batch_id}/status.
func (h *BatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "batch_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "batch_id must be a positive integer")
		return
	}

	var req batchStatusRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	b, err := h.batchSvc.UpdateStatus(id, req.OwnerID, req.Status)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildBatchResponse(b))
}

// AddAttachment handles POST /batches/{batch_id}/attachments.
func (h *BatchHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "batch_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "batch_id must be a positive integer")
		return
	}

	var req attachmentRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	att, err := h.batchSvc.AddAttachment(id, req.OwnerID, req.Name, req.URL)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, attachmentResponse{
		ID:      att.ID,
		Name:    att.Name,
		URL:     att.URL,
		AddedAt: att.AddedAt.UTC().Format(time.RFC3339),
	})
}

// Delete handles DELETE /batches/{batch_id}.
func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "batch_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "batch_id must be a positive integer")
		return
	}

	var req deleteBatchRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.batchSvc.Delete(id, req.OwnerID); err != nil {
		MapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListByProducer handles GET /producers/{user_id}/batches.
func (h *BatchHandler) ListByProducer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "user_id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", "user_id must be a positive integer")
		return
	}

	batches, err := h.batchSvc.ListByProducer(id)
	if err != nil {
		MapDomainError(w, err)
		return
	}

	result := make([]batchResponse, 0, len(batches))
	for _, b := range batches {
		result = append(result, buildBatchResponse(b))
	}
	WriteJSON(w, http.StatusOK, result)
}
