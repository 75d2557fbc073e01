package handler

import (
	"net/http"
	"time"

	"github.com/Urushihara24/exportum/internal/domain"
	"github.com/Urushihara24/exportum/internal/service"
)

// MarketHandler handles the sweep trigger and the match listing.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// matchResponse is the JSON representation of a match record.
type matchResponse struct {
	ID        int64  `json:"id"`
	BatchID   int64  `json:"batch_id"`
	PoolID    int64  `json:"pool_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func buildMatchResponse(m *domain.Match) matchResponse {
	return matchResponse{
		ID:        m.ID,
		BatchID:   m.BatchID,
		PoolID:    m.PoolID,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Sweep handles POST /sweep.
func (h *MarketHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	created := h.marketSvc.Sweep()
	WriteJSON(w, http.StatusOK, map[string]int{"created": created})
}

// ListMatches handles GET /matches.
func (h *MarketHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches := h.marketSvc.Matches()
	result := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		result = append(result, buildMatchResponse(m))
	}
	WriteJSON(w, http.StatusOK, result)
}
