package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// HistoryHandler serves recorded predictions
type HistoryHandler struct {
	uc usecase.PredictionUsecase
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(uc usecase.PredictionUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List handles GET /api/v1/predictions
func (h *HistoryHandler) List(c *gin.Context) {
	page := ParsePagination(c)

	output, err := h.uc.ListHistory(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Stats handles GET /api/v1/predictions/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats)
}
