package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// MetadataReader returns the model metadata document
type MetadataReader func() (json.RawMessage, error)

// ModelHandler serves model information
type ModelHandler struct {
	uc       usecase.PredictionUsecase
	metadata MetadataReader
}

// NewModelHandler creates a new model handler
func NewModelHandler(uc usecase.PredictionUsecase, metadata MetadataReader) *ModelHandler {
	return &ModelHandler{
		uc:       uc,
		metadata: metadata,
	}
}

// Index handles GET /
func (h *ModelHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Spam detector API is running!")
}

// Metadata handles GET /model-info. The file is read on every request.
func (h *ModelHandler) Metadata(c *gin.Context) {
	if h.metadata == nil {
		respondPlainError(c, http.StatusInternalServerError, "Could not load metadata: no metadata file configured")
		return
	}
	raw, err := h.metadata()
	if err != nil {
		respondPlainError(c, http.StatusInternalServerError, "Could not load metadata: "+err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// Info handles GET /api/v1/model
func (h *ModelHandler) Info(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.uc.ModelInfo())
}
