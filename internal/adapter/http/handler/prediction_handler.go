package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

const cacheHeader = "X-Cache"

// PredictionHandler handles the prediction endpoints
type PredictionHandler struct {
	uc usecase.PredictionUsecase
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(uc usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(c *gin.Context) {
	text, err := readText(c)
	if err != nil {
		HandlePredictionError(c, err)
		return
	}

	output, err := h.uc.Predict(c.Request.Context(), &usecase.PredictInput{
		Text:      text,
		RequestID: c.GetString("request_id"),
	})
	if err != nil {
		HandlePredictionError(c, err)
		return
	}

	if output.Cached {
		c.Header(cacheHeader, "HIT")
	} else {
		c.Header(cacheHeader, "MISS")
	}
	c.JSON(http.StatusOK, output.Result)
}

// Preflight handles OPTIONS /predict
func (h *PredictionHandler) Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readText extracts the "text" field. A body that is not a JSON object, or
// one without the field, yields nil. A null or any other falsy JSON value
// (false, 0, "", [] or {}) reads as empty text.
func readText(c *gin.Context) (*string, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBodyUnreadable, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, nil
	}

	raw, ok := fields["text"]
	if !ok {
		return nil, nil
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, ErrTextNotString
	}

	switch v := value.(type) {
	case string:
		return &v, nil
	case nil:
		return new(string), nil
	case bool:
		if !v {
			return new(string), nil
		}
	case float64:
		if v == 0 {
			return new(string), nil
		}
	case []interface{}:
		if len(v) == 0 {
			return new(string), nil
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return new(string), nil
		}
	}
	return nil, ErrTextNotString
}
