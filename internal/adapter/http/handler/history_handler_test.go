package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

func setupHistoryRouter(uc usecase.PredictionUsecase) *gin.Engine {
	router := gin.New()
	handler := NewHistoryHandler(uc)
	router.GET("/api/v1/predictions", handler.List)
	router.GET("/api/v1/predictions/stats", handler.Stats)
	return router
}

func TestHistoryHandler_List(t *testing.T) {
	t.Run("success with pagination", func(t *testing.T) {
		uc := new(MockPredictionUsecase)
		result := entity.NewPredictionResult(entity.LabelSpam, 0.9, 0.9)
		record := entity.NewPredictionRecord("req-1", "abc", 12, result, "1.0")
		uc.On("ListHistory", mock.Anything, 10, 5).Return(&usecase.HistoryOutput{
			Predictions: []*entity.PredictionRecord{record},
			Total:       16,
			Limit:       10,
			Offset:      5,
			HasMore:     true,
		}, nil)

		req, _ := http.NewRequest("GET", "/api/v1/predictions?limit=10&offset=5", http.NoBody)
		w := httptest.NewRecorder()
		setupHistoryRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)
		data := response.Data.(map[string]interface{})
		assert.Equal(t, float64(16), data["total"])
		assert.Equal(t, true, data["has_more"])
		assert.Len(t, data["predictions"], 1)
		uc.AssertExpectations(t)
	})

	t.Run("history disabled", func(t *testing.T) {
		uc := new(MockPredictionUsecase)
		uc.On("ListHistory", mock.Anything, DefaultLimit, DefaultOffset).Return(nil, usecase.ErrHistoryDisabled)

		req, _ := http.NewRequest("GET", "/api/v1/predictions", http.NoBody)
		w := httptest.NewRecorder()
		setupHistoryRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Equal(t, "UNAVAILABLE", response.Error.Code)
	})
}

func TestHistoryHandler_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockPredictionUsecase)
		stats := &entity.PredictionStats{Total: 4, Spam: 1, Legitimate: 3, AverageConfidence: 0.9}
		stats.CalculateSpamRate()
		uc.On("Stats", mock.Anything).Return(stats, nil)

		req, _ := http.NewRequest("GET", "/api/v1/predictions/stats", http.NoBody)
		w := httptest.NewRecorder()
		setupHistoryRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response.Data.(map[string]interface{})
		assert.Equal(t, 0.25, data["spam_rate"])
	})

	t.Run("repository error", func(t *testing.T) {
		uc := new(MockPredictionUsecase)
		uc.On("Stats", mock.Anything).Return(nil, errors.New("connection reset"))

		req, _ := http.NewRequest("GET", "/api/v1/predictions/stats", http.NoBody)
		w := httptest.NewRecorder()
		setupHistoryRouter(uc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
