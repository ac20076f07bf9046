package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelHandler_Index(t *testing.T) {
	handler := NewModelHandler(new(MockPredictionUsecase), nil)
	router := gin.New()
	router.GET("/", handler.Index)

	req, _ := http.NewRequest("GET", "/", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Spam detector API is running!", w.Body.String())
}

func TestModelHandler_Metadata(t *testing.T) {
	t.Run("returns the document unchanged", func(t *testing.T) {
		doc := json.RawMessage(`{"model_name":"Logistic Regression","accuracy":0.981,"trained_on":"2024-03-01"}`)
		handler := NewModelHandler(new(MockPredictionUsecase), func() (json.RawMessage, error) {
			return doc, nil
		})
		router := gin.New()
		router.GET("/model-info", handler.Metadata)

		req, _ := http.NewRequest("GET", "/model-info", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, string(doc), w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("read failure", func(t *testing.T) {
		handler := NewModelHandler(new(MockPredictionUsecase), func() (json.RawMessage, error) {
			return nil, errors.New("open model_metadata.json: no such file or directory")
		})
		router := gin.New()
		router.GET("/model-info", handler.Metadata)

		req, _ := http.NewRequest("GET", "/model-info", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Could not load metadata: open model_metadata.json: no such file or directory", body.Error)
	})
}

func TestModelHandler_Info(t *testing.T) {
	uc := new(MockPredictionUsecase)
	uc.On("ModelInfo").Return(testModelInfo)
	handler := NewModelHandler(uc, nil)
	router := gin.New()
	router.GET("/api/v1/model", handler.Info)

	req, _ := http.NewRequest("GET", "/api/v1/model", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	data := response.Data.(map[string]interface{})
	assert.Equal(t, "Logistic Regression", data["name"])
	assert.Equal(t, float64(5000), data["features"])
	assert.Equal(t, true, data["probabilities"])
}
