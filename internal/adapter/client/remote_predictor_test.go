package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
)

func newRemotePredictor(t *testing.T, status int, body string) *RemotePredictor {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		require.NoError(t, err)
	}))
	t.Cleanup(server.Close)
	return NewRemotePredictor(NewSpamClient(server.URL, 5*time.Second))
}

func TestRemotePredictor_Predict(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body, err := json.Marshal(entity.NewPredictionResult(entity.LabelLegitimate, 0.8, 0.2))
		require.NoError(t, err)
		predictor := newRemotePredictor(t, http.StatusOK, string(body))

		result, err := predictor.Predict(context.Background(), "lunch at noon?")

		require.NoError(t, err)
		assert.False(t, result.IsSpam)
		assert.Equal(t, 0.2, result.SpamProbability)
	})

	t.Run("maps request errors to domain errors", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			body   string
			want   error
		}{
			{"missing text", http.StatusBadRequest, `{"error":"No text provided"}`, service.ErrTextMissing},
			{"empty text", http.StatusBadRequest, `{"error":"Email text cannot be empty"}`, service.ErrEmptyInput},
			{"inference failure", http.StatusInternalServerError, `{"error":"Prediction failed: boom"}`, service.ErrInferenceFailure},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				predictor := newRemotePredictor(t, tt.status, tt.body)

				_, err := predictor.Predict(context.Background(), "x")

				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("keeps inference message", func(t *testing.T) {
		predictor := newRemotePredictor(t, http.StatusInternalServerError, `{"error":"Prediction failed: dimension mismatch"}`)

		_, err := predictor.Predict(context.Background(), "x")

		assert.EqualError(t, err, "dimension mismatch")
	})

	t.Run("other statuses pass through", func(t *testing.T) {
		predictor := newRemotePredictor(t, http.StatusInternalServerError, `{"error":"internal server error","code":"INTERNAL_ERROR"}`)

		_, err := predictor.Predict(context.Background(), "x")

		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.NotErrorIs(t, err, service.ErrInferenceFailure)
	})
}
