package router

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/model"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/repository/sqlite"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/config"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/database"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/metrics"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupRouterWithHistory(t, false)
}

func setupRouterWithHistory(t *testing.T, history bool) *gin.Engine {
	t.Helper()
	cfg := &config.ModelConfig{
		Dir:            filepath.Join("..", "..", "model", "testdata"),
		VectorizerFile: "vectorizer.json",
		ClassifierFile: "logistic.json",
		MetadataFile:   "model_metadata.json",
		Version:        "test",
	}
	artifacts, err := model.LoadArtifacts(cfg)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	opts := usecase.Options{
		Metrics:       m,
		ModelVersion:  artifacts.Version,
		Probabilities: artifacts.SupportsProbabilities(),
	}

	var db *sql.DB
	if history {
		db, err = database.NewSQLiteDB(&config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "history.db")})
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		opts.History = sqlite.NewPredictionRepository(db)
	}
	uc := usecase.NewPredictionUsecase(artifacts.Predictor(), opts)

	metadataPath := model.MetadataPath(cfg)
	return Setup(Deps{
		Usecase:  uc,
		DB:       db,
		Metrics:  m,
		Gatherer: reg,
		Metadata: func() (json.RawMessage, error) {
			return model.ReadMetadata(metadataPath)
		},
	})
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetup_Predict(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("spam", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/predict", `{"text":"WIN FREE MONEY NOW!!!"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["isSpam"])
		assert.Equal(t, "spam", body["prediction"])
		assert.Contains(t, body, "confidence")
		assert.Contains(t, body, "spamProbability")
	})

	t.Run("legitimate", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/predict", `{"text":"see you at the meeting"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"prediction":"legitimate"`)
	})

	t.Run("empty text", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/predict", `{"text":"   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Email text cannot be empty"}`, w.Body.String())
	})

	t.Run("missing text", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/predict", `{"message":"hi"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No text provided"}`, w.Body.String())
	})

	t.Run("preflight", func(t *testing.T) {
		w := serve(router, http.MethodOptions, "/predict", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSetup_Routes(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("index", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Spam detector API is running!", w.Body.String())
	})

	t.Run("model info passes metadata through", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/model-info", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"model_type": "Logistic Regression"`)
	})

	t.Run("health reports the model", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "Logistic Regression", body["model"])
		assert.Equal(t, "test", body["version"])
	})

	t.Run("model summary", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/model", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"features":5`)
	})

	t.Run("history routes absent without a database", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/predictions", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		serve(router, http.MethodPost, "/predict", `{"text":"free money"}`)

		w := serve(router, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "spamguard_predictions_total")
		assert.Contains(t, w.Body.String(), "spamguard_http_requests_total")
	})
}

func TestSetup_History(t *testing.T) {
	router := setupRouterWithHistory(t, true)

	for _, text := range []string{"WIN FREE MONEY NOW!!!", "see you at the meeting", "free money"} {
		w := serve(router, http.MethodPost, "/predict", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	t.Run("lists newest first without raw text", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/predictions?limit=2", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "meeting")

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Predictions []map[string]interface{} `json:"predictions"`
				Total       int64                    `json:"total"`
				HasMore     bool                     `json:"has_more"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(3), body.Data.Total)
		assert.Len(t, body.Data.Predictions, 2)
		assert.True(t, body.Data.HasMore)
	})

	t.Run("stats", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/v1/predictions/stats", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(3), body.Data["total"])
		assert.Equal(t, float64(2), body.Data["spam"])
		assert.Equal(t, float64(1), body.Data["legitimate"])
	})

	t.Run("health pings the database", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"ok"`)
	})
}
