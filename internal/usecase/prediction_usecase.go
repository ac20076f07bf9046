package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/repository"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/metrics"
)

// Error definitions for prediction usecase
var (
	ErrHistoryDisabled = errors.New("prediction history is not configured")
)

// PredictInput represents the input for a prediction. Text is nil when the
// request carried no text at all.
type PredictInput struct {
	Text      *string
	RequestID string
}

// PredictOutput is the prediction result plus serving details
type PredictOutput struct {
	Result *entity.PredictionResult
	Cached bool
}

// HistoryOutput represents a page of prediction history
type HistoryOutput struct {
	Predictions []*entity.PredictionRecord `json:"predictions"`
	Total       int64                      `json:"total"`
	Limit       int                        `json:"limit"`
	Offset      int                        `json:"offset"`
	HasMore     bool                       `json:"has_more"`
}

// ModelInfo describes the loaded model
type ModelInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Features      int    `json:"features"`
	Probabilities bool   `json:"probabilities"`
}

// PredictionCache stores results by normalized text
type PredictionCache interface {
	Get(ctx context.Context, key string) (*entity.PredictionResult, error)
	Set(ctx context.Context, key string, result *entity.PredictionResult) error
}

// PredictionUsecase defines the interface for prediction business logic
type PredictionUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error)
	ListHistory(ctx context.Context, limit, offset int) (*HistoryOutput, error)
	Stats(ctx context.Context) (*entity.PredictionStats, error)
	ModelInfo() *ModelInfo
}

// Model is the loaded model the usecase predicts with
type Model interface {
	PredictNormalized(normalized string) (*entity.PredictionResult, error)
	ModelName() string
	Dimension() int
}

// Options carries the optional collaborators. Nil fields disable the
// corresponding feature.
type Options struct {
	Cache         PredictionCache
	History       repository.PredictionRepository
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
	ModelVersion  string
	Probabilities bool
}

type predictionUsecase struct {
	model   Model
	cache   PredictionCache
	history repository.PredictionRepository
	metrics *metrics.Metrics
	log     *zap.Logger
	version string
	proba   bool
	now     func() time.Time
}

// NewPredictionUsecase creates a new prediction usecase
func NewPredictionUsecase(model Model, opts Options) PredictionUsecase {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewNop()
	}
	return &predictionUsecase{
		model:   model,
		cache:   opts.Cache,
		history: opts.History,
		metrics: m,
		log:     log,
		version: opts.ModelVersion,
		proba:   opts.Probabilities,
		now:     time.Now,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictOutput, error) {
	start := u.now()

	if err := service.ValidateText(input.Text); err != nil {
		u.metrics.PredictionErrors.WithLabelValues(errorKind(err)).Inc()
		return nil, err
	}

	normalized := service.Normalize(*input.Text)
	key := u.cacheKey(normalized)

	if result := u.lookup(ctx, key); result != nil {
		u.finish(ctx, input, result, start, true)
		return &PredictOutput{Result: result, Cached: true}, nil
	}

	result, err := u.model.PredictNormalized(normalized)
	u.metrics.PredictionLatency.Observe(u.now().Sub(start).Seconds())
	if err != nil {
		u.metrics.PredictionErrors.WithLabelValues(errorKind(err)).Inc()
		u.log.Error("Prediction failed",
			zap.String("request_id", input.RequestID),
			zap.Error(err),
		)
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, key, result); err != nil {
			u.log.Warn("Failed to cache prediction", zap.String("request_id", input.RequestID), zap.Error(err))
		}
	}

	u.finish(ctx, input, result, start, false)
	return &PredictOutput{Result: result}, nil
}

func (u *predictionUsecase) lookup(ctx context.Context, key string) *entity.PredictionResult {
	if u.cache == nil {
		return nil
	}
	result, err := u.cache.Get(ctx, key)
	switch {
	case err != nil:
		u.metrics.CacheLookups.WithLabelValues("error").Inc()
		u.log.Warn("Prediction cache lookup failed", zap.Error(err))
		return nil
	case result == nil:
		u.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	default:
		u.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return result
	}
}

func (u *predictionUsecase) finish(ctx context.Context, input *PredictInput, result *entity.PredictionResult, start time.Time, cached bool) {
	latency := u.now().Sub(start)
	u.metrics.Predictions.WithLabelValues(result.Prediction).Inc()

	u.log.Debug("Prediction served",
		zap.String("request_id", input.RequestID),
		zap.String("prediction", result.Prediction),
		zap.Float64("confidence", result.Confidence),
		zap.Bool("cached", cached),
		zap.Duration("latency", latency),
	)

	if u.history == nil {
		return
	}
	sum := sha256.Sum256([]byte(*input.Text))
	record := entity.NewPredictionRecord(input.RequestID, hex.EncodeToString(sum[:]), len(*input.Text), result, u.version)
	record.SetTiming(latency.Milliseconds(), cached)
	if err := u.history.Create(ctx, record); err != nil {
		u.log.Warn("Failed to record prediction", zap.String("request_id", input.RequestID), zap.Error(err))
	}
}

func (u *predictionUsecase) cacheKey(normalized string) string {
	sum := sha256.Sum256([]byte(u.version + "\x00" + normalized))
	return hex.EncodeToString(sum[:])
}

// History page bounds
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ClampPage applies the history page bounds. A non-positive limit takes the
// default, a larger one is capped, and a negative offset starts at zero.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (u *predictionUsecase) ListHistory(ctx context.Context, limit, offset int) (*HistoryOutput, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}
	limit, offset = ClampPage(limit, offset)

	records, total, err := u.history.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{
		Predictions: records,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
		HasMore:     int64(offset+limit) < total,
	}, nil
}

func (u *predictionUsecase) Stats(ctx context.Context) (*entity.PredictionStats, error) {
	if u.history == nil {
		return nil, ErrHistoryDisabled
	}
	return u.history.Stats(ctx)
}

func (u *predictionUsecase) ModelInfo() *ModelInfo {
	return &ModelInfo{
		Name:          u.model.ModelName(),
		Version:       u.version,
		Features:      u.model.Dimension(),
		Probabilities: u.proba,
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, service.ErrTextMissing):
		return "missing_text"
	case errors.Is(err, service.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, service.ErrInferenceFailure):
		return "inference_failure"
	default:
		return "unknown"
	}
}
