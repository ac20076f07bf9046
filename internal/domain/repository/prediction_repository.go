package repository

import (
	"context"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

// PredictionRepository defines the interface for prediction history
type PredictionRepository interface {
	// Create stores a prediction record
	Create(ctx context.Context, record *entity.PredictionRecord) error

	// List retrieves records, newest first, with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.PredictionRecord, int64, error)

	// Stats aggregates the whole history
	Stats(ctx context.Context) (*entity.PredictionStats, error)
}
