package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/repository"
)

const statsColumns = "COUNT(*) AS total, " +
	"COALESCE(SUM(CASE WHEN is_spam THEN 1 ELSE 0 END), 0) AS spam, " +
	"COALESCE(AVG(confidence), 0) AS average_confidence"

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *gorm.DB) repository.PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, record *entity.PredictionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.PredictionRecord, int64, error) {
	var records []*entity.PredictionRecord
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.PredictionRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := listQuery(r.db.WithContext(ctx), limit, offset).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// listQuery selects one page of history, newest first
func listQuery(db *gorm.DB, limit, offset int) *gorm.DB {
	return db.Model(&entity.PredictionRecord{}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
}

type statsRow struct {
	Total             int64
	Spam              int64
	AverageConfidence float64
}

func (r *predictionRepository) Stats(ctx context.Context) (*entity.PredictionStats, error) {
	var row statsRow
	if err := statsQuery(r.db.WithContext(ctx)).Scan(&row).Error; err != nil {
		return nil, err
	}
	return row.toStats(), nil
}

func statsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&entity.PredictionRecord{}).Select(statsColumns)
}

func (row statsRow) toStats() *entity.PredictionStats {
	stats := &entity.PredictionStats{
		Total:             row.Total,
		Spam:              row.Spam,
		Legitimate:        row.Total - row.Spam,
		AverageConfidence: row.AverageConfidence,
	}
	stats.CalculateSpamRate()
	return stats
}
