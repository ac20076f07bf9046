package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/repository"
)

type predictionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPredictionRepository creates a prediction repository on a database
// prepared by database.NewSQLiteDB
func NewPredictionRepository(db *sql.DB) repository.PredictionRepository {
	return &predictionRepository{db: db, now: time.Now}
}

func (r *predictionRepository) Create(ctx context.Context, record *entity.PredictionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO predictions(id, request_id, text_hash, text_length, prediction, is_spam,
  confidence, spam_probability, model_version, cached, latency_ms, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, record.ID.String(), record.RequestID, record.TextHash, record.TextLength, record.Prediction,
		boolToInt(record.IsSpam), record.Confidence, record.SpamProbability, record.ModelVersion,
		boolToInt(record.Cached), record.LatencyMs, record.CreatedAt.UnixMilli())
	return err
}

func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*entity.PredictionRecord, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM predictions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, request_id, text_hash, text_length, prediction, is_spam,
  confidence, spam_probability, model_version, cached, latency_ms, created_at
FROM predictions
ORDER BY created_at DESC, rowid DESC
LIMIT ? OFFSET ?
`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]*entity.PredictionRecord, 0, limit)
	for rows.Next() {
		var (
			rec             entity.PredictionRecord
			id              string
			isSpam, cached  int
			createdAtMillis int64
		)
		if err := rows.Scan(&id, &rec.RequestID, &rec.TextHash, &rec.TextLength, &rec.Prediction, &isSpam,
			&rec.Confidence, &rec.SpamProbability, &rec.ModelVersion, &cached, &rec.LatencyMs, &createdAtMillis); err != nil {
			return nil, 0, err
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, 0, err
		}
		rec.IsSpam = isSpam == 1
		rec.Cached = cached == 1
		rec.CreatedAt = time.UnixMilli(createdAtMillis)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *predictionRepository) Stats(ctx context.Context) (*entity.PredictionStats, error) {
	var stats entity.PredictionStats
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(1),
  COALESCE(SUM(is_spam), 0),
  COALESCE(AVG(confidence), 0)
FROM predictions
`).Scan(&stats.Total, &stats.Spam, &stats.AverageConfidence)
	if err != nil {
		return nil, err
	}

	stats.Legitimate = stats.Total - stats.Spam
	stats.CalculateSpamRate()
	return &stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
