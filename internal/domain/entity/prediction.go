package entity

import (
	"time"

	"github.com/google/uuid"
)

// Label is a binary class label. The value is the class index the
// classifier was trained with, spam being the positive class.
type Label int

const (
	LabelLegitimate Label = 0
	LabelSpam       Label = 1
)

// String returns the wire name of the label
func (l Label) String() string {
	if l == LabelSpam {
		return "spam"
	}
	return "legitimate"
}

// IsSpam reports whether the label is the positive class
func (l Label) IsSpam() bool {
	return l == LabelSpam
}

// PredictionResult is the response payload of a single prediction
type PredictionResult struct {
	IsSpam          bool    `json:"isSpam"`
	Confidence      float64 `json:"confidence"`
	SpamProbability float64 `json:"spamProbability"`
	Prediction      string  `json:"prediction"`
}

// NewPredictionResult builds the result for a label and its scores
func NewPredictionResult(label Label, confidence, spamProbability float64) *PredictionResult {
	return &PredictionResult{
		IsSpam:          label.IsSpam(),
		Confidence:      confidence,
		SpamProbability: spamProbability,
		Prediction:      label.String(),
	}
}

// PredictionRecord is a persisted prediction. The raw text is never
// stored, only its hash and length.
type PredictionRecord struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequestID       string    `json:"request_id" gorm:"type:varchar(64);index"`
	TextHash        string    `json:"text_hash" gorm:"type:char(64);not null;index"`
	TextLength      int       `json:"text_length" gorm:"not null"`
	Prediction      string    `json:"prediction" gorm:"type:varchar(16);not null;index"`
	IsSpam          bool      `json:"is_spam" gorm:"not null"`
	Confidence      float64   `json:"confidence" gorm:"type:decimal(5,4)"`
	SpamProbability float64   `json:"spam_probability" gorm:"type:decimal(5,4)"`
	ModelVersion    string    `json:"model_version" gorm:"type:varchar(32)"`
	Cached          bool      `json:"cached" gorm:"default:false"`
	LatencyMs       int64     `json:"latency_ms" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (PredictionRecord) TableName() string {
	return "predictions"
}

// NewPredictionRecord creates a record for a finished prediction
func NewPredictionRecord(requestID, textHash string, textLength int, result *PredictionResult, modelVersion string) *PredictionRecord {
	return &PredictionRecord{
		ID:              uuid.New(),
		RequestID:       requestID,
		TextHash:        textHash,
		TextLength:      textLength,
		Prediction:      result.Prediction,
		IsSpam:          result.IsSpam,
		Confidence:      result.Confidence,
		SpamProbability: result.SpamProbability,
		ModelVersion:    modelVersion,
	}
}

// SetTiming records how the prediction was served
func (r *PredictionRecord) SetTiming(latencyMs int64, cached bool) {
	r.LatencyMs = latencyMs
	r.Cached = cached
}

// PredictionStats aggregates the prediction history
type PredictionStats struct {
	Total             int64   `json:"total"`
	Spam              int64   `json:"spam"`
	Legitimate        int64   `json:"legitimate"`
	SpamRate          float64 `json:"spam_rate"`
	AverageConfidence float64 `json:"average_confidence"`
}

// CalculateSpamRate fills SpamRate from the counters
func (s *PredictionStats) CalculateSpamRate() {
	if s.Total == 0 {
		s.SpamRate = 0
		return
	}
	s.SpamRate = float64(s.Spam) / float64(s.Total)
}
