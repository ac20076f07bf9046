package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

// Request error kinds
var (
	ErrEmptyInput       = errors.New("email text cannot be empty")
	ErrTextMissing      = fmt.Errorf("%w: no text provided", ErrEmptyInput)
	ErrInferenceFailure = errors.New("inference failure")
)

// InferenceError reports a failure inside the prediction pipeline.
// It matches ErrInferenceFailure with errors.Is.
type InferenceError struct {
	Message string
}

func (e *InferenceError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInferenceFailure) hold
func (e *InferenceError) Is(target error) bool {
	return target == ErrInferenceFailure
}

// Predictor runs normalize -> vectorize -> classify over a loaded model.
// It holds no mutable state and is safe for concurrent use.
type Predictor struct {
	vectorizer Vectorizer
	classifier Classifier
}

// NewPredictor wires a vectorizer to the classifier it was trained with
func NewPredictor(vectorizer Vectorizer, classifier Classifier) *Predictor {
	return &Predictor{
		vectorizer: vectorizer,
		classifier: classifier,
	}
}

// ModelName returns the classifier's display name
func (p *Predictor) ModelName() string {
	return p.classifier.Name()
}

// Dimension returns the feature space size
func (p *Predictor) Dimension() int {
	return p.vectorizer.Dimension()
}

// Predict classifies raw text. A nil text yields ErrTextMissing, a blank
// text ErrEmptyInput; anything failing past validation is an *InferenceError.
func (p *Predictor) Predict(text *string) (*entity.PredictionResult, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	return p.PredictNormalized(Normalize(*text))
}

// ValidateText rejects absent and blank input
func ValidateText(text *string) error {
	if text == nil {
		return ErrTextMissing
	}
	if strings.TrimFunc(*text, isSpace) == "" {
		return ErrEmptyInput
	}
	return nil
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which Python's str.isspace also counts as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// PredictNormalized runs the pipeline on text that already went through
// Normalize. Validation of the raw input is the caller's job.
func (p *Predictor) PredictNormalized(normalized string) (result *entity.PredictionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &InferenceError{Message: fmt.Sprint(r)}
		}
	}()

	features, err := p.vectorizer.Transform(normalized)
	if err != nil {
		return nil, &InferenceError{Message: err.Error()}
	}

	label, err := p.classifier.PredictLabel(features)
	if err != nil {
		return nil, &InferenceError{Message: err.Error()}
	}

	confidence, spamProbability, err := p.scores(label, features)
	if err != nil {
		return nil, &InferenceError{Message: err.Error()}
	}

	return entity.NewPredictionResult(label, confidence, spamProbability), nil
}

// scores derives confidence and spam probability. Without a probability
// estimate the label is taken as certain. A distribution with a single
// entry keeps its max as confidence but falls back to the label for the
// spam probability.
func (p *Predictor) scores(label entity.Label, features FeatureVector) (confidence, spamProbability float64, err error) {
	labelProbability := 0.0
	if label.IsSpam() {
		labelProbability = 1.0
	}

	estimator, ok := p.classifier.(ProbabilityEstimator)
	if !ok {
		return 1.0, labelProbability, nil
	}

	distribution, err := estimator.PredictProbabilities(features)
	if err != nil {
		return 0, 0, err
	}
	if len(distribution) == 0 {
		return 0, 0, errors.New("classifier returned an empty probability distribution")
	}
	for i, v := range distribution {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return 0, 0, fmt.Errorf("invalid probability %v for class %d", v, i)
		}
	}

	confidence = distribution[0]
	for _, v := range distribution[1:] {
		confidence = math.Max(confidence, v)
	}

	if len(distribution) >= 2 {
		return confidence, distribution[int(entity.LabelSpam)], nil
	}
	return confidence, labelProbability, nil
}
