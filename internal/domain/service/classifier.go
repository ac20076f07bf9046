package service

import "github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"

// FeatureVector is a sparse numeric representation of a normalized text.
// Indices are strictly increasing and every index is below Dim.
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Dot returns the inner product with a dense weight row of length Dim
func (v FeatureVector) Dot(weights []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * weights[idx]
	}
	return sum
}

// NNZ returns the number of stored entries
func (v FeatureVector) NNZ() int {
	return len(v.Indices)
}

// Vectorizer turns normalized text into a feature vector
type Vectorizer interface {
	// Transform vectorizes a single normalized text
	Transform(normalized string) (FeatureVector, error)

	// Dimension is the fixed length of every produced vector
	Dimension() int
}

// Classifier assigns a binary label to a feature vector
type Classifier interface {
	// PredictLabel returns the predicted class
	PredictLabel(features FeatureVector) (entity.Label, error)

	// Name is a human readable model name
	Name() string
}

// ProbabilityEstimator is implemented by classifiers that can report a
// per-class probability distribution, ordered by class index.
type ProbabilityEstimator interface {
	PredictProbabilities(features FeatureVector) ([]float64, error)
}
