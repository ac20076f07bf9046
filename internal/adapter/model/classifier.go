package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
)

// Classifier types
const (
	ClassifierLogisticRegression = "logistic_regression"
	ClassifierLinearSVC          = "linear_svc"
	ClassifierMultinomialNB      = "multinomial_nb"
	ClassifierDummy              = "dummy"
)

// classifierDocument is the exported form of a fitted classifier. Only the
// fields of the given type are read.
type classifierDocument struct {
	Type    string       `json:"type"`
	Classes []classLabel `json:"classes"`

	// linear models
	Coef      [][]float64 `json:"coef,omitempty"`
	Intercept []float64   `json:"intercept,omitempty"`

	// naive bayes
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`

	// dummy
	Strategy   string    `json:"strategy,omitempty"`
	ClassPrior []float64 `json:"class_prior,omitempty"`
}

func newClassifier(doc *classifierDocument, dim int) (service.Classifier, error) {
	classes := toLabels(doc.Classes)

	switch doc.Type {
	case ClassifierLogisticRegression, ClassifierLinearSVC:
		lm, err := newLinearModel(doc, classes, dim)
		if err != nil {
			return nil, err
		}
		if doc.Type == ClassifierLinearSVC {
			return &LinearSVC{linearModel: lm}, nil
		}
		return &LogisticRegression{linearModel: lm}, nil
	case ClassifierMultinomialNB:
		return newMultinomialNB(doc, classes, dim)
	case ClassifierDummy:
		return newDummyClassifier(doc, classes)
	case "":
		return nil, errors.New("missing classifier type")
	default:
		return nil, fmt.Errorf("unsupported classifier type %q", doc.Type)
	}
}

type linearModel struct {
	classes   []entity.Label
	weights   []float64
	intercept float64
}

func newLinearModel(doc *classifierDocument, classes []entity.Label, dim int) (linearModel, error) {
	if err := checkClasses(classes, 2); err != nil {
		return linearModel{}, err
	}
	if len(doc.Coef) != 1 {
		return linearModel{}, fmt.Errorf("binary linear model needs 1 coefficient row, got %d", len(doc.Coef))
	}
	if err := checkRow("coef", doc.Coef[0], dim); err != nil {
		return linearModel{}, err
	}
	if len(doc.Intercept) != 1 {
		return linearModel{}, fmt.Errorf("binary linear model needs 1 intercept, got %d", len(doc.Intercept))
	}
	return linearModel{
		classes:   classes,
		weights:   doc.Coef[0],
		intercept: doc.Intercept[0],
	}, nil
}

func (m linearModel) decision(features service.FeatureVector) (float64, error) {
	if features.Dim != len(m.weights) {
		return 0, fmt.Errorf("feature vector has %d dimensions, model expects %d", features.Dim, len(m.weights))
	}
	return features.Dot(m.weights) + m.intercept, nil
}

func (m linearModel) predict(features service.FeatureVector) (entity.Label, error) {
	d, err := m.decision(features)
	if err != nil {
		return entity.LabelLegitimate, err
	}
	if d > 0 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}

// LogisticRegression is a binary logistic regression model
type LogisticRegression struct {
	linearModel
}

var (
	_ service.Classifier           = (*LogisticRegression)(nil)
	_ service.ProbabilityEstimator = (*LogisticRegression)(nil)
)

// Name returns the display name
func (m *LogisticRegression) Name() string {
	return "Logistic Regression"
}

// PredictLabel returns the class on the positive side of the hyperplane
func (m *LogisticRegression) PredictLabel(features service.FeatureVector) (entity.Label, error) {
	return m.predict(features)
}

// PredictProbabilities returns [P(legitimate), P(spam)]
func (m *LogisticRegression) PredictProbabilities(features service.FeatureVector) ([]float64, error) {
	d, err := m.decision(features)
	if err != nil {
		return nil, err
	}
	p := sigmoid(d)
	return []float64{1 - p, p}, nil
}

// LinearSVC is a linear support vector classifier. It has no probability
// estimates.
type LinearSVC struct {
	linearModel
}

var _ service.Classifier = (*LinearSVC)(nil)

// Name returns the display name
func (m *LinearSVC) Name() string {
	return "Linear SVC"
}

// PredictLabel returns the class on the positive side of the hyperplane
func (m *LinearSVC) PredictLabel(features service.FeatureVector) (entity.Label, error) {
	return m.predict(features)
}

// MultinomialNB is a multinomial naive Bayes model
type MultinomialNB struct {
	classes        []entity.Label
	classLogPrior  []float64
	featureLogProb [][]float64
}

var (
	_ service.Classifier           = (*MultinomialNB)(nil)
	_ service.ProbabilityEstimator = (*MultinomialNB)(nil)
)

func newMultinomialNB(doc *classifierDocument, classes []entity.Label, dim int) (*MultinomialNB, error) {
	if err := checkClasses(classes, 0); err != nil {
		return nil, err
	}
	if len(doc.ClassLogPrior) != len(classes) {
		return nil, fmt.Errorf("class_log_prior has %d entries for %d classes", len(doc.ClassLogPrior), len(classes))
	}
	if len(doc.FeatureLogProb) != len(classes) {
		return nil, fmt.Errorf("feature_log_prob has %d rows for %d classes", len(doc.FeatureLogProb), len(classes))
	}
	for i, row := range doc.FeatureLogProb {
		if err := checkRow(fmt.Sprintf("feature_log_prob[%d]", i), row, dim); err != nil {
			return nil, err
		}
	}
	return &MultinomialNB{
		classes:        classes,
		classLogPrior:  doc.ClassLogPrior,
		featureLogProb: doc.FeatureLogProb,
	}, nil
}

// Name returns the display name
func (m *MultinomialNB) Name() string {
	return "Multinomial Naive Bayes"
}

func (m *MultinomialNB) jointLogLikelihood(features service.FeatureVector) ([]float64, error) {
	if features.Dim != len(m.featureLogProb[0]) {
		return nil, fmt.Errorf("feature vector has %d dimensions, model expects %d", features.Dim, len(m.featureLogProb[0]))
	}
	jll := make([]float64, len(m.classes))
	for c := range m.classes {
		jll[c] = m.classLogPrior[c] + features.Dot(m.featureLogProb[c])
	}
	return jll, nil
}

// PredictLabel returns the class with the highest joint log-likelihood
func (m *MultinomialNB) PredictLabel(features service.FeatureVector) (entity.Label, error) {
	jll, err := m.jointLogLikelihood(features)
	if err != nil {
		return entity.LabelLegitimate, err
	}
	return m.classes[argmax(jll)], nil
}

// PredictProbabilities returns the normalized class posteriors
func (m *MultinomialNB) PredictProbabilities(features service.FeatureVector) ([]float64, error) {
	jll, err := m.jointLogLikelihood(features)
	if err != nil {
		return nil, err
	}
	return softmax(jll), nil
}

// DummyClassifier ignores its input and predicts from the class prior
type DummyClassifier struct {
	classes  []entity.Label
	prior    []float64
	strategy string
}

var (
	_ service.Classifier           = (*DummyClassifier)(nil)
	_ service.ProbabilityEstimator = (*DummyClassifier)(nil)
)

func newDummyClassifier(doc *classifierDocument, classes []entity.Label) (*DummyClassifier, error) {
	if err := checkClasses(classes, 0); err != nil {
		return nil, err
	}
	strategy := doc.Strategy
	if strategy == "" {
		strategy = "prior"
	}
	if strategy != "prior" && strategy != "most_frequent" {
		return nil, fmt.Errorf("unsupported dummy strategy %q", strategy)
	}
	if len(doc.ClassPrior) != len(classes) {
		return nil, fmt.Errorf("class_prior has %d entries for %d classes", len(doc.ClassPrior), len(classes))
	}
	return &DummyClassifier{
		classes:  classes,
		prior:    doc.ClassPrior,
		strategy: strategy,
	}, nil
}

// Name returns the display name
func (m *DummyClassifier) Name() string {
	return "Dummy Classifier"
}

// PredictLabel returns the most frequent class
func (m *DummyClassifier) PredictLabel(service.FeatureVector) (entity.Label, error) {
	return m.classes[argmax(m.prior)], nil
}

// PredictProbabilities returns the prior, or a one-hot vector for the
// most_frequent strategy
func (m *DummyClassifier) PredictProbabilities(service.FeatureVector) ([]float64, error) {
	out := make([]float64, len(m.prior))
	if m.strategy == "most_frequent" {
		out[argmax(m.prior)] = 1
		return out, nil
	}
	copy(out, m.prior)
	return out, nil
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func softmax(xs []float64) []float64 {
	maxV := xs[argmax(xs)]
	out := make([]float64, len(xs))
	var sum float64
	for i, x := range xs {
		out[i] = math.Exp(x - maxV)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// argmax returns the first index of the largest value
func argmax(xs []float64) int {
	best := 0
	for i, x := range xs[1:] {
		if x > xs[best] {
			best = i + 1
		}
	}
	return best
}
