package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
)

// ArtifactError reports a missing, unreadable or incompatible artifact.
// It is only produced while loading.
type ArtifactError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s artifact: %v", e.Artifact, e.Err)
	}
	return fmt.Sprintf("%s artifact %s: %v", e.Artifact, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// classLabel decodes a class as exported by the training pipeline:
// either the integer index or a string name.
type classLabel entity.Label

func (c *classLabel) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		switch n {
		case 0, 1:
			*c = classLabel(n)
			return nil
		}
		return fmt.Errorf("unsupported class %d", n)
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("class must be an integer or a string: %s", data)
	}
	switch strings.ToLower(s) {
	case "1", "spam":
		*c = classLabel(entity.LabelSpam)
	case "0", "ham", "legitimate", "not_spam":
		*c = classLabel(entity.LabelLegitimate)
	default:
		return fmt.Errorf("unsupported class %q", s)
	}
	return nil
}

func toLabels(classes []classLabel) []entity.Label {
	labels := make([]entity.Label, len(classes))
	for i, c := range classes {
		labels[i] = entity.Label(c)
	}
	return labels
}

// checkClasses validates the class list against the binary label space
func checkClasses(classes []entity.Label, want int) error {
	if want > 0 && len(classes) != want {
		return fmt.Errorf("expected %d classes, got %d", want, len(classes))
	}
	if len(classes) == 0 || len(classes) > 2 {
		return fmt.Errorf("expected 1 or 2 classes, got %d", len(classes))
	}
	if len(classes) == 2 && (classes[0] != entity.LabelLegitimate || classes[1] != entity.LabelSpam) {
		return fmt.Errorf("classes must be ordered [legitimate, spam], got %v", classes)
	}
	return nil
}

func checkRow(name string, row []float64, dim int) error {
	if len(row) != dim {
		return fmt.Errorf("%s has %d weights, vectorizer has %d features", name, len(row), dim)
	}
	return nil
}
