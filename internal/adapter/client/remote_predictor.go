package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
)

// RemotePredictor adapts SpamClient to the domain error kinds, so callers
// treat a remote service like a local model
type RemotePredictor struct {
	client *SpamClient
}

// NewRemotePredictor creates a new RemotePredictor
func NewRemotePredictor(client *SpamClient) *RemotePredictor {
	return &RemotePredictor{client: client}
}

// Predict classifies a single text remotely
func (p *RemotePredictor) Predict(ctx context.Context, text string) (*entity.PredictionResult, error) {
	result, err := p.client.Predict(ctx, text, "")
	if err != nil {
		return nil, domainError(err)
	}
	return result, nil
}

func domainError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.StatusCode == http.StatusBadRequest && apiErr.Message == "No text provided":
		return service.ErrTextMissing
	case apiErr.StatusCode == http.StatusBadRequest:
		return service.ErrEmptyInput
	case apiErr.StatusCode == http.StatusInternalServerError && strings.HasPrefix(apiErr.Message, "Prediction failed: "):
		return &service.InferenceError{Message: strings.TrimPrefix(apiErr.Message, "Prediction failed: ")}
	default:
		return err
	}
}
