package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/client"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/model"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/service"
)

type predictor interface {
	Predict(ctx context.Context, text string) (*entity.PredictionResult, error)
}

type localPredictor struct {
	predictor *service.Predictor
}

func (p localPredictor) Predict(_ context.Context, text string) (*entity.PredictionResult, error) {
	return p.predictor.Predict(&text)
}

func (a *app) newPredictor() (predictor, error) {
	if a.remote != "" {
		a.log.Debug("Using remote spam detector", zap.String("url", a.remote))
		return client.NewRemotePredictor(client.NewSpamClient(a.remote, a.timeout)), nil
	}

	artifacts, err := model.LoadArtifacts(&a.cfg.Model)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Model loaded",
		zap.String("classifier", artifacts.Classifier.Name()),
		zap.Int("features", artifacts.Vectorizer.Dimension()),
	)
	return localPredictor{predictor: artifacts.Predictor()}, nil
}
