package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Fawaz-asif/Email-spam-detector/internal/domain/entity"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// MockPredictionUsecase is a mock implementation of usecase.PredictionUsecase
type MockPredictionUsecase struct {
	mock.Mock
}

func (m *MockPredictionUsecase) Predict(ctx context.Context, input *usecase.PredictInput) (*usecase.PredictOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictOutput), args.Error(1)
}

func (m *MockPredictionUsecase) ListHistory(ctx context.Context, limit, offset int) (*usecase.HistoryOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.HistoryOutput), args.Error(1)
}

func (m *MockPredictionUsecase) Stats(ctx context.Context) (*entity.PredictionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PredictionStats), args.Error(1)
}

func (m *MockPredictionUsecase) ModelInfo() *usecase.ModelInfo {
	return m.Called().Get(0).(*usecase.ModelInfo)
}

var testModelInfo = &usecase.ModelInfo{
	Name:          "Logistic Regression",
	Version:       "1.0",
	Features:      5000,
	Probabilities: true,
}
