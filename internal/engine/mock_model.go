package engine

import (
	"context"
	"sync"

	"github.com/bankflowhq/bankflow/internal/model"
)

// MockModel is a test double implementing both model collaborator contracts.
// It returns a fixed probability unless a PredictFunc is supplied.
type MockModel struct {
	PredictFunc   func([]float64) (float64, error)
	TransformErr  error
	Probability   float64
	mu            sync.Mutex
	predictCalls  int
	transformCall int
}

// Transform encodes just enough of the record for the mock predictor.
func (m *MockModel) Transform(_ context.Context, rec *model.ApplicantRecord) ([]float64, error) {
	m.mu.Lock()
	m.transformCall++
	m.mu.Unlock()

	if m.TransformErr != nil {
		return nil, m.TransformErr
	}

	return []float64{
		float64(rec.Age),
		rec.CreditAmount,
		float64(rec.Duration),
		float64(rec.InstallmentRate),
	}, nil
}

// Predict returns the configured probability or delegates to PredictFunc.
func (m *MockModel) Predict(_ context.Context, features []float64) (float64, error) {
	m.mu.Lock()
	m.predictCalls++
	m.mu.Unlock()

	if m.PredictFunc != nil {
		return m.PredictFunc(features)
	}
	return m.Probability, nil
}

// PredictCalls reports how many inferences the engine issued.
func (m *MockModel) PredictCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.predictCalls
}
