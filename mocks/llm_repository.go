package mocks

import (
	"context"
	"slices"

	"github.com/stretchr/testify/mock"

	"github.com/promptdeck/promptdeck-backend/models"
	"github.com/promptdeck/promptdeck-backend/repositories"
)

// StreamCompletion sends the configured Deltas to the handler before returning.
// Supports is true for every model outside of UnsupportedModels.
type LLMRepository struct {
	mock.Mock
	Deltas            []string
	UnsupportedModels []string
}

func (m *LLMRepository) Supports(model string) bool {
	return !slices.Contains(m.UnsupportedModels, model)
}

func (m *LLMRepository) StreamCompletion(
	ctx context.Context,
	req models.CompletionRequest,
	onDelta repositories.DeltaHandler,
) (models.Completion, error) {
	args := m.Called(ctx, req)
	for _, delta := range m.Deltas {
		if err := onDelta(delta); err != nil {
			return models.Completion{}, err
		}
	}
	return args.Get(0).(models.Completion), args.Error(1)
}

func (m *LLMRepository) Complete(ctx context.Context, req models.CompletionRequest) (models.Completion, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Completion), args.Error(1)
}
