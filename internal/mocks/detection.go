package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

var _ service.IDetectionService = (*MockDetectionService)(nil)

// MockDetectionService is a mock implementation of the DetectionService interface
type MockDetectionService struct {
	mock.Mock
}

func (m *MockDetectionService) Detect(ctx context.Context, userID uuid.UUID, category string, image []byte, contentType string) (*types.DetectionResponse, error) {
	args := m.Called(ctx, userID, category, image, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DetectionResponse), args.Error(1)
}
