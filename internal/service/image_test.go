package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nutrilife/backend/internal/service"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *mockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func TestCaptureArchiveKeys(t *testing.T) {
	store := new(mockObjectStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, "image/png").Return(nil)
	archive := service.NewCaptureArchive(store, nil)
	userID := uuid.New()

	png := []byte("\x89PNG\r\n\x1a\n0000")
	key, err := archive.Archive(context.Background(), userID, "Onions", png, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "captures/"+userID.String()+"/onions/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	store.AssertExpectations(t)
}

func TestCaptureArchiveError(t *testing.T) {
	store := new(mockObjectStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return(errors.New("access denied"))

	_, err := service.NewCaptureArchive(store, nil).Archive(context.Background(), uuid.New(), "onions", []byte("x"), "image/jpeg")
	assert.ErrorContains(t, err, "access denied")
}

func TestDetectionServiceLinksArchivedCapture(t *testing.T) {
	store := new(mockObjectStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return(nil)
	store.On("GeneratePresignedURL", mock.Anything, mock.Anything, service.CaptureLinkTTL).
		Return("https://bucket.example/capture?sig=abc", nil)

	svc := service.NewDetectionService(nil, service.NoopDetector{}, service.NewCaptureArchive(store, nil), nil)
	resp, err := svc.Detect(context.Background(), uuid.New(), "onions", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.example/capture?sig=abc", resp.ImageURL)
	assert.Empty(t, resp.Ingredients)
	store.AssertExpectations(t)
}

func TestDetectionServiceSkipsLinkWhenUploadFails(t *testing.T) {
	store := new(mockObjectStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return(errors.New("access denied"))

	svc := service.NewDetectionService(nil, service.NoopDetector{}, service.NewCaptureArchive(store, nil), nil)
	resp, err := svc.Detect(context.Background(), uuid.New(), "onions", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Empty(t, resp.ImageURL)
	store.AssertNotCalled(t, "GeneratePresignedURL", mock.Anything, mock.Anything, mock.Anything)
}
