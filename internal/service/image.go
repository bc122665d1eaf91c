package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaptureLinkTTL bounds how long a returned capture link stays valid.
const CaptureLinkTTL = 15 * time.Minute

// ObjectStore is the subset of the S3 wrapper the capture archive needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// CaptureArchive keeps uploaded camera captures in object storage.
type CaptureArchive struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewCaptureArchive creates a new CaptureArchive instance
func NewCaptureArchive(store ObjectStore, logger *zap.Logger) *CaptureArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaptureArchive{store: store, logger: logger}
}

// Archive uploads image and returns its object key.
func (a *CaptureArchive) Archive(ctx context.Context, userID uuid.UUID, category string, image []byte, contentType string) (string, error) {
	contentType = sniffContentType(image, contentType)
	key := captureKey(userID, category, contentType)

	if err := a.store.PutObject(ctx, key, image, contentType); err != nil {
		return "", fmt.Errorf("failed to upload capture: %w", err)
	}
	a.logger.Debug("capture archived", zap.String("key", key), zap.Int("bytes", len(image)))
	return key, nil
}

// Link returns a short-lived download URL for an archived capture.
func (a *CaptureArchive) Link(ctx context.Context, key string) (string, error) {
	return a.store.GeneratePresignedURL(ctx, key, CaptureLinkTTL)
}

func captureKey(userID uuid.UUID, category, contentType string) string {
	return fmt.Sprintf("captures/%s/%s/%s.%s", userID, strings.ToLower(category), uuid.NewString(), extensionFor(contentType))
}

func sniffContentType(image []byte, declared string) string {
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return http.DetectContentType(image)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
