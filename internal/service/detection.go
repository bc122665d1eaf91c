package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/internal/models"
	"github.com/nutrilife/backend/internal/types"
)

const MaxImageBytes = 8 << 20

var (
	ErrEmptyImage            = errors.New("image is required")
	ErrImageTooLarge         = errors.New("image exceeds the upload limit")
	ErrInvalidCategory       = errors.New("category must be a lowercase word")
	ErrDetectorNotConfigured = errors.New("detection provider is not configured")
	errDetectionDisabled     = errors.New("detection disabled")

	categoryPattern = regexp.MustCompile(`^[a-z][a-z_-]{0,49}$`)
)

// Detector runs a vision model over an image and returns the provider's
// decoded response.
type Detector interface {
	Name() string
	Detect(ctx context.Context, image []byte, contentType string) (any, error)
}

// RoboflowDetector calls a hosted Roboflow workflow.
type RoboflowDetector struct {
	workflowURL string
	apiKey      string
	client      *http.Client
}

func NewRoboflowDetector(workflowURL, apiKey string, timeout time.Duration) *RoboflowDetector {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &RoboflowDetector{
		workflowURL: workflowURL,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: timeout},
	}
}

func (d *RoboflowDetector) Name() string { return "roboflow" }

func (d *RoboflowDetector) Detect(ctx context.Context, image []byte, contentType string) (any, error) {
	if d.workflowURL == "" {
		return nil, ErrDetectorNotConfigured
	}

	reqBody := map[string]any{
		"api_key": d.apiKey,
		"inputs": map[string]any{
			"image": map[string]any{
				"type":  "base64",
				"value": imageDataURI(image, contentType),
			},
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.workflowURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workflow request failed with status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload, nil
}

// LabelDetector is the Rekognition call used for detection.
type LabelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionDetector maps AWS Rekognition labels onto the prediction shape
// the confidence extractor understands. Confidences are scaled to [0, 1].
type RekognitionDetector struct {
	client        LabelDetector
	maxLabels     int32
	minConfidence float32
}

func NewRekognitionDetector(client LabelDetector) *RekognitionDetector {
	return &RekognitionDetector{client: client, maxLabels: 25, minConfidence: 50}
}

func (d *RekognitionDetector) Name() string { return "rekognition" }

func (d *RekognitionDetector) Detect(ctx context.Context, image []byte, _ string) (any, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &rektypes.Image{Bytes: image},
		MaxLabels:     aws.Int32(d.maxLabels),
		MinConfidence: aws.Float32(d.minConfidence),
	})
	if err != nil {
		return nil, err
	}

	predictions := make([]any, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil || l.Confidence == nil {
			continue
		}
		predictions = append(predictions, map[string]any{
			"class":      strings.ToLower(*l.Name),
			"confidence": float64(*l.Confidence) / 100,
		})
	}
	return map[string]any{"predictions": predictions}, nil
}

// NoopDetector recognizes nothing. It backs the "none" provider.
type NoopDetector struct{}

func (NoopDetector) Name() string { return "none" }

func (NoopDetector) Detect(context.Context, []byte, string) (any, error) {
	return nil, errDetectionDisabled
}

// CaptureArchiver stores uploaded captures.
type CaptureArchiver interface {
	Archive(ctx context.Context, userID uuid.UUID, category string, image []byte, contentType string) (string, error)
}

// captureLinker is implemented by archives that can hand out download links.
type captureLinker interface {
	Link(ctx context.Context, key string) (string, error)
}

// DetectionService recognizes one ingredient category in a capture. Provider
// and archive failures degrade to "nothing recognized".
type DetectionService struct {
	db       *gorm.DB
	detector Detector
	archive  CaptureArchiver
	logger   *zap.Logger
}

var _ IDetectionService = (*DetectionService)(nil)

// NewDetectionService creates a new DetectionService. archive may be nil.
func NewDetectionService(db *gorm.DB, detector Detector, archive CaptureArchiver, logger *zap.Logger) *DetectionService {
	if detector == nil {
		detector = NoopDetector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetectionService{db: db, detector: detector, archive: archive, logger: logger}
}

func (s *DetectionService) Detect(ctx context.Context, userID uuid.UUID, category string, image []byte, contentType string) (*types.DetectionResponse, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if !categoryPattern.MatchString(category) {
		return nil, ErrInvalidCategory
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if len(image) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	resp := &types.DetectionResponse{Category: category, Ingredients: []types.DetectedIngredient{}}
	record := &models.DetectionRecord{
		UserID:   userID,
		Category: category,
		Provider: s.detector.Name(),
	}

	if s.archive != nil {
		key, err := s.archive.Archive(ctx, userID, category, image, contentType)
		if err != nil {
			s.logger.Warn("capture archive failed", zap.Error(err))
		}
		record.ImageKey = key
		if linker, ok := s.archive.(captureLinker); ok && key != "" {
			if url, err := linker.Link(ctx, key); err != nil {
				s.logger.Warn("failed to link capture", zap.String("key", key), zap.Error(err))
			} else {
				resp.ImageURL = url
			}
		}
	}

	payload, err := s.detector.Detect(ctx, image, contentType)
	if err != nil {
		s.logger.Warn("ingredient detection failed",
			zap.String("provider", s.detector.Name()),
			zap.String("category", category),
			zap.Error(err))
		record.Failure = err.Error()
	} else if confidence, ok := ExtractMaxConfidence(payload, category); ok {
		record.Detected = true
		record.Confidence = confidence
		resp.Ingredients = append(resp.Ingredients, types.DetectedIngredient{
			Name:       IngredientName(category),
			Confidence: confidence,
		})
	}

	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
			s.logger.Warn("failed to record detection", zap.Error(err))
		}
	}
	return resp, nil
}

// imageDataURI wraps image as a data URI, sniffing the type when the
// declared one is not an image type.
func imageDataURI(image []byte, contentType string) string {
	return "data:" + sniffContentType(image, contentType) + ";base64," + base64.StdEncoding.EncodeToString(image)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
