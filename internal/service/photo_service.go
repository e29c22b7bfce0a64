package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nuestraboda/rsvp-backend/internal/models"
	"github.com/nuestraboda/rsvp-backend/pkg/payload"
	"github.com/nuestraboda/rsvp-backend/pkg/storage"
)

var (
	// ErrMissingRSVPID means the photo batch arrived without an owning
	// RSVP id. Nothing is uploaded in that case.
	ErrMissingRSVPID = errors.New("missing RSVP id")

	// ErrRSVPNotFound means the supplied id does not match a stored RSVP.
	ErrRSVPNotFound = errors.New("RSVP not found")
)

// PhotoStore persists photo metadata. *repository.PhotoRepository satisfies
// it.
type PhotoStore interface {
	Create(photo *models.Photo) error
}

// RSVPGetter is the narrow lookup the orchestrator needs to verify the owner
// exists before touching storage.
type RSVPGetter interface {
	GetByID(id uint) (*models.RSVP, error)
}

type PhotoService struct {
	photos  PhotoStore
	rsvps   RSVPGetter
	storage storage.ObjectStorage
	logger  *zap.Logger
}

func NewPhotoService(photos PhotoStore, rsvps RSVPGetter, objectStorage storage.ObjectStorage, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		photos:  photos,
		rsvps:   rsvps,
		storage: objectStorage,
		logger:  logger,
	}
}

// BatchResult is the outcome of one photo batch: the public URLs that made it
// all the way through, plus a count of files that did not.
type BatchResult struct {
	URLs   []string
	Failed int
}

// UploadBatch uploads each file to object storage and records the resulting
// URL, one file at a time. Failures are isolated per file: a file that cannot
// be uploaded or persisted is logged, counted and skipped, and the remaining
// files are still processed. This is deliberately the opposite of the
// all-or-nothing transaction used for RSVP and guest rows.
func (s *PhotoService) UploadBatch(ctx context.Context, rsvpID uint, files []payload.File) (*BatchResult, error) {
	if rsvpID == 0 {
		return nil, ErrMissingRSVPID
	}
	if _, err := s.rsvps.GetByID(rsvpID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrRSVPNotFound, rsvpID)
	}

	result := &BatchResult{URLs: make([]string, 0, len(files))}
	for _, file := range files {
		url, err := s.uploadOne(ctx, rsvpID, file)
		if err != nil {
			s.logger.Warn("photo upload failed",
				zap.Uint("rsvpID", rsvpID),
				zap.String("filename", file.Filename),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.URLs = append(result.URLs, url)
	}

	s.logger.Info("photo batch processed",
		zap.Uint("rsvpID", rsvpID),
		zap.Int("uploaded", len(result.URLs)),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// uploadOne runs the upload-then-persist step for a single file. If the
// metadata insert fails after a successful upload, the stored object is
// removed best effort so neither side keeps an orphan.
func (s *PhotoService) uploadOne(ctx context.Context, rsvpID uint, file payload.File) (string, error) {
	if !isValidImageType(file.MimeType) {
		return "", fmt.Errorf("unsupported image type %q", file.MimeType)
	}

	key := objectKey(rsvpID, file.Filename)
	url, err := s.storage.Upload(ctx, key, file.Data, file.MimeType)
	if err != nil {
		return "", fmt.Errorf("upload %q: %w", file.Filename, err)
	}

	photo := &models.Photo{
		RSVPID:   rsvpID,
		URL:      url,
		Filename: file.Filename,
	}
	if err := s.photos.Create(photo); err != nil {
		_ = s.storage.Delete(ctx, key)
		return "", fmt.Errorf("persist photo %q: %w", file.Filename, err)
	}

	return url, nil
}

func objectKey(rsvpID uint, filename string) string {
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("rsvps/%d/%d_%s", rsvpID, time.Now().UnixNano(), base)
}

func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}
