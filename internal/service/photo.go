package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"cardvault/internal/domain"
	"cardvault/internal/repository"
)

// MaxPhotoSize is the largest accepted upload, in bytes.
const MaxPhotoSize = 5 << 20

// allowedPhotoExts is the extension allow-list for uploads, lower-case.
var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoService coordinates a photo file's lifecycle with its database
// reference. Files are written before the reference is recorded; the
// database stays authoritative, and filesystem cleanup is best-effort.
type PhotoService struct {
	repo       repository.Repository
	uploadsDir string
	eventBus   *EventBus
	logger     *zap.Logger
}

// NewPhotoService creates a new photo service rooted at uploadsDir.
func NewPhotoService(repo repository.Repository, uploadsDir string, eventBus *EventBus, logger *zap.Logger) *PhotoService {
	return &PhotoService{
		repo:       repo,
		uploadsDir: uploadsDir,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// UploadsDir returns the uploads root directory.
func (s *PhotoService) UploadsDir() string {
	return s.uploadsDir
}

// Upload validates and stores the photo bytes for a card, then records
// the reference. Validation failures and absent cards are detected
// before any write. A database failure after a successful write orphans
// the file; that gap is logged rather than hidden.
func (s *PhotoService) Upload(ctx context.Context, cardID int64, filename string, data []byte) (string, error) {
	if len(data) > MaxPhotoSize {
		return "", &domain.ValidationError{Field: "photo", Reason: "file too large (max 5 MiB)"}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPhotoExts[ext] {
		return "", &domain.ValidationError{Field: "photo", Reason: "only jpg/jpeg/png/webp allowed"}
	}

	card, err := s.repo.GetCard(ctx, cardID)
	if err != nil {
		return "", err
	}
	if card == nil {
		return "", domain.ErrNotFound
	}

	if err := os.MkdirAll(s.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	// Card id plus millisecond timestamp keeps concurrent uploads for
	// different cards collision-free.
	name := fmt.Sprintf("card_%d_%d%s", cardID, time.Now().UnixMilli(), ext)
	dest := filepath.Join(s.uploadsDir, name)

	if err := atomic.WriteFile(dest, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	relPath := filepath.ToSlash(filepath.Join(filepath.Base(s.uploadsDir), name))
	if err := s.repo.UpdateCardPhoto(ctx, cardID, relPath); err != nil {
		// The file is already on disk with no referencing row.
		s.logger.Warn("photo file orphaned after db failure",
			zap.String("path", dest), zap.Error(err))
		return "", err
	}

	// Replace: the old file has lost its reference, reclaim it.
	if old := strings.TrimPrefix(card.PhotoURL, "/"); old != "" && old != relPath {
		s.CleanupFile(old)
	}

	s.logger.Info("photo stored", zap.Int64("card_id", cardID), zap.String("path", relPath))
	s.eventBus.Publish(Event{Type: EventPhotoUpdated, Payload: map[string]any{
		"card_id": cardID, "photo_url": "/" + relPath,
	}})
	return "/" + relPath, nil
}

// Remove clears the card's photo reference and then deletes the file.
// The database is cleared first so it stays authoritative; file-deletion
// failure is swallowed. Returns the cleared relative path ("" when the
// card had no photo) or domain.ErrNotFound.
func (s *PhotoService) Remove(ctx context.Context, cardID int64) (string, error) {
	old, err := s.repo.ClearCardPhoto(ctx, cardID)
	if err != nil {
		return "", err
	}

	if old != "" {
		s.CleanupFile(old)
		s.eventBus.Publish(Event{Type: EventPhotoRemoved, Payload: map[string]int64{"card_id": cardID}})
	}
	return old, nil
}

// CleanupFile removes a stored photo by its relative path, best-effort.
// A failure leaves an orphaned file, which is an accepted outcome.
func (s *PhotoService) CleanupFile(relPath string) {
	name := filepath.Base(relPath)
	if err := os.Remove(filepath.Join(s.uploadsDir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove photo file", zap.String("path", relPath), zap.Error(err))
	}
}

// ResolveServePath maps a caller-supplied filename to its on-disk path.
// Only flat names directly under the uploads root are servable: anything
// containing a path separator or parent-directory token is rejected.
func (s *PhotoService) ResolveServePath(requested string) (string, error) {
	if requested == "" ||
		strings.ContainsAny(requested, `/\`) ||
		strings.Contains(requested, "..") {
		return "", &domain.ValidationError{Field: "filename", Reason: "invalid photo filename"}
	}
	return filepath.Join(s.uploadsDir, requested), nil
}
