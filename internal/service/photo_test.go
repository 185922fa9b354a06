package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cardvault/internal/domain"
	"cardvault/internal/repository/sqlite"
)

func newPhotoFixture(t *testing.T) (*PhotoService, *sqlite.Repository, string) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	dir := filepath.Join(t.TempDir(), "uploads")
	return NewPhotoService(repo, dir, NewEventBus(), zap.NewNop()), repo, dir
}

func createCard(t *testing.T, repo *sqlite.Repository) int64 {
	t.Helper()
	id, err := repo.CreateCard(context.Background(), domain.CardInput{Name: "Anika Sharma"})
	require.NoError(t, err)
	return id
}

func TestUploadStoresFileAndReference(t *testing.T) {
	photos, repo, dir := newPhotoFixture(t)
	ctx := context.Background()
	id := createCard(t, repo)

	url, err := photos.Upload(ctx, id, "pic.PNG", []byte("fake png bytes"))
	require.NoError(t, err)

	prefix := fmt.Sprintf("/%s/card_%d_", filepath.Base(dir), id)
	assert.True(t, strings.HasPrefix(url, prefix), "unexpected url %q", url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	// File is on disk under the uploads root
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Reference recorded only after the write
	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, url, card.PhotoURL)
}

func TestUploadReplaceReclaimsOldFile(t *testing.T) {
	photos, repo, dir := newPhotoFixture(t)
	ctx := context.Background()
	id := createCard(t, repo)

	_, err := photos.Upload(ctx, id, "old.jpg", []byte("old"))
	require.NoError(t, err)
	url, err := photos.Upload(ctx, id, "new.webp", []byte("new"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(url), entries[0].Name())
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	photos, repo, dir := newPhotoFixture(t)
	id := createCard(t, repo)

	_, err := photos.Upload(context.Background(), id, "virus.exe", []byte("content"))
	assert.True(t, domain.IsValidation(err))

	// Rejected before any write
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadRejectsOversizedPhoto(t *testing.T) {
	photos, repo, dir := newPhotoFixture(t)
	id := createCard(t, repo)

	_, err := photos.Upload(context.Background(), id, "big.png", make([]byte, MaxPhotoSize+1))
	assert.True(t, domain.IsValidation(err))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadAbsentCard(t *testing.T) {
	photos, _, _ := newPhotoFixture(t)

	_, err := photos.Upload(context.Background(), 999, "pic.png", []byte("content"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveClearsReferenceAndFile(t *testing.T) {
	photos, repo, dir := newPhotoFixture(t)
	ctx := context.Background()
	id := createCard(t, repo)

	url, err := photos.Upload(ctx, id, "pic.png", []byte("content"))
	require.NoError(t, err)

	old, err := photos.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(url, "/"), old)

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, card.PhotoURL)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveAbsentCard(t *testing.T) {
	photos, _, _ := newPhotoFixture(t)

	_, err := photos.Remove(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveSwallowsMissingFile(t *testing.T) {
	photos, repo, _ := newPhotoFixture(t)
	ctx := context.Background()
	id := createCard(t, repo)

	// Reference without a file; the DB is authoritative
	require.NoError(t, repo.UpdateCardPhoto(ctx, id, "uploads/card_gone.png"))

	old, err := photos.Remove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "uploads/card_gone.png", old)
}

func TestResolveServePath(t *testing.T) {
	photos, _, dir := newPhotoFixture(t)

	path, err := photos.ResolveServePath("card_1_123.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "card_1_123.png"), path)

	for _, bad := range []string{"", "../secret.png", "a/b.png", `a\b.png`, "..", "x..y/../z"} {
		_, err := photos.ResolveServePath(bad)
		assert.Error(t, err, "expected rejection for %q", bad)
	}
}
