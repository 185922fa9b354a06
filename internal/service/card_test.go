package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cardvault/internal/domain"
	"cardvault/internal/repository/sqlite"
)

func newCardFixture(t *testing.T) (*CardService, *sqlite.Repository, chan Event) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	photos := NewPhotoService(repo, filepath.Join(t.TempDir(), "uploads"), bus, zap.NewNop())
	svc := NewCardService(repo, photos, bus, zap.NewNop())
	return svc, repo, events
}

func TestCreateValidatesName(t *testing.T) {
	svc, repo, _ := newCardFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CardInput{})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, domain.CardInput{Name: "   "})
	assert.True(t, domain.IsValidation(err))

	// Store untouched on validation failure
	empty, err := repo.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)
}

func TestCreateReturnsHydratedCard(t *testing.T) {
	svc, _, events := newCardFixture(t)

	card, err := svc.Create(context.Background(), domain.CardInput{
		Name: "Kevin Tan",
		Tags: []string{"investor"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Kevin Tan", card.Name)
	assert.Equal(t, []string{"investor"}, card.Tags)

	event := <-events
	assert.Equal(t, EventCardCreated, event.Type)
}

func TestUpdatePublishesEvent(t *testing.T) {
	svc, _, events := newCardFixture(t)
	ctx := context.Background()

	card, err := svc.Create(ctx, domain.CardInput{Name: "Kevin Tan"})
	require.NoError(t, err)
	<-events

	updated, err := svc.Update(ctx, card.ID, domain.CardInput{Name: "Kevin Tan Kiat Seng"})
	require.NoError(t, err)
	assert.Equal(t, "Kevin Tan Kiat Seng", updated.Name)

	event := <-events
	assert.Equal(t, EventCardUpdated, event.Type)
}

func TestUpdateNotFoundPassesThrough(t *testing.T) {
	svc, _, _ := newCardFixture(t)

	_, err := svc.Update(context.Background(), 999, domain.CardInput{Name: "Ghost"})
	assert.True(t, IsNotFound(err))
}

func TestDeleteReclaimsPhotoFile(t *testing.T) {
	svc, repo, events := newCardFixture(t)
	ctx := context.Background()

	card, err := svc.Create(ctx, domain.CardInput{Name: "Anika Sharma"})
	require.NoError(t, err)
	<-events

	_, err = svc.photos.Upload(ctx, card.ID, "pic.png", []byte("content"))
	require.NoError(t, err)
	event := <-events
	assert.Equal(t, EventPhotoUpdated, event.Type)

	require.NoError(t, svc.Delete(ctx, card.ID))

	gone, err := repo.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	entries, err := os.ReadDir(svc.photos.UploadsDir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	event = <-events
	assert.Equal(t, EventCardDeleted, event.Type)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _ := newCardFixture(t)

	err := svc.Delete(context.Background(), 999)
	assert.True(t, IsNotFound(err))
}
