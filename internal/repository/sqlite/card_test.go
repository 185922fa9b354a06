package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardvault/internal/domain"
)

func TestCreateAndGetCard(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, sampleInput())
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, card)

	assert.Equal(t, "Tan Wei Ming", card.Name)
	assert.Equal(t, "CEO", card.Title)
	assert.Equal(t, "DBS Group Holdings", card.Company)
	assert.Equal(t, "https://www.dbs.com", card.Website)
	assert.Equal(t, "Met at Fintech Festival", card.Notes)
	assert.Empty(t, card.PhotoURL)
	assert.NotEmpty(t, card.CreatedAt)
	assert.NotEmpty(t, card.UpdatedAt)

	require.Len(t, card.Phones, 2)
	assert.Equal(t, "mobile", card.Phones[0].Label)
	assert.Equal(t, "+65 9123 4567", card.Phones[0].Number)
	assert.Equal(t, "work", card.Phones[1].Label)

	require.Len(t, card.Emails, 1)
	assert.Equal(t, "weiming.tan@dbs.com", card.Emails[0].Address)

	require.Len(t, card.Addresses, 1)
	assert.Equal(t, "12 Marina Boulevard", card.Addresses[0].Street)
	assert.Equal(t, "018982", card.Addresses[0].Postal)

	// Tags hydrate sorted alphabetically
	assert.Equal(t, []string{"client", "fintech"}, card.Tags)
}

func TestGetCardAbsent(t *testing.T) {
	repo := newTestRepo(t)

	card, err := repo.GetCard(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, card)
}

func TestCreateCardDuplicateTagsCollapse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	input := sampleInput()
	input.Tags = []string{"investor", "investor", "fintech", "  ", ""}

	id, err := repo.CreateCard(ctx, input)
	require.NoError(t, err)

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"fintech", "investor"}, card.Tags)
}

func TestGetCardEmptyCollections(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, domain.CardInput{Name: "Minimal"})
	require.NoError(t, err)

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	// Hydrated collections are concrete, never nil
	assert.NotNil(t, card.Phones)
	assert.NotNil(t, card.Emails)
	assert.NotNil(t, card.Addresses)
	assert.NotNil(t, card.Tags)
	assert.Empty(t, card.Phones)
}

func TestUpdateCardReplacesChildren(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, sampleInput())
	require.NoError(t, err)

	before, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	oldPhoneIDs := map[int64]bool{}
	for _, p := range before.Phones {
		oldPhoneIDs[p.ID] = true
	}

	update := domain.CardInput{
		Name:    "Tan Wei Ming",
		Company: "Grab Holdings",
		Phones: []domain.PhoneInput{
			{Label: "mobile", Number: "+65 8000 0000"},
		},
		Emails: []domain.EmailInput{
			{Label: "personal", Address: "wm.tan@gmail.com"},
		},
		Tags: []string{"partner"},
	}
	require.NoError(t, repo.UpdateCard(ctx, id, update))

	after, err := repo.GetCard(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "Grab Holdings", after.Company)
	assert.Empty(t, after.Title) // scalar fields fully replaced

	// No child row from before the update survives; ids are fresh
	require.Len(t, after.Phones, 1)
	assert.False(t, oldPhoneIDs[after.Phones[0].ID])
	assert.Equal(t, "+65 8000 0000", after.Phones[0].Number)

	require.Len(t, after.Emails, 1)
	assert.Equal(t, "wm.tan@gmail.com", after.Emails[0].Address)
	assert.Empty(t, after.Addresses)
	assert.Equal(t, []string{"partner"}, after.Tags)
}

func TestUpdateCardNotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateCard(context.Background(), 999, domain.CardInput{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCardCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, sampleInput())
	require.NoError(t, err)
	require.NoError(t, repo.UpdateCardPhoto(ctx, id, "uploads/card_1_123.png"))

	photoPath, err := repo.DeleteCard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "uploads/card_1_123.png", photoPath)

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, card)

	// Child rows are gone with the root
	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM card_phones WHERE card_id=?`, id).Scan(&n))
	assert.Zero(t, n)
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM card_tags WHERE card_id=?`, id).Scan(&n))
	assert.Zero(t, n)

	// Second delete reports the absent card
	_, err = repo.DeleteCard(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCardPhoto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, domain.CardInput{Name: "Anika Sharma"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCardPhoto(ctx, id, "uploads/card_1_99.png"))

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/card_1_99.png", card.PhotoURL)

	err = repo.UpdateCardPhoto(ctx, 999, "uploads/x.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClearCardPhoto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, domain.CardInput{Name: "Anika Sharma"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateCardPhoto(ctx, id, "uploads/card_1_99.png"))

	old, err := repo.ClearCardPhoto(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "uploads/card_1_99.png", old)

	card, err := repo.GetCard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, card.PhotoURL)

	// Clearing an empty reference is fine and returns ""
	old, err = repo.ClearCardPhoto(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, old)

	_, err = repo.ClearCardPhoto(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
