package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardvault/internal/domain"
)

func TestListTagsCounts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"fintech", "client"}})
	require.NoError(t, err)
	_, err = repo.CreateCard(ctx, domain.CardInput{Name: "B", Tags: []string{"fintech"}})
	require.NoError(t, err)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{
		{Name: "client", Count: 1},
		{Name: "fintech", Count: 2},
	}, tags)
}

func TestTagsSurviveAtZeroReferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"vendor"}})
	require.NoError(t, err)

	// Unlink via full replace with no tags
	require.NoError(t, repo.UpdateCard(ctx, id, domain.CardInput{Name: "A"}))

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{{Name: "vendor", Count: 0}}, tags)
}

func TestTagsSurviveCardDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"vendor"}})
	require.NoError(t, err)

	_, err = repo.DeleteCard(ctx, id)
	require.NoError(t, err)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{{Name: "vendor", Count: 0}}, tags)
}

func TestSyncTagsSharedVocabulary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Same name on two cards resolves to one tag row
	_, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"fintech"}})
	require.NoError(t, err)
	_, err = repo.CreateCard(ctx, domain.CardInput{Name: "B", Tags: []string{"fintech"}})
	require.NoError(t, err)

	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSyncTagsCaseSensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Names differing only by case are distinct tags
	_, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"Fintech", "fintech"}})
	require.NoError(t, err)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Fintech", tags[0].Name)
	assert.Equal(t, "fintech", tags[1].Name)
}

func TestSyncTagsSkipsBlankNames(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateCard(ctx, domain.CardInput{Name: "A", Tags: []string{"", "   ", "\t", "real"}})
	require.NoError(t, err)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagCount{{Name: "real", Count: 1}}, tags)
}
