package repository

import (
	"context"

	"cardvault/internal/domain"
)

// Repository defines the interface for card aggregate data access
type Repository interface {
	// Aggregate operations
	CreateCard(ctx context.Context, input domain.CardInput) (int64, error)
	GetCard(ctx context.Context, id int64) (*domain.Card, error)
	ListCards(ctx context.Context, q, tag string) ([]domain.Card, error)
	UpdateCard(ctx context.Context, id int64, input domain.CardInput) error
	DeleteCard(ctx context.Context, id int64) (photoPath string, err error)

	// Photo reference operations
	UpdateCardPhoto(ctx context.Context, id int64, path string) error
	ClearCardPhoto(ctx context.Context, id int64) (oldPath string, err error)

	// Tag vocabulary
	ListTags(ctx context.Context) ([]domain.TagCount, error)

	// Close releases resources
	Close() error
}
