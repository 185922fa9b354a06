package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"cardvault/internal/domain"
	"cardvault/internal/repository"
)

// CardService provides business logic for card aggregate operations.
// Input validation happens here, before any store mutation; NotFound
// outcomes pass through untouched and are never logged as failures.
type CardService struct {
	repo     repository.Repository
	photos   *PhotoService
	eventBus *EventBus
	logger   *zap.Logger
}

// NewCardService creates a new card service
func NewCardService(repo repository.Repository, photos *PhotoService, eventBus *EventBus, logger *zap.Logger) *CardService {
	return &CardService{
		repo:     repo,
		photos:   photos,
		eventBus: eventBus,
		logger:   logger,
	}
}

// List returns cards matching the optional search query and/or tag filter,
// ordered most recently updated first.
func (s *CardService) List(ctx context.Context, q, tag string) ([]domain.Card, error) {
	return s.repo.ListCards(ctx, q, tag)
}

// Get retrieves a fully hydrated card, or (nil, nil) when absent.
func (s *CardService) Get(ctx context.Context, id int64) (*domain.Card, error) {
	return s.repo.GetCard(ctx, id)
}

// Create validates the input and inserts a new card aggregate.
func (s *CardService) Create(ctx context.Context, input domain.CardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateCard(ctx, input)
	if err != nil {
		return nil, err
	}

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("card created", zap.Int64("card_id", id), zap.String("name", input.Name))
	s.eventBus.Publish(Event{Type: EventCardCreated, Payload: card})
	return card, nil
}

// Update validates the input and fully replaces the card aggregate.
// Returns domain.ErrNotFound when the card does not exist.
func (s *CardService) Update(ctx context.Context, id int64, input domain.CardInput) (*domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCard(ctx, id, input); err != nil {
		return nil, err
	}

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("card updated", zap.Int64("card_id", id))
	s.eventBus.Publish(Event{Type: EventCardUpdated, Payload: card})
	return card, nil
}

// Delete removes the card aggregate; children and tag links cascade.
// The card's photo file, if any, is reclaimed best-effort after the row
// is gone.
func (s *CardService) Delete(ctx context.Context, id int64) error {
	photoPath, err := s.repo.DeleteCard(ctx, id)
	if err != nil {
		return err
	}

	if photoPath != "" {
		s.photos.CleanupFile(photoPath)
	}

	s.logger.Info("card deleted", zap.Int64("card_id", id))
	s.eventBus.Publish(Event{Type: EventCardDeleted, Payload: map[string]int64{"card_id": id}})
	return nil
}

// ListTags returns every known tag with its usage count, alphabetically.
func (s *CardService) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	return s.repo.ListTags(ctx)
}

// IsNotFound reports whether err is the expected absent-card outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
