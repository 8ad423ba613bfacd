package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
)

type Item struct {
	itemStore model.ItemStore
	logger    *logger.Logger
}

func NewItem(itemStore model.ItemStore, logger *logger.Logger) *Item {
	return &Item{
		itemStore: itemStore,
		logger:    logger,
	}
}

func (s *Item) Create(ctx context.Context, creatorID uuid.UUID, params model.CreateItemParams) (model.Item, error) {
	now := time.Now()
	item := model.Item{
		ID:          uuid.New(),
		Headline:    strings.TrimSpace(params.Headline),
		Description: strings.TrimSpace(params.Description),
		Price:       params.Price,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := validateItem(item); err != nil {
		return model.Item{}, err
	}

	item, err := s.itemStore.Create(ctx, item)
	if err != nil {
		s.logger.Error("Item service: failed to create item",
			"creator_id", creatorID,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("Item service: item created",
		"creator_id", creatorID,
		"item_id", item.ID)

	return item, nil
}

func (s *Item) List(ctx context.Context, creatorID uuid.UUID) ([]model.Item, error) {
	items, err := s.itemStore.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by creator id: %w", err)
	}

	return items, nil
}

// Get returns the item only to its creator; for anyone else it does not exist.
func (s *Item) Get(ctx context.Context, creatorID, id uuid.UUID) (model.Item, error) {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Item{}, err
		}
		return model.Item{}, fmt.Errorf("failed to get item by id: %w", err)
	}

	if item.CreatorID != creatorID {
		return model.Item{}, model.ErrNotFound
	}

	return item, nil
}

// Update applies the non-nil fields of params to an item owned by creatorID.
func (s *Item) Update(ctx context.Context, creatorID, id uuid.UUID, params model.UpdateItemParams) (model.Item, error) {
	item, err := s.Get(ctx, creatorID, id)
	if err != nil {
		return model.Item{}, err
	}

	if params.Headline != nil {
		item.Headline = strings.TrimSpace(*params.Headline)
	}
	if params.Description != nil {
		item.Description = strings.TrimSpace(*params.Description)
	}
	if params.Price != nil {
		item.Price = *params.Price
	}
	item.UpdatedAt = time.Now()

	if err := validateItem(item); err != nil {
		return model.Item{}, err
	}

	item, err = s.itemStore.Update(ctx, item)
	if err != nil {
		s.logger.Error("Item service: failed to update item",
			"item_id", id,
			"error", err.Error())
		return model.Item{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("Item service: item updated",
		"creator_id", creatorID,
		"item_id", id)

	return item, nil
}

func validateItem(item model.Item) error {
	headlineLen := utf8.RuneCountInString(item.Headline)
	switch {
	case headlineLen == 0:
		return fmt.Errorf("%w: headline is required", model.ErrValidation)
	case headlineLen > model.HeadlineMaxLength:
		return fmt.Errorf("%w: headline must be at most %d characters", model.ErrValidation, model.HeadlineMaxLength)
	case item.Description == "":
		return fmt.Errorf("%w: description is required", model.ErrValidation)
	case item.Price == "":
		return fmt.Errorf("%w: price is required", model.ErrValidation)
	}
	return nil
}
