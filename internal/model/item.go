package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item field limits.
const (
	HeadlineMaxLength = 256
)

// ItemStore defines persistence operations for items.
type ItemStore interface {
	Create(ctx context.Context, item Item) (Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (Item, error)
	GetByCreatorID(ctx context.Context, creatorID uuid.UUID) ([]Item, error)
	Update(ctx context.Context, item Item) (Item, error)
}

// Item is a listing owned by the user who created it.
type Item struct {
	ID          uuid.UUID
	Headline    string
	Description string
	Price       string
	CreatorID   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateItemParams contains parameters to create an item.
type CreateItemParams struct {
	Headline    string
	Description string
	Price       string
}

// UpdateItemParams contains a partial item update. Nil fields are left untouched.
type UpdateItemParams struct {
	Headline    *string
	Description *string
	Price       *string
}
