package repository

import (
	"context"

	"kisan/entities"
)

// MessageRepository is implemented over gorm and over MongoDB.
type MessageRepository interface {
	Create(ctx context.Context, m *entities.Message) error
	// Thread returns both directions between a and b, oldest first.
	Thread(ctx context.Context, a, b string) ([]entities.Message, error)
	// MarkRead flags every unread message from sender to receiver.
	MarkRead(ctx context.Context, sender, receiver string) (int64, error)
	Unread(ctx context.Context, uid string) (int64, error)
	// Involving returns every message uid sent or received, newest first.
	Involving(ctx context.Context, uid string) ([]entities.Message, error)
	DeleteFor(ctx context.Context, uid string) error
}
