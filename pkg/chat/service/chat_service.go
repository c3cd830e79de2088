package service

import (
	"context"
	"time"

	"kisan/entities"
	"kisan/pkg/chat/hub"
)

type SendInput struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type ChatUser struct {
	entities.Participant
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

type Conversation struct {
	User        ChatUser                  `json:"user"`
	LastMessage entities.PopulatedMessage `json:"lastMessage"`
	Unread      int                       `json:"unreadCount"`
}

type ChatService interface {
	Send(ctx context.Context, sender string, in SendInput) (*entities.PopulatedMessage, error)
	Thread(ctx context.Context, caller, other string) ([]entities.PopulatedMessage, error)
	Unread(ctx context.Context, caller string) (int64, error)
	Users(ctx context.Context, caller string) ([]ChatUser, error)
	Conversations(ctx context.Context, caller string) ([]Conversation, error)
	SetStatus(ctx context.Context, caller string, online bool) error

	// Connect subscribes caller to live events and marks them online;
	// Disconnect undoes both.
	Connect(ctx context.Context, caller string) (*hub.Subscription, error)
	Disconnect(ctx context.Context, caller string, sub *hub.Subscription)

	PurgeUser(ctx context.Context, uid string) error
}
