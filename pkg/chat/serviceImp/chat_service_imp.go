package serviceImp

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/chat/hub"
	repo "kisan/pkg/chat/repository"
	"kisan/pkg/chat/service"
	"kisan/pkg/logger"
	userRepo "kisan/pkg/user/repository"
)

// MaxContent bounds a single message body, in bytes.
const MaxContent = 4000

type chatSvc struct {
	messages repo.MessageRepository
	users    userRepo.UserRepository
	presence userRepo.PresenceRepository
	hub      *hub.Hub
	now      func() time.Time
}

func NewChatService(messages repo.MessageRepository, users userRepo.UserRepository, presence userRepo.PresenceRepository, h *hub.Hub) service.ChatService {
	return &chatSvc{messages: messages, users: users, presence: presence, hub: h, now: time.Now}
}

func participant(u entities.User) entities.Participant {
	var p entities.Participant
	_ = copier.Copy(&p, &u)
	p.ID = u.ID
	return p
}

func populate(m entities.Message, people map[string]entities.User) entities.PopulatedMessage {
	return entities.PopulatedMessage{
		ID:        m.ID,
		Sender:    participant(people[m.SenderID]),
		Receiver:  participant(people[m.ReceiverID]),
		Content:   m.Content,
		Read:      m.Read,
		Timestamp: m.Timestamp,
	}
}

func (s *chatSvc) Send(ctx context.Context, sender string, in service.SendInput) (*entities.PopulatedMessage, error) {
	content := strings.TrimSpace(in.Content)
	receiver := strings.TrimSpace(in.ReceiverID)
	switch {
	case receiver == "":
		return nil, apperr.Validation("receiver is required")
	case content == "":
		return nil, apperr.Validation("message content is required")
	case len(content) > MaxContent:
		return nil, apperr.Validation("message is too long")
	case receiver == sender:
		return nil, apperr.Validation("cannot message yourself")
	}
	people, err := s.users.FindByIDs(ctx, []string{sender, receiver})
	if err != nil {
		return nil, err
	}
	if _, ok := people[receiver]; !ok {
		return nil, apperr.NotFound("receiver not found")
	}

	m := &entities.Message{SenderID: sender, ReceiverID: receiver, Content: content, Timestamp: s.now()}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	out := populate(*m, people)
	if s.hub != nil {
		ev := hub.Event{Type: hub.EventMessage, Message: &out}
		s.hub.Publish(receiver, ev)
		s.hub.Publish(sender, ev)
	}
	return &out, nil
}

func (s *chatSvc) Thread(ctx context.Context, caller, other string) ([]entities.PopulatedMessage, error) {
	if strings.TrimSpace(other) == "" {
		return nil, apperr.Validation("user id is required")
	}
	people, err := s.users.FindByIDs(ctx, []string{caller, other})
	if err != nil {
		return nil, err
	}
	if _, ok := people[other]; !ok {
		return nil, apperr.NotFound("user not found")
	}
	msgs, err := s.messages.Thread(ctx, caller, other)
	if err != nil {
		return nil, err
	}
	n, err := s.messages.MarkRead(ctx, other, caller)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PopulatedMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.SenderID == other && m.ReceiverID == caller {
			m.Read = true
		}
		out = append(out, populate(m, people))
	}
	if n > 0 && s.hub != nil {
		s.hub.Publish(other, hub.Event{Type: hub.EventRead, ReaderID: caller})
	}
	return out, nil
}

func (s *chatSvc) Unread(ctx context.Context, caller string) (int64, error) {
	return s.messages.Unread(ctx, caller)
}

func (s *chatSvc) chatUsers(ctx context.Context, users []entities.User) ([]service.ChatUser, error) {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	pres, err := s.presence.Presence(ctx, ids)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]service.ChatUser, 0, len(users))
	for _, u := range users {
		cu := service.ChatUser{Participant: participant(u)}
		if p, ok := pres[u.ID]; ok {
			cu.IsOnline = p.OnlineAt(now)
			seen := p.LastSeen
			cu.LastSeen = &seen
		}
		out = append(out, cu)
	}
	return out, nil
}

func (s *chatSvc) Users(ctx context.Context, caller string) ([]service.ChatUser, error) {
	users, err := s.users.ListExcept(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.chatUsers(ctx, users)
}

func (s *chatSvc) Conversations(ctx context.Context, caller string) ([]service.Conversation, error) {
	msgs, err := s.messages.Involving(ctx, caller)
	if err != nil {
		return nil, err
	}
	var peers []string
	latest := map[string]entities.Message{}
	unread := map[string]int{}
	for _, m := range msgs {
		peer := m.ReceiverID
		if peer == caller {
			peer = m.SenderID
		}
		if _, seen := latest[peer]; !seen {
			latest[peer] = m
			peers = append(peers, peer)
		}
		if m.ReceiverID == caller && !m.Read {
			unread[peer]++
		}
	}
	people, err := s.users.FindByIDs(ctx, append([]string{caller}, peers...))
	if err != nil {
		return nil, err
	}
	known := make([]entities.User, 0, len(peers))
	for _, id := range peers {
		if u, ok := people[id]; ok {
			known = append(known, u)
		}
	}
	users, err := s.chatUsers(ctx, known)
	if err != nil {
		return nil, err
	}
	out := make([]service.Conversation, 0, len(users))
	for _, cu := range users {
		out = append(out, service.Conversation{
			User:        cu,
			LastMessage: populate(latest[cu.ID], people),
			Unread:      unread[cu.ID],
		})
	}
	return out, nil
}

func (s *chatSvc) SetStatus(ctx context.Context, caller string, online bool) error {
	return s.presence.SetPresence(ctx, caller, online, s.now())
}

func (s *chatSvc) Connect(ctx context.Context, caller string) (*hub.Subscription, error) {
	if err := s.presence.SetPresence(ctx, caller, true, s.now()); err != nil {
		return nil, err
	}
	return s.hub.Subscribe(caller), nil
}

func (s *chatSvc) Disconnect(ctx context.Context, caller string, sub *hub.Subscription) {
	sub.Close()
	if s.hub.Connected(caller) {
		return
	}
	if err := s.presence.SetPresence(ctx, caller, false, s.now()); err != nil {
		logger.L().Warn("clear presence", zap.String("uid", caller), zap.Error(err))
	}
}

func (s *chatSvc) PurgeUser(ctx context.Context, uid string) error {
	return s.messages.DeleteFor(ctx, uid)
}
