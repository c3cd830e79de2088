package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/chat/repository"
)

type messageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MessageRepository { return &messageRepo{db} }

func (r *messageRepo) Create(ctx context.Context, m *entities.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperr.Internal("save message", err)
	}
	return nil
}

func (r *messageRepo) Thread(ctx context.Context, a, b string) ([]entities.Message, error) {
	out := []entities.Message{}
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC").Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("load thread", err)
	}
	return out, nil
}

func (r *messageRepo) MarkRead(ctx context.Context, sender, receiver string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", sender, receiver, false).
		Update("read", true)
	if res.Error != nil {
		return 0, apperr.Internal("mark read", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *messageRepo) Unread(ctx context.Context, uid string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Message{}).
		Where("receiver_id = ? AND read = ?", uid, false).Count(&n).Error
	if err != nil {
		return 0, apperr.Internal("count unread", err)
	}
	return n, nil
}

func (r *messageRepo) Involving(ctx context.Context, uid string) ([]entities.Message, error) {
	out := []entities.Message{}
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Order("timestamp DESC").Find(&out).Error
	if err != nil {
		return nil, apperr.Internal("list conversations", err)
	}
	return out, nil
}

func (r *messageRepo) DeleteFor(ctx context.Context, uid string) error {
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Delete(&entities.Message{}).Error
	if err != nil {
		return apperr.Internal("delete messages", err)
	}
	return nil
}
