// Package owned is the gorm store shared by every per-user record type
// (farms, expenses, tasks). Every read and write is gated on user_id.
package owned

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kisan/entities"
	"kisan/pkg/apperr"
)

// Record constrains P to a pointer to an owned entity T.
type Record[T any] interface {
	*T
	entities.Owned
}

type Scope = func(*gorm.DB) *gorm.DB

type Store[T any, P Record[T]] struct {
	db   *gorm.DB
	noun string
}

// New builds a store; noun names the record in not-found errors.
func New[T any, P Record[T]](db *gorm.DB, noun string) *Store[T, P] {
	return &Store[T, P]{db: db, noun: noun}
}

func (s *Store[T, P]) notFound() error { return apperr.NotFound(s.noun + " not found") }

func (s *Store[T, P]) List(ctx context.Context, uid string, order string, scopes ...Scope) ([]T, error) {
	out := []T{}
	q := s.db.WithContext(ctx).Where("user_id = ?", uid).Scopes(scopes...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Internal("list "+s.noun, err)
	}
	return out, nil
}

func (s *Store[T, P]) Create(ctx context.Context, rec P) error {
	if rec.OwnerID() == "" {
		return apperr.Internal("create "+s.noun, errors.New("record has no owner"))
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.Internal("create "+s.noun, err)
	}
	return nil
}

// Get fails with NotFound unless both id and owner match.
func (s *Store[T, P]) Get(ctx context.Context, uid, id string) (P, error) {
	return s.get(s.db.WithContext(ctx), uid, id)
}

func (s *Store[T, P]) get(tx *gorm.DB, uid, id string) (P, error) {
	var rec T
	err := tx.Where("id = ? AND user_id = ?", id, uid).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, apperr.Internal("get "+s.noun, err)
	}
	return P(&rec), nil
}

// Update loads the caller's record, lets apply merge the patch into it,
// and saves. A record owned by someone else is reported as NotFound and
// left untouched.
func (s *Store[T, P]) Update(ctx context.Context, uid, id string, apply func(P) error) (P, error) {
	var out P
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.get(tx, uid, id)
		if err != nil {
			return err
		}
		if err := apply(rec); err != nil {
			return err
		}
		if rec.OwnerID() != uid {
			return apperr.Validation("owner cannot be changed")
		}
		if err := tx.Save(rec).Error; err != nil {
			return apperr.Internal("update "+s.noun, err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the caller's record physically.
func (s *Store[T, P]) Delete(ctx context.Context, uid, id string) error {
	var rec T
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).Delete(&rec)
	if res.Error != nil {
		return apperr.Internal("delete "+s.noun, res.Error)
	}
	if res.RowsAffected == 0 {
		return s.notFound()
	}
	return nil
}

func (s *Store[T, P]) Count(ctx context.Context, uid string, scopes ...Scope) (int64, error) {
	var n int64
	var rec T
	err := s.db.WithContext(ctx).Model(&rec).Where("user_id = ?", uid).Scopes(scopes...).Count(&n).Error
	if err != nil {
		return 0, apperr.Internal("count "+s.noun, err)
	}
	return n, nil
}

// DeleteAllTx removes every record of uid inside an outer transaction.
func (s *Store[T, P]) DeleteAllTx(tx *gorm.DB, uid string) error {
	var rec T
	return tx.Where("user_id = ?", uid).Delete(&rec).Error
}
