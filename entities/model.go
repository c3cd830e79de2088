package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model replaces gorm.Model: string ids so the same records can live in
// SQLite or MongoDB, and no soft delete (deletes are physical).
type Model struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Owned is implemented by every record scoped to a single user.
type Owned interface {
	OwnerID() string
}
