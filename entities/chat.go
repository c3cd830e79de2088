package entities

import "time"

type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id" bson:"_id"`
	SenderID   string    `gorm:"index:idx_pair,priority:1;not null" json:"senderId" bson:"sender"`
	ReceiverID string    `gorm:"index:idx_pair,priority:2;not null" json:"receiverId" bson:"receiver"`
	Content    string    `json:"content" bson:"content"`
	Read       bool      `json:"read" bson:"read"`
	Timestamp  time.Time `gorm:"index" json:"timestamp" bson:"timestamp"`
}

// Participant is the slice of a user embedded in chat payloads.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PopulatedMessage is a Message with both ends resolved to participants.
type PopulatedMessage struct {
	ID        string      `json:"id"`
	Sender    Participant `json:"sender"`
	Receiver  Participant `json:"receiver"`
	Content   string      `json:"content"`
	Read      bool        `json:"read"`
	Timestamp time.Time   `json:"timestamp"`
}
