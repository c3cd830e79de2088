package entities

import "time"

const (
	RoleFarmer = "farmer"
	RoleAdmin  = "admin"
)

type Location struct {
	District string `json:"district"`
	Village  string `json:"village"`
}

type User struct {
	Model
	Name         string   `json:"name"`
	Email        string   `json:"email" gorm:"uniqueIndex"`
	PasswordHash string   `json:"-"`
	Phone        string   `json:"phone"`
	Location     Location `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Role         string   `json:"role" gorm:"index"`
}

// PublicUser is the projection returned to clients.
type PublicUser struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Role     string   `json:"role"`
	Location Location `json:"location"`
}

// Presence is kept apart from User so heartbeat writes never touch the identity row.
type Presence struct {
	UserID   string    `gorm:"primaryKey;type:text" json:"userId"`
	Online   bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// PresenceTimeout is how long an online flag stays valid without a refresh.
const PresenceTimeout = 5 * time.Minute

func (p Presence) OnlineAt(now time.Time) bool {
	return p.Online && now.Sub(p.LastSeen) <= PresenceTimeout
}
