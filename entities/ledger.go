package entities

import "time"

type Expense struct {
	Model
	UserID      string    `json:"userId" gorm:"index;not null"`
	FarmID      string    `json:"farmId,omitempty"`
	Category    string    `json:"category" gorm:"index"`
	Item        string    `json:"item"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date" gorm:"index"`
	Description string    `json:"description"`
}

func (e *Expense) OwnerID() string { return e.UserID }

// Income is a single running record per user.
type Income struct {
	UserID      string    `gorm:"primaryKey;type:text" json:"userId"`
	CropSales   float64   `json:"cropSales"`
	OtherIncome float64   `json:"otherIncome"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	TaskPending    = "pending"
	TaskInProgress = "inProgress"
	TaskCompleted  = "completed"
)

type Task struct {
	Model
	UserID      string    `json:"userId" gorm:"index;not null"`
	FarmID      string    `json:"farmId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // planting|harvesting|irrigation|fertilizing|pestControl|pruning|weeding|other
	Date        time.Time `json:"date" gorm:"index"`
	Time        string    `json:"time"` // HH:MM
	Priority    string    `json:"priority"`
	Status      string    `json:"status" gorm:"index"`
}

func (t *Task) OwnerID() string { return t.UserID }
