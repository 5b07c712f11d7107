package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreUpdate is one shopkeeper announcement, shown newest-first on the
// home view.
type StoreUpdate struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *StoreUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
