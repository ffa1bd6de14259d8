package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipient struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (recipient *Recipient) BeforeCreate(tx *gorm.DB) (err error) {
	if recipient.ID == uuid.Nil {
		recipient.ID = uuid.New()
	}
	return
}
