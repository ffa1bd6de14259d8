package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpecialOffer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name               string    `gorm:"unique;not null" json:"name"`
	DiscountPercentage float64   `gorm:"not null" json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (offer *SpecialOffer) BeforeCreate(tx *gorm.DB) (err error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	return
}
