package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherCode struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Code           string     `gorm:"unique;not null" json:"code"`
	RecipientID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SpecialOfferID uuid.UUID  `gorm:"type:uuid;not null;index" json:"special_offer_id"`
	ExpirationDate time.Time  `gorm:"not null" json:"expiration_date"`
	UsageDate      *time.Time `json:"usage_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (voucher *VoucherCode) BeforeCreate(tx *gorm.DB) (err error) {
	if voucher.ID == uuid.Nil {
		voucher.ID = uuid.New()
	}
	return
}
