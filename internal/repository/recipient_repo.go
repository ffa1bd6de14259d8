package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kuoklimg/voucher-pool/internal/models"
)

type RecipientRepo struct {
	db *gorm.DB
}

func NewRecipientRepo(db *gorm.DB) *RecipientRepo {
	return &RecipientRepo{db: db}
}

// FindByID returns nil without error when no recipient matches.
func (r *RecipientRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipient, nil
}

func (r *RecipientRepo) FindByEmail(ctx context.Context, email string) (*models.Recipient, error) {
	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipient, nil
}

// SaveAll bulk-inserts recipients, used by the startup seed loader.
func (r *RecipientRepo) SaveAll(ctx context.Context, recipients []models.Recipient) error {
	return r.db.WithContext(ctx).Create(&recipients).Error
}

func (r *RecipientRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipient{}).Count(&count).Error
	return count, err
}
