package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kuoklimg/voucher-pool/internal/models"
)

type SpecialOfferRepo struct {
	db *gorm.DB
}

func NewSpecialOfferRepo(db *gorm.DB) *SpecialOfferRepo {
	return &SpecialOfferRepo{db: db}
}

func (r *SpecialOfferRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SpecialOffer, error) {
	var offer models.SpecialOffer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (r *SpecialOfferRepo) FindByName(ctx context.Context, name string) (*models.SpecialOffer, error) {
	var offer models.SpecialOffer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (r *SpecialOfferRepo) Save(ctx context.Context, offer *models.SpecialOffer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *SpecialOfferRepo) SaveAll(ctx context.Context, offers []models.SpecialOffer) error {
	return r.db.WithContext(ctx).Create(&offers).Error
}

func (r *SpecialOfferRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SpecialOffer{}).Count(&count).Error
	return count, err
}
