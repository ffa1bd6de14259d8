package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kuoklimg/voucher-pool/internal/models"
)

type VoucherRepo struct {
	db *gorm.DB
}

func NewVoucherRepo(db *gorm.DB) *VoucherRepo {
	return &VoucherRepo{db: db}
}

func (r *VoucherRepo) FindByCode(ctx context.Context, code string) (*models.VoucherCode, error) {
	var voucher models.VoucherCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// FindValidByRecipient returns the recipient's vouchers that are unused and
// expire strictly after asOf. Ordering follows the underlying scan.
func (r *VoucherRepo) FindValidByRecipient(ctx context.Context, recipientID uuid.UUID, asOf time.Time) ([]models.VoucherCode, error) {
	var vouchers []models.VoucherCode
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND expiration_date > ? AND usage_date IS NULL", recipientID, asOf).
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (r *VoucherRepo) Create(ctx context.Context, voucher *models.VoucherCode) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

// Redeem sets the usage date only if it is still unset. It reports whether this
// call won the write, so two concurrent redemptions cannot both succeed.
func (r *VoucherRepo) Redeem(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.VoucherCode{}).
		Where("id = ? AND usage_date IS NULL", id).
		Update("usage_date", usedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *VoucherRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VoucherCode{}).Count(&count).Error
	return count, err
}

func (r *VoucherRepo) CountUsed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VoucherCode{}).
		Where("usage_date IS NOT NULL").
		Count(&count).Error
	return count, err
}
