package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kuoklimg/voucher-pool/internal/models"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 8
	maxCodeAttempts = 10
)

// Stores required by the service. Interfaces so tests can substitute
// implementations.
type RecipientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipient, error)
	FindByEmail(ctx context.Context, email string) (*models.Recipient, error)
}

type SpecialOfferStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.SpecialOffer, error)
	FindByName(ctx context.Context, name string) (*models.SpecialOffer, error)
	Save(ctx context.Context, offer *models.SpecialOffer) error
}

type VoucherStore interface {
	FindByCode(ctx context.Context, code string) (*models.VoucherCode, error)
	FindValidByRecipient(ctx context.Context, recipientID uuid.UUID, asOf time.Time) ([]models.VoucherCode, error)
	Create(ctx context.Context, voucher *models.VoucherCode) error
	Redeem(ctx context.Context, id uuid.UUID, usedAt time.Time) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountUsed(ctx context.Context) (int64, error)
}

// Redemption is the result of a successful Validate call.
type Redemption struct {
	Discount       float64
	OfferName      string
	ExpirationDate time.Time
	UsageDate      time.Time
}

// UsageStats summarizes redemption activity across the whole pool.
type UsageStats struct {
	TotalVouchers   int64
	UsedVouchers    int64
	UnusedVouchers  int64
	UsagePercentage float64
}

// VoucherPool manages the voucher lifecycle: generating unique codes,
// redeeming them, and listing the still-valid ones per recipient.
type VoucherPool struct {
	recipients RecipientStore
	offers     SpecialOfferStore
	vouchers   VoucherStore
	rng        RandomSource
}

func NewVoucherPool(recipients RecipientStore, offers SpecialOfferStore, vouchers VoucherStore, rng RandomSource) *VoucherPool {
	if rng == nil {
		rng = newLockedRand(time.Now().UnixNano())
	}
	return &VoucherPool{
		recipients: recipients,
		offers:     offers,
		vouchers:   vouchers,
		rng:        rng,
	}
}

// Generate issues a new voucher tying the recipient to the offer. The code is
// 8 uppercase alphanumerics, retried a bounded number of times on collision.
func (p *VoucherPool) Generate(ctx context.Context, recipientEmail, offerName string, expirationDate time.Time) (*models.VoucherCode, error) {
	recipient, err := p.recipients.FindByEmail(ctx, recipientEmail)
	if err != nil {
		return nil, fmt.Errorf("find recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	offer, err := p.offers.FindByName(ctx, offerName)
	if err != nil {
		return nil, fmt.Errorf("find offer: %w", err)
	}
	if offer == nil {
		return nil, ErrSpecialOfferNotFound
	}

	code, err := p.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	voucher := &models.VoucherCode{
		Code:           code,
		RecipientID:    recipient.ID,
		SpecialOfferID: offer.ID,
		ExpirationDate: dateOnly(expirationDate),
	}
	if err := p.vouchers.Create(ctx, voucher); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}
	return voucher, nil
}

// Validate redeems the code for the recipient. Redemption is a one-time
// transition: the store write is conditional on the usage date still being
// unset, so a concurrent duplicate call loses and reports already used.
func (p *VoucherPool) Validate(ctx context.Context, code, email string) (*Redemption, error) {
	voucher, err := p.vouchers.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find voucher: %w", err)
	}
	if voucher == nil {
		return nil, ErrInvalidVoucherCode
	}

	recipient, err := p.recipients.FindByID(ctx, voucher.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("find recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	// Exact match, no normalization.
	if recipient.Email != email {
		return nil, ErrInvalidRecipientEmail
	}

	if voucher.UsageDate != nil {
		return nil, ErrVoucherAlreadyUsed
	}

	if dateOnly(voucher.ExpirationDate).Before(dateOnly(time.Now())) {
		return nil, ErrVoucherExpired
	}

	offer, err := p.offers.FindByID(ctx, voucher.SpecialOfferID)
	if err != nil {
		return nil, fmt.Errorf("find offer: %w", err)
	}
	if offer == nil {
		return nil, ErrSpecialOfferNotFound
	}

	usedAt := time.Now()
	redeemed, err := p.vouchers.Redeem(ctx, voucher.ID, usedAt)
	if err != nil {
		return nil, fmt.Errorf("redeem voucher: %w", err)
	}
	if !redeemed {
		return nil, ErrVoucherAlreadyUsed
	}

	return &Redemption{
		Discount:       offer.DiscountPercentage,
		OfferName:      offer.Name,
		ExpirationDate: voucher.ExpirationDate,
		UsageDate:      usedAt,
	}, nil
}

// ListValid returns "CODE - OfferName" entries for every unused, unexpired
// voucher belonging to the recipient.
func (p *VoucherPool) ListValid(ctx context.Context, email string) ([]string, error) {
	recipient, err := p.recipients.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	vouchers, err := p.vouchers.FindValidByRecipient(ctx, recipient.ID, dateOnly(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("find vouchers: %w", err)
	}

	entries := make([]string, 0, len(vouchers))
	for _, voucher := range vouchers {
		offer, err := p.offers.FindByID(ctx, voucher.SpecialOfferID)
		if err != nil {
			return nil, fmt.Errorf("find offer: %w", err)
		}
		if offer == nil {
			return nil, ErrSpecialOfferNotFound
		}
		entries = append(entries, voucher.Code+" - "+offer.Name)
	}
	return entries, nil
}

// UpdateDiscount overwrites the offer's discount percentage unconditionally.
func (p *VoucherPool) UpdateDiscount(ctx context.Context, offerID uuid.UUID, newDiscountPercentage float64) (*models.SpecialOffer, error) {
	offer, err := p.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("find offer: %w", err)
	}
	if offer == nil {
		return nil, ErrSpecialOfferNotFound
	}

	offer.DiscountPercentage = newDiscountPercentage
	if err := p.offers.Save(ctx, offer); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}
	return offer, nil
}

// Stats reports pool-wide redemption counts.
func (p *VoucherPool) Stats(ctx context.Context) (*UsageStats, error) {
	total, err := p.vouchers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count vouchers: %w", err)
	}
	used, err := p.vouchers.CountUsed(ctx)
	if err != nil {
		return nil, fmt.Errorf("count used vouchers: %w", err)
	}

	stats := &UsageStats{
		TotalVouchers:  total,
		UsedVouchers:   used,
		UnusedVouchers: total - used,
	}
	if total > 0 {
		stats.UsagePercentage = float64(used) / float64(total) * 100
	}
	return stats, nil
}

func (p *VoucherPool) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := p.randomCode()
		existing, err := p.vouchers.FindByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (p *VoucherPool) randomCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for i := 0; i < codeLength; i++ {
		b.WriteByte(codeAlphabet[p.rng.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// dateOnly truncates to calendar-date precision; expiry comparisons ignore
// time of day.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
