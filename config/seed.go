package config

import (
	"context"

	"go.uber.org/zap"

	"github.com/kuoklimg/voucher-pool/internal/models"
	"github.com/kuoklimg/voucher-pool/internal/repository"
)

// SeedSampleData loads sample recipients and special offers when their stores
// are empty. Safe to run on every startup.
func SeedSampleData(ctx context.Context, recipients *repository.RecipientRepo, offers *repository.SpecialOfferRepo, logger *zap.Logger) error {
	if err := seedRecipients(ctx, recipients, logger); err != nil {
		return err
	}
	return seedSpecialOffers(ctx, offers, logger)
}

func seedRecipients(ctx context.Context, recipients *repository.RecipientRepo, logger *zap.Logger) error {
	count, err := recipients.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("recipients already loaded", zap.Int64("count", count))
		return nil
	}

	samples := []models.Recipient{
		{Email: "john@example.com", Name: "John Doe"},
		{Email: "jane@example.com", Name: "Jane Smith"},
		{Email: "bob@example.com", Name: "Bob Johnson"},
	}
	if err := recipients.SaveAll(ctx, samples); err != nil {
		return err
	}
	logger.Info("sample recipients loaded", zap.Int("count", len(samples)))
	return nil
}

func seedSpecialOffers(ctx context.Context, offers *repository.SpecialOfferRepo, logger *zap.Logger) error {
	count, err := offers.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("special offers already loaded", zap.Int64("count", count))
		return nil
	}

	samples := []models.SpecialOffer{
		{Name: "Summer Sale", DiscountPercentage: 20.0},
		{Name: "Winter Discount", DiscountPercentage: 15.0},
		{Name: "Spring Promotion", DiscountPercentage: 10.0},
	}
	if err := offers.SaveAll(ctx, samples); err != nil {
		return err
	}
	logger.Info("sample special offers loaded", zap.Int("count", len(samples)))
	return nil
}
