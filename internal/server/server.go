package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kuoklimg/voucher-pool/config"
	"github.com/kuoklimg/voucher-pool/internal/handlers"
	"github.com/kuoklimg/voucher-pool/internal/middleware"
	"github.com/kuoklimg/voucher-pool/internal/repository"
	"github.com/kuoklimg/voucher-pool/internal/service"
)

func Start(logger *zap.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	recipientRepo := repository.NewRecipientRepo(db)
	offerRepo := repository.NewSpecialOfferRepo(db)
	voucherRepo := repository.NewVoucherRepo(db)

	if err := config.SeedSampleData(context.Background(), recipientRepo, offerRepo, logger); err != nil {
		return fmt.Errorf("failed to seed sample data: %v", err)
	}

	pool := service.NewVoucherPool(recipientRepo, offerRepo, voucherRepo, nil)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	SetupRoutes(r, pool)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting voucher-pool", zap.String("port", port))
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, pool *service.VoucherPool) {
	voucherHandler := handlers.NewVoucherHandler(pool)
	offerHandler := handlers.NewOfferHandler(pool)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		vouchers := v1.Group("/vouchers")
		{
			vouchers.POST("/generate", voucherHandler.Generate)
			vouchers.POST("/validate", voucherHandler.Validate)
			vouchers.GET("/valid", voucherHandler.ListValid)
			vouchers.GET("/stats", voucherHandler.Stats)
		}

		offers := v1.Group("/offers")
		{
			offers.PUT("/:id/discount", offerHandler.UpdateDiscount)
		}
	}
}
