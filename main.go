package main

import (
	"log"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/logger"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/sender"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[Storefront] Failed to load config: ", err)
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	if err := database.Connect(cfg.PostgresDSN()); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.DB.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
	); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to redis", zap.Error(err))
	}

	orderRepo := repository.NewGormOrderRepository(database.DB)
	productRepo := repository.NewGormProductRepository(database.DB)
	cartRepo := database.NewCartRepository(redisClient, cfg.CartTTL)

	stripeSvc := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// Email is best-effort; run without it when SMTP is not configured.
	var mailer sender.EmailSender
	if smtpSender, err := sender.NewSMTPSender(); err != nil {
		logger.Log.Warn("SMTP not configured, confirmation emails disabled", zap.Error(err))
	} else {
		mailer = smtpSender
	}

	checkoutSvc := services.NewCheckoutService(stripeSvc, services.CheckoutConfig{
		SiteURL:          cfg.SiteURL,
		Currency:         cfg.Currency,
		DepositThreshold: cfg.DepositThreshold,
	}, logger.Log)
	orderSvc := services.NewOrderService(orderRepo, mailer, logger.Log)

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())

	routes.RegisterRoutes(r,
		controllers.NewCheckoutController(checkoutSvc),
		controllers.NewWebhookController(stripeSvc, orderSvc, logger.Log),
		controllers.NewOrderController(orderSvc),
		controllers.NewProductController(productRepo, logger.Log),
		controllers.NewCartController(cartRepo, logger.Log),
	)

	logger.Log.Info("Storefront service running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed", zap.Error(err))
	}
}
