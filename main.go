package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yashrajoria/storefront-backend/config"
	"github.com/yashrajoria/storefront-backend/controllers"
	"github.com/yashrajoria/storefront-backend/database"
	"github.com/yashrajoria/storefront-backend/kafka"
	"github.com/yashrajoria/storefront-backend/logger"
	"github.com/yashrajoria/storefront-backend/mailer"
	"github.com/yashrajoria/storefront-backend/middleware"
	"github.com/yashrajoria/storefront-backend/models"
	"github.com/yashrajoria/storefront-backend/repository"
	"github.com/yashrajoria/storefront-backend/routes"
	"github.com/yashrajoria/storefront-backend/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	client, db, err := database.Connect(cfg.MongoURL, cfg.MongoDBName)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		cancel()
		log.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancel()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if producer == nil {
		log.Warn("Kafka brokers not configured, order events disabled")
	}

	var mail mailer.EmailSender
	if cfg.SMTPHost != "" {
		smtp, err := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUser)
		if err != nil {
			log.Fatal("Invalid SMTP configuration", zap.Error(err))
		}
		mail = smtp
	} else {
		log.Warn("SMTP not configured, outgoing email disabled")
	}

	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	cartRepo := repository.NewMongoCartRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	couponRepo := repository.NewMongoCouponRepository(db)
	adminLogRepo := repository.NewMongoAdminLogRepository(db)
	blogRepo := repository.NewMongoBlogRepository(db)

	tokens := services.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	paystack := services.NewPaystackService(cfg.PaystackSecretKey, cfg.PaystackBaseURL)

	authService := services.NewAuthService(userRepo, tokens, redisClient, mail, cfg.FrontendURL, log)
	userService := services.NewUserService(userRepo, productRepo, log)
	cartService := services.NewCartService(cartRepo, productRepo, log)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, adminLogRepo, producer, mail, log)
	couponService := services.NewCouponService(couponRepo, log)
	paymentService := services.NewPaymentService(orderRepo, userRepo, paystack, producer, log)
	productService := services.NewProductService(productRepo, log)
	blogService := services.NewBlogService(blogRepo, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidators(v); err != nil {
			log.Fatal("Failed to register validators", zap.Error(err))
		}
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.RequestTimeout(30 * time.Second))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(r, tokens, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		User:    controllers.NewUserController(userService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService, paymentService),
		Coupon:  controllers.NewCouponController(couponService),
		Product: controllers.NewProductController(productService),
		Blog:    controllers.NewBlogController(blogService),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Storefront backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := producer.Close(); err != nil {
		log.Error("Kafka producer close error", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(client); err != nil {
		log.Error("MongoDB close error", zap.Error(err))
	}

	log.Info("Storefront backend stopped gracefully")
}
