package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/blog"
	"github.com/Aarya06/Bookwizard/internal/catalog"
	"github.com/Aarya06/Bookwizard/internal/checkout"
	"github.com/Aarya06/Bookwizard/internal/comment"
	"github.com/Aarya06/Bookwizard/internal/event"
	"github.com/Aarya06/Bookwizard/internal/exchange"
	"github.com/Aarya06/Bookwizard/internal/httpapi"
	"github.com/Aarya06/Bookwizard/internal/mail"
	"github.com/Aarya06/Bookwizard/internal/order"
	"github.com/Aarya06/Bookwizard/internal/order/publisher"
	"github.com/Aarya06/Bookwizard/internal/payment"
	"github.com/Aarya06/Bookwizard/internal/session"
	"github.com/Aarya06/Bookwizard/internal/storage"
	"github.com/Aarya06/Bookwizard/internal/user"
	"github.com/Aarya06/Bookwizard/internal/wishlist"
)

func main() {
	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDBName := getEnv("MONGO_DB_NAME", "bookwizard")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")
	stripeAPIKey := getEnv("STRIPE_API_KEY", "")
	sendgridAPIKey := getEnv("SENDGRID_API_KEY", "")
	mailFrom := getEnv("MAIL_FROM", "orders@bookwizard.example")
	currency := getEnv("CHECKOUT_CURRENCY", "inr")
	baseURL := getEnv("PUBLIC_BASE_URL", "http://localhost:8080")
	adminEmail := getEnv("ADMIN_EMAIL", "")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := storage.ConnectMongoDB(ctx, mongoURI, mongoDBName)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(ctx)
	logger.Info("connected to MongoDB", zap.String("uri", mongoURI))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	logger.Info("redis ping succeeded", zap.String("addr", redisAddr))

	// Repositories
	orderRepo := order.NewMongoRepository(mongoDB)
	userRepo := user.NewMongoRepository(mongoDB)
	bookRepo := catalog.NewMongoBookRepository(mongoDB)
	ebookRepo := catalog.NewMongoEbookRepository(mongoDB)
	blogRepo := blog.NewMongoRepository(mongoDB)
	eventRepo := event.NewMongoRepository(mongoDB)
	exchangeRepo := exchange.NewMongoRepository(mongoDB)
	commentRepo := comment.NewMongoRepository(mongoDB)
	wishlistRepo := wishlist.NewMongoRepository(mongoDB)

	ensureIndexes(ctx, logger, orderRepo, userRepo)

	// External boundaries
	stripe := payment.NewStripeClient(stripeAPIKey)
	mailer := mail.NewSendGridClient(sendgridAPIKey, mailFrom)

	// Services
	sessions := session.NewStore(redisClient)
	catalogSvc := catalog.NewService(bookRepo, ebookRepo, catalog.NewRedisCache(redisClient), logger)
	userSvc := user.NewService(userRepo, mailer, baseURL, adminEmail, logger)
	checkoutSvc := checkout.NewService(stripe, orderRepo, sessions, mailer, currency, logger)

	// Completed-order event publisher
	pub := publisher.New(orderRepo, logger, strings.Split(kafkaBrokers, ",")...)
	pubCtx, stopPublisher := context.WithCancel(ctx)
	go pub.Run(pubCtx)

	router := httpapi.NewRouter(sessions, userSvc, httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(userSvc, sessions, logger),
		Cart:     httpapi.NewCartHandler(sessions, catalogSvc, logger),
		Catalog:  httpapi.NewCatalogHandler(catalogSvc, logger),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc, sessions, userSvc, logger),
		Orders:   httpapi.NewOrdersHandler(orderRepo, logger),
		Wishlist: httpapi.NewWishlistHandler(wishlistRepo, catalogSvc, logger),
		Blog:     httpapi.NewBlogHandler(blogRepo, userSvc, logger),
		Event:    httpapi.NewEventHandler(eventRepo, userSvc, logger),
		Exchange: httpapi.NewExchangeHandler(exchangeRepo, userSvc, logger),
		Comment:  httpapi.NewCommentHandler(commentRepo, userSvc, logger),
	})

	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router,
	}

	go func() {
		logger.Info("http server listening", zap.String("port", httpPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopPublisher()
	if err := pub.Close(); err != nil {
		logger.Warn("failed to close kafka writer", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}

// ensureIndexes builds the mongo indexes for every repository that declares
// some. Index creation is idempotent so this runs on every boot.
func ensureIndexes(ctx context.Context, logger *zap.Logger, repos ...interface{}) {
	type indexed interface {
		CreateIndexes(ctx context.Context) error
	}
	for _, repo := range repos {
		if ic, ok := repo.(indexed); ok {
			if err := ic.CreateIndexes(ctx); err != nil {
				logger.Fatal("failed to create indexes", zap.Error(err))
			}
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
