package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"confreg/internal/auth"
	"confreg/internal/booking"
	"confreg/internal/booking/booking_api"
	booking_db "confreg/internal/booking/db"
	"confreg/internal/config"
	"confreg/internal/content"
	"confreg/internal/content/content_api"
	content_db "confreg/internal/content/db"
	"confreg/internal/database/migrations"
	"confreg/internal/logger"
	"confreg/internal/mail"
	"confreg/internal/order"
	order_db "confreg/internal/order/db"
	"confreg/internal/order/order_api"
	"confreg/internal/pricing"
)

func connectDatabase(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("REDIS", "REDIS_ADDR not set, admin token cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unavailable, admin token cache disabled: %v", err))
		return nil
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting registration service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg.Database, log)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		SeedData:      getEnvBool("SEED_DATA", false),
	})
	if err := runner.Run(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}
	log.Info("DATABASE", "Migrations applied")

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	uploader, err := content.NewUploader(cfg.Uploads, log)
	if err != nil {
		log.Fatal("UPLOAD", fmt.Sprintf("Failed to prepare upload directory: %v", err))
	}

	orderDB := &order_db.DB{Bun: bunDB}
	bookingDB := &booking_db.DB{Bun: bunDB}
	contentDB := &content_db.DB{Bun: bunDB}

	mailer := mail.NewService(cfg.Email, log)
	evaluator := pricing.NewEvaluator(orderDB)

	if cfg.Stripe.SecretKey == "" {
		log.Warn("PAYMENT", "STRIPE_SECRET_KEY not set, checkout creation will fail")
	}
	provider := order.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.ReturnURL)

	orderService := order.NewOrderService(orderDB, provider, evaluator, mailer, log)
	bookingService := booking.NewService(bookingDB, mailer, log)

	orderHandler := &order_api.Handler{OrderService: orderService, Logger: log}
	bookingHandler := &booking_api.Handler{Service: bookingService, Logger: log}
	contentHandler := content_api.NewHandler(contentDB, uploader, log)

	issuer := auth.NewTokenIssuer(cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)
	tokenCache := auth.NewRedisTokenCache(redisClient)
	loginHandler := &auth.LoginHandler{Password: cfg.Admin.Password, Issuer: issuer, Logger: log}
	if cfg.Admin.Password == "" {
		log.Warn("AUTH", "ADMIN_PASSWORD not set, admin login disabled")
	}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Route("/api", func(r chi.Router) {
		r.Post("/payments/start", orderHandler.StartPayment)
		r.Get("/payments/verify", orderHandler.VerifyPayment)
		r.Post("/bookings", bookingHandler.CreateBooking)

		r.Get("/program", contentHandler.ListProgram)
		r.Get("/prices", contentHandler.ListPrices)
		r.Get("/speakers", contentHandler.ListSpeakers)
		r.Get("/partners", contentHandler.ListPartners)
		r.Get("/venue", contentHandler.GetVenue)
		r.Get("/hero", contentHandler.GetHero)

		r.Post("/admin/login", loginHandler.Login)

		// --- Admin Routes ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(issuer, tokenCache, log))

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", bookingHandler.ListBookings)
				r.Post("/", bookingHandler.CreateBooking)
				r.Get("/export", bookingHandler.ExportCSV)
				r.Get("/export.xlsx", bookingHandler.ExportXLSX)
			})

			r.Route("/program", func(r chi.Router) {
				r.Post("/", contentHandler.CreateProgramItem)
				r.Post("/reorder", contentHandler.ReorderProgram)
				r.Put("/{id}", contentHandler.UpdateProgramItem)
				r.Delete("/{id}", contentHandler.DeleteProgramItem)
			})

			r.Route("/prices", func(r chi.Router) {
				r.Post("/", contentHandler.CreatePrice)
				r.Put("/{id}", contentHandler.UpdatePrice)
				r.Delete("/{id}", contentHandler.DeletePrice)
			})

			r.Route("/discounts", func(r chi.Router) {
				r.Get("/", contentHandler.ListDiscounts)
				r.Post("/", contentHandler.CreateDiscount)
				r.Put("/{id}", contentHandler.UpdateDiscount)
				r.Delete("/{id}", contentHandler.DeleteDiscount)
			})

			r.Route("/speakers", func(r chi.Router) {
				r.Post("/", contentHandler.CreateSpeaker)
				r.Put("/{id}", contentHandler.UpdateSpeaker)
				r.Delete("/{id}", contentHandler.DeleteSpeaker)
			})

			r.Route("/partners", func(r chi.Router) {
				r.Post("/", contentHandler.CreatePartner)
				r.Put("/{id}", contentHandler.UpdatePartner)
				r.Delete("/{id}", contentHandler.DeletePartner)
			})

			r.Put("/venue", contentHandler.UpdateVenue)
			r.Put("/hero", contentHandler.UpdateHero)
		})
	})

	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploader.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Registration service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Registration service shutdown complete")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
