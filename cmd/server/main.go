package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Omerrrrrrr/tamer-shop/internal/cart"
	"github.com/Omerrrrrrr/tamer-shop/internal/catalog"
	"github.com/Omerrrrrrr/tamer-shop/internal/checkout"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	h "github.com/Omerrrrrrr/tamer-shop/internal/http"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
	"github.com/Omerrrrrrr/tamer-shop/internal/session"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	RedisAddr       string
	AdminToken      string
	CartTTL         time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// missing .env is fine; the defaults below carry a dev setup
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./shop.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		CartTTL:         getEnvHours("CART_TTL_HOURS", 24),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvHours(key string, defaultHours int) time.Duration {
	hours := defaultHours
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			hours = n
		}
	}
	return time.Duration(hours) * time.Hour
}

var defaultCategories = []domain.Category{
	{ID: "elektronik", Label: "Elektronik"},
	{ID: "giyim", Label: "Giyim"},
	{ID: "ev-yasam", Label: "Ev & Yaşam"},
	{ID: "kitap", Label: "Kitap"},
}

func main() {
	cfg := loadConfig()

	repo, err := repository.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Println("migrations completed")

	ctx := context.Background()
	if err := repo.EnsureDefaultCategories(ctx, defaultCategories); err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	cartStore := session.NewRedisStore(redisClient, cfg.CartTTL)
	catalogSvc := catalog.NewService(repo)
	cartSvc := cart.NewService(cartStore, catalogSvc)
	checkoutSvc := checkout.NewService(cartSvc, catalogSvc, repo)

	if cfg.AdminToken == "" {
		log.Println("ADMIN_TOKEN is empty; admin endpoints are disabled")
	}

	router := h.NewRouter(h.RouterConfig{
		Products:       h.NewProductHandler(catalogSvc, repo, cfg.RequestTimeout),
		Carts:          h.NewCartHandler(cartSvc, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(checkoutSvc, cfg.RequestTimeout),
		Auth:           h.NewAuthHandler(repo, cfg.RequestTimeout),
		Admin:          h.NewAdminHandler(repo, catalogSvc, cfg.RequestTimeout),
		AdminToken:     cfg.AdminToken,
		RequestTimeout: cfg.RequestTimeout,
	})

	runServer(cfg, router)
}

func runServer(cfg *Config, router chi.Router) {
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("tamer-shop listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
