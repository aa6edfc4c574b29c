package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	validate "github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shelfmark/shelfmark/internal/auth/dto"
	"github.com/shelfmark/shelfmark/internal/auth/jwt"
	"github.com/shelfmark/shelfmark/internal/auth/password"
	authservice "github.com/shelfmark/shelfmark/internal/auth/service"
	bookservice "github.com/shelfmark/shelfmark/internal/books/service"
	"github.com/shelfmark/shelfmark/internal/config"
	"github.com/shelfmark/shelfmark/internal/googlebooks"
	lg "github.com/shelfmark/shelfmark/internal/infra/log"
	"github.com/shelfmark/shelfmark/internal/migrate"
	pgrepo "github.com/shelfmark/shelfmark/internal/repo/postgres"
	redisrepo "github.com/shelfmark/shelfmark/internal/repo/redis"
	httptransport "github.com/shelfmark/shelfmark/internal/transport/http"
	"github.com/shelfmark/shelfmark/internal/worker"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	v := validate.New()
	if err := dto.RegisterValidations(v); err != nil {
		zapLog.Fatal("register validations", zap.Error(err))
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}

	userRepo := pgrepo.NewPostgresUserRepo(db)
	tokenRepo := pgrepo.NewPostgresTokenRepo(db)
	bookRepo := pgrepo.NewPostgresBookRepo(db)
	cache := redisrepo.NewRedisCache(redisCli)
	catalog := googlebooks.NewClient(cfg.GoogleBooksURL)

	bg := worker.New(zapLog.Named("worker"), 256)
	defer bg.Close()

	authSvc := authservice.NewAuthService(userRepo, tokenRepo, jwtUtil, password.NewHasher(cfg.PasswordPepper), cfg, v)
	bookSvc := bookservice.NewBookService(bookRepo, cache, catalog, bg, cfg, zapLog.Named("books"))

	router := httptransport.NewRouter(cfg, zapLog, authSvc, bookSvc)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
