package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/owlproh/api-yamdb/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/owlproh/api-yamdb/internal/auth"
	"github.com/owlproh/api-yamdb/internal/cache"
	"github.com/owlproh/api-yamdb/internal/config"
	"github.com/owlproh/api-yamdb/internal/db"
	"github.com/owlproh/api-yamdb/internal/handler"
	"github.com/owlproh/api-yamdb/internal/logger"
	"github.com/owlproh/api-yamdb/internal/mailer"
	"github.com/owlproh/api-yamdb/internal/metrics"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
	"github.com/owlproh/api-yamdb/internal/router"
	"github.com/owlproh/api-yamdb/internal/service"
)

// @title YaMDb API
// @version 1.0
// @description Collaborative ratings and reviews platform: titles, categories, genres, reviews, comments and role-based access.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger init: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set.
	if os.Getenv("RESET_DB") == "true" {
		logger.Log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Comment{},
			&model.Review{},
			&model.Title{},
			&model.Genre{},
			&model.Category{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Log.Warnf("drop table (may not exist): %v", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Genre{},
		&model.Title{},
		&model.Review{},
		&model.Comment{},
	); err != nil {
		logger.Log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	metrics.Init()

	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	genreRepo := repository.NewGenreRepository(gormDB)
	titleRepo := repository.NewTitleRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPAddr != "" {
		mail = mailer.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom)
	}

	authService := service.NewAuthService(userRepo, jwtService, mail)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, cacheClient)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	e := echo.New()
	router.Register(
		e,
		jwtService,
		userRepo,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewCategoryHandler(categoryService),
		handler.NewGenreHandler(genreService),
		handler.NewTitleHandler(titleService),
		handler.NewReviewHandler(reviewService),
		handler.NewCommentHandler(commentService),
	)

	addr := ":" + cfg.ServerPort
	logger.Log.Infow("starting server", "addr", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalf("server start: %v", err)
	}
}
