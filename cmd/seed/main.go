package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/config"
	"github.com/owlproh/api-yamdb/internal/db"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

var starterCategories = []model.Category{
	{Name: "Books", Slug: "books"},
	{Name: "Films", Slug: "films"},
	{Name: "Music", Slug: "music"},
}

var starterGenres = []model.Genre{
	{Name: "Drama", Slug: "drama"},
	{Name: "Comedy", Slug: "comedy"},
	{Name: "Fantasy", Slug: "fantasy"},
	{Name: "Rock", Slug: "rock"},
	{Name: "Classic", Slug: "classic"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Genre{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	if _, err := userRepo.FindByUsername(ctx, cfg.SuperuserName); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up superuser: %v", err)
		}
		superuser := &model.User{
			Username:    cfg.SuperuserName,
			Email:       cfg.SuperuserEmail,
			Role:        model.RoleAdmin,
			IsSuperuser: true,
		}
		if err := userRepo.Create(ctx, superuser); err != nil {
			log.Fatalf("Failed to create superuser: %v", err)
		}
		log.Printf("Created superuser %q", cfg.SuperuserName)
	} else {
		log.Printf("Superuser %q already exists, skipping", cfg.SuperuserName)
	}

	categoryRepo := repository.NewCategoryRepository(gormDB)
	created := 0
	for i := range starterCategories {
		if _, err := categoryRepo.FindBySlug(ctx, starterCategories[i].Slug); err == nil {
			continue
		}
		if err := categoryRepo.Create(ctx, &starterCategories[i]); err != nil {
			log.Fatalf("Failed to create category %q: %v", starterCategories[i].Slug, err)
		}
		created++
	}
	log.Printf("Seeded %d categories", created)

	genreRepo := repository.NewGenreRepository(gormDB)
	created = 0
	for i := range starterGenres {
		if _, err := genreRepo.FindBySlug(ctx, starterGenres[i].Slug); err == nil {
			continue
		}
		if err := genreRepo.Create(ctx, &starterGenres[i]); err != nil {
			log.Fatalf("Failed to create genre %q: %v", starterGenres[i].Slug, err)
		}
		created++
	}
	log.Printf("Seeded %d genres", created)

	log.Println("Seed complete")
}
