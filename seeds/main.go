// Package main provides the database seeder for the catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/postgres"
	"github.com/mutugading/goapps-backend/services/catalog/pkg/logger"
)

type categorySeed struct {
	id          string
	name        string
	description string
}

type productSeed struct {
	name        string
	price       float64
	categoryID  string
	description string
}

// The ids match the default price bands.
var categorySeeds = []categorySeed{
	{"category_1", "Electronics", "Phones, laptops and accessories"},
	{"category_2", "Home Appliances", "Kitchen and household appliances"},
	{"category_3", "Furniture", "Indoor and outdoor furniture"},
}

var productSeeds = []productSeed{
	{"Smartphone", 899.90, "category_1", "6.1 inch display"},
	{"Wireless Earbuds", 149.90, "category_1", "Noise cancelling"},
	{"USB-C Charger", 59.90, "category_1", "65W fast charging"},
	{"Microwave Oven", 749.00, "category_2", "30 liters"},
	{"Blender", 219.00, "category_2", "1200W"},
	{"Dining Table", 1899.00, "category_3", "Six seats, oak"},
	{"Office Chair", 1249.00, "category_3", "Ergonomic"},
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	logger.Setup(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		PrettyJSON: cfg.Logger.PrettyJSON,
		Service:    "catalog-seeder",
	})

	log.Info().Msg("Starting catalog seeder")

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error().Err(err).Msg("Failed to ensure schema")
		return
	}

	categories := postgres.NewCategoryRepository(db)
	products := postgres.NewProductRepository(db)

	insertedCategories, skippedCategories := seedCategories(ctx, categories)
	insertedProducts, skippedProducts := seedProducts(ctx, products)

	fmt.Printf("\nSeeding completed!\n")
	fmt.Printf("   Categories inserted: %d, skipped: %d\n", insertedCategories, skippedCategories)
	fmt.Printf("   Products inserted:   %d, skipped: %d\n", insertedProducts, skippedProducts)
}

func seedCategories(ctx context.Context, repo category.Repository) (inserted, skipped int) {
	for _, seed := range categorySeeds {
		entity, err := category.NewCategoryWithID(seed.id, seed.name, seed.description)
		if err != nil {
			log.Error().Err(err).Str("id", seed.id).Msg("Invalid category seed")
			continue
		}

		if _, err := repo.FindByID(ctx, entity.ID()); err == nil {
			log.Debug().Str("id", seed.id).Msg("Category already exists, skipping")
			skipped++
			continue
		} else if !errors.Is(err, category.ErrNotFound) {
			log.Error().Err(err).Str("id", seed.id).Msg("Failed to check existence")
			continue
		}

		if _, err := repo.Save(ctx, entity); err != nil {
			log.Error().Err(err).Str("id", seed.id).Msg("Failed to insert category")
			continue
		}

		log.Info().Str("id", seed.id).Str("name", seed.name).Msg("Inserted category")
		inserted++
	}
	return inserted, skipped
}

func seedProducts(ctx context.Context, repo product.Repository) (inserted, skipped int) {
	for _, seed := range productSeeds {
		entity, err := product.NewProduct(seed.name, seed.price, seed.categoryID, seed.description)
		if err != nil {
			log.Error().Err(err).Str("name", seed.name).Msg("Invalid product seed")
			continue
		}

		if _, err := repo.Save(ctx, entity); err != nil {
			if errors.Is(err, product.ErrDuplicateName) {
				log.Debug().Str("name", seed.name).Msg("Product already exists, skipping")
				skipped++
				continue
			}
			log.Error().Err(err).Str("name", seed.name).Msg("Failed to insert product")
			continue
		}

		log.Info().Str("name", seed.name).Str("category_id", seed.categoryID).Msg("Inserted product")
		inserted++
	}
	return inserted, skipped
}
