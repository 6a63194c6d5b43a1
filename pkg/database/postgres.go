package database

import (
	"fmt"
	"telcoReco/domain"
	"telcoReco/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.UserBehavior{},
		&domain.Transaction{},
		&domain.Recommendation{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// SeedProducts inserts the demo catalog when the products table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []domain.Product{
		{Name: "Internet Hemat 10GB", Category: "Data", Price: 50000, Description: "Kuota 10GB masa aktif 30 hari", ValidityDays: 30},
		{Name: "Nelpon Sepuasnya", Category: "Talktime", Price: 20000, Description: "Nelpon ke semua operator 100 menit", ValidityDays: 7},
		{Name: "Combo Sakti", Category: "Mix", Price: 75000, Description: "Internet 15GB + Nelpon 50 menit", ValidityDays: 30},
	}

	return db.Create(&demo).Error
}
