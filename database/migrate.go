package database

import (
	"fmt"

	"github.com/issue-tracker/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Status{},
		&models.Type{},
		&models.Project{},
		&models.Issue{},
		&models.Product{},
		&models.Session{},
		&models.Cart{},
		&models.Order{},
		&models.OrderProduct{},
	}
}

// Migrate migrates the database schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// SeedReferenceData inserts the fixed statuses and types; existing rows are left alone
func SeedReferenceData(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range models.StatusChoices {
			status := models.Status{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&status).Error; err != nil {
				return fmt.Errorf("failed to seed status %s: %w", name, err)
			}
		}
		for _, name := range models.TypeChoices {
			typ := models.Type{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&typ).Error; err != nil {
				return fmt.Errorf("failed to seed type %s: %w", name, err)
			}
		}
		return nil
	})
}

// MigrateDataBetweenDatabases copies every row from source to target.
// The target schema must already exist.
func MigrateDataBetweenDatabases(source, target *gorm.DB) error {
	log.Info().Msg("starting data migration from source to target")

	steps := []struct {
		name string
		copy func() (int, error)
	}{
		{"users", func() (int, error) { return copyTable[models.User](source, target) }},
		{"statuses", func() (int, error) { return copyTable[models.Status](source, target) }},
		{"types", func() (int, error) { return copyTable[models.Type](source, target) }},
		{"projects", func() (int, error) { return copyTable[models.Project](source, target) }},
		{"issues", func() (int, error) { return copyTable[models.Issue](source.Preload("Types"), target) }},
		{"products", func() (int, error) { return copyTable[models.Product](source, target) }},
		{"sessions", func() (int, error) { return copyTable[models.Session](source, target) }},
		{"carts", func() (int, error) { return copyTable[models.Cart](source, target) }},
		{"orders", func() (int, error) { return copyTable[models.Order](source, target) }},
		{"order products", func() (int, error) { return copyTable[models.OrderProduct](source, target) }},
	}

	for _, step := range steps {
		n, err := step.copy()
		if err != nil {
			return fmt.Errorf("failed to migrate %s: %w", step.name, err)
		}
		log.Info().Int("rows", n).Msgf("migrated %s", step.name)
	}

	log.Info().Msg("data migration completed")
	return nil
}

func copyTable[T any](source, target *gorm.DB) (int, error) {
	var rows []T
	if err := source.Find(&rows).Error; err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	// Only many2many join rows are written alongside; belongs-to targets were copied earlier.
	err := target.Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Author", "Project", "Status", "Session", "Product", "User", "Products").
		CreateInBatches(&rows, 200).Error
	return len(rows), err
}
