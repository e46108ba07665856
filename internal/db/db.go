package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// Open connects to the database behind dsn and migrates the catalog
// tables.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := conn.AutoMigrate(&models.Product{}, &models.Sale{}); err != nil {
		return nil, err
	}
	return conn, nil
}
