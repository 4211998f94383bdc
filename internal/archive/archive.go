// Package archive keeps an append-only record of every publication in
// Postgres. It is observability only: selection decisions never read it,
// the JSON history document stays the single source of decision state.
package archive

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// Publication is one archived publication row.
type Publication struct {
	ID            uint   `gorm:"primaryKey"`
	ASIN          string `gorm:"column:asin;index"`
	Title         string
	Category      string
	Discount      float64
	Price         string
	PreviousPrice string
	DetailURL     string
	PublishedAt   time.Time `gorm:"index"`
}

func (Publication) TableName() string { return "publications" }

// Archive wraps the Postgres connection.
type Archive struct {
	db *gorm.DB
}

// Open connects and migrates the publications table.
func Open(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := db.AutoMigrate(&Publication{}); err != nil {
		return nil, fmt.Errorf("migrate archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Record appends one publication.
func (a *Archive) Record(ctx context.Context, p deal.Product, cat catalog.Category, at time.Time) error {
	row := Publication{
		ASIN:          p.ASIN,
		Title:         p.Title,
		Category:      cat.Name,
		Discount:      p.Discount,
		Price:         p.Price,
		PreviousPrice: p.PreviousPrice,
		DetailURL:     p.DetailURL,
		PublishedAt:   at,
	}
	if err := a.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record publication: %w", err)
	}
	return nil
}
