package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/carrierrepo"
	"fulfillment/internal/adapters/out/postgres/deliverynoterepo"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionConfig holds the settings for Open.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the config as a lib/pq connection string.
func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects through lib/pq and hands the pool to GORM. Unique violations
// therefore surface as *pq.Error.
func Open(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&carrierrepo.CarrierDTO{},
		&deliverynoterepo.DeliveryNoteDTO{},
		&deliverynoterepo.DeliveryItemDTO{},
		&deliverynoterepo.DeliveryEventDTO{},
	)
}
