package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/gh0stlung/Agri-Store/configs"
	"github.com/gh0stlung/Agri-Store/internal/models"
)

// Client wraps the catalog/order store connection. The zero-value concept
// of "no backend configured" is its own constructible state so call sites
// branch on Configured() instead of sprinkling nil checks.
type Client struct {
	gorm *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(cfg config.DatabaseConfig) (*Client, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := migrate(gdb); err != nil {
		return nil, err
	}

	return &Client{gorm: gdb}, nil
}

// FromGorm wraps an already-open gorm handle. Tests use this with an
// in-memory SQLite database.
func FromGorm(gdb *gorm.DB) *Client {
	return &Client{gorm: gdb}
}

// Unconfigured returns a client with no backend. Reads yield empty
// results and writes fail, which the handlers degrade on.
func Unconfigured() *Client {
	return &Client{}
}

// Configured reports whether a backend connection exists.
func (c *Client) Configured() bool {
	return c != nil && c.gorm != nil
}

// DB exposes the underlying gorm handle. Callers must check Configured first.
func (c *Client) DB() *gorm.DB {
	return c.gorm
}

// Migrate creates or updates the schema on the wrapped connection.
func (c *Client) Migrate() error {
	return migrate(c.gorm)
}

func migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.StoreUpdate{},
		&models.AdminUser{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate DB: %w", err)
	}
	return nil
}
