package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/jmoiron/sqlx"
	"github.com/nppdeals/inventory-platform/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

var dbSystem = attribute.String("db.system", "postgresql")

type Repository struct {
	DB *sqlx.DB

	User         UserRepository
	Product      ProductRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(dbSystem),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := registerStats(db); err != nil {
		return nil, err
	}

	return NewRepository(sqlx.NewDb(db, "postgres")), nil
}

// registerStats exports connection pool gauges for db.
func registerStats(db *sql.DB) error {
	if err := otelsql.RegisterDBStatsMetrics(db, otelsql.WithAttributes(dbSystem)); err != nil {
		return fmt.Errorf("failed to register database metrics: %w", err)
	}

	return nil
}

// NewRepository wires every repository onto an open handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		DB:           db,
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
