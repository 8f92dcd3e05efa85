// Package migrations brings a database schema up to date.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	infraaccount "github.com/amirasaad/fintrack/infra/repository/account"
	infracategory "github.com/amirasaad/fintrack/infra/repository/category"
	infracard "github.com/amirasaad/fintrack/infra/repository/creditcard"
	infraprofile "github.com/amirasaad/fintrack/infra/repository/profile"
	infratransaction "github.com/amirasaad/fintrack/infra/repository/transaction"
	infrauser "github.com/amirasaad/fintrack/infra/repository/user"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Up applies pending migrations. Postgres uses the versioned SQL files;
// sqlite, used for local runs and tests, is migrated from the gorm models.
func Up(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		return upPostgres(db)
	default:
		return AutoMigrate(db)
	}
}

// AutoMigrate creates or alters tables to match the gorm models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&infrauser.User{},
		&infraprofile.Profile{},
		&infraaccount.Account{},
		&infracard.CreditCard{},
		&infracategory.Category{},
		&infratransaction.Transaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func upPostgres(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	d, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
