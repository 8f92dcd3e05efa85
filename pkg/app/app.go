// Package app composes the services from their dependencies.
package app

import (
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/service/account"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/pkg/service/creditcard"
	"github.com/amirasaad/fintrack/pkg/service/dashboard"
	"github.com/amirasaad/fintrack/pkg/service/ledger"
	"github.com/amirasaad/fintrack/pkg/service/profile"
	"github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/gofiber/fiber/v2"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow     repository.UnitOfWork
	Storage fiber.Storage
	Logger  *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	ProfileService     *profile.Service
	AccountService     *account.Service
	CreditCardService  *creditcard.Service
	CategoryService    *category.Service
	TransactionService *transaction.Service
	DashboardService   *dashboard.Service
	LedgerService      *ledger.Service
	// Location is the calendar zone used for "today" and the current month.
	Location *time.Location
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AuthService = auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
	app.UserService = user.New(deps.Uow, cfg.Beta.MaxUsers, deps.Logger)
	app.ProfileService = profile.New(deps.Uow, deps.Logger)
	app.AccountService = account.New(deps.Uow, deps.Logger)
	app.CreditCardService = creditcard.New(deps.Uow, deps.Logger)
	app.CategoryService = category.New(deps.Uow, deps.Logger)
	app.TransactionService = transaction.New(deps.Uow, deps.Logger)
	app.LedgerService = ledger.New(deps.Uow, deps.Logger)

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		deps.Logger.Warn("Unknown dashboard timezone, using UTC", "timezone", cfg.Dashboard.Timezone, "error", err)
		loc = time.UTC
	}
	app.Location = loc
	app.DashboardService = dashboard.New(
		deps.Uow,
		deps.Logger,
		dashboard.WithLocation(loc),
		dashboard.WithRecentLimit(cfg.Dashboard.RecentLimit),
	)
	return app
}
