// Package webapi assembles the Fiber application. Each resource lives in its
// own sub-package:
//   - auth: sign-up, login, logout and beta status
//   - profile: display name, currency and avatar
//   - account, creditcard, category, transaction: CRUD endpoints
//   - dashboard, ledger: read-only figures and balance reconciliation
//   - pages: server-rendered HTML screens
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/middleware"
	accountweb "github.com/amirasaad/fintrack/webapi/account"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	categoryweb "github.com/amirasaad/fintrack/webapi/category"
	"github.com/amirasaad/fintrack/webapi/common"
	cardweb "github.com/amirasaad/fintrack/webapi/creditcard"
	dashboardweb "github.com/amirasaad/fintrack/webapi/dashboard"
	ledgerweb "github.com/amirasaad/fintrack/webapi/ledger"
	"github.com/amirasaad/fintrack/webapi/pages"
	profileweb "github.com/amirasaad/fintrack/webapi/profile"
	transactionweb "github.com/amirasaad/fintrack/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

var errRateLimited = errors.New("rate limit exceeded")

// clientIP keys rate limits by the first X-Forwarded-For hop, then
// X-Real-IP, then the peer address.
func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

// SetupApp initializes Fiber with every route registered.
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config
	storage := app.Deps.Storage

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, nil, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		KeyGenerator: clientIP,
		Storage:      storage,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", errRateLimited, fiber.StatusTooManyRequests)
		},
	}))
	authLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.AuthMaxRequests,
		Expiration: cfg.RateLimit.AuthWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + clientIP(c)
		},
		Storage: storage,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c, "Too Many Requests", errRateLimited, common.MsgTooManyAttempts, fiber.StatusTooManyRequests,
			)
		},
	})
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Storage: storage,
		TTL:     cfg.Idempotency.TTL,
		Logger:  app.Deps.Logger,
	})

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("FinTrack API is running!")
	})

	authweb.Routes(fiberApp, app.AuthService, app.UserService, cfg, authLimiter)
	profileweb.Routes(fiberApp, app.ProfileService, app.AuthService, cfg)
	accountweb.Routes(fiberApp, app.AccountService, app.AuthService, cfg, idempotency)
	cardweb.Routes(fiberApp, app.CreditCardService, app.AuthService, cfg, idempotency)
	categoryweb.Routes(fiberApp, app.CategoryService, app.AuthService, cfg, idempotency)
	transactionweb.Routes(fiberApp, app.TransactionService, app.AuthService, cfg, idempotency, app.Location)
	dashboardweb.Routes(fiberApp, app.DashboardService, app.AuthService, cfg)
	ledgerweb.Routes(fiberApp, app.LedgerService, app.AuthService, cfg)
	pages.Routes(
		fiberApp,
		pages.MustNewRenderer(),
		app.AuthService,
		app.UserService,
		app.ProfileService,
		app.DashboardService,
		cfg,
	)
	return fiberApp
}
