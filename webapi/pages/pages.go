// Package pages serves the server-rendered HTML screens.
package pages

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain/dashboard"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	dashboardsvc "github.com/amirasaad/fintrack/pkg/service/dashboard"
	profilesvc "github.com/amirasaad/fintrack/pkg/service/profile"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": func(amount decimal.Decimal, c currency.Code) string {
		return currency.Format(amount, c)
	},
	"signed": func(amount decimal.Decimal, c currency.Code) string {
		if amount.IsNegative() {
			return "-" + currency.Format(amount, c)
		}
		return currency.Format(amount, c)
	},
	"date": func(t time.Time) string { return t.Format("02/01/2006") },
}

// Renderer executes the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{"login", "signup", "beta_full", "dashboard"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		)
		if err != nil {
			return nil, err
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNewRenderer is NewRenderer for the embedded templates, which are
// known to parse.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes page as text/html.
func (r *Renderer) Render(c *fiber.Ctx, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fiber.ErrNotFound
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page+".html", data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

type betaData struct {
	Title string
	Beta  usersvc.BetaStatus
}

type dashboardData struct {
	Title    string
	Name     string
	Currency currency.Code
	Summary  *dashboard.Summary
}

// Routes registers the HTML pages.
func Routes(
	app *fiber.App,
	r *Renderer,
	authSvc *authsvc.Service,
	userSvc *usersvc.Service,
	profileSvc *profilesvc.Service,
	dashboardSvc *dashboardsvc.Service,
	cfg *config.App,
) {
	jwtCfg := cfg.Auth.Jwt
	app.Get("/auth/login", middleware.RedirectIfAuthenticated(jwtCfg), LoginPage(r))
	app.Get("/auth/sign-up",
		middleware.RedirectIfAuthenticated(jwtCfg),
		middleware.BetaGate(userSvc),
		SignUpPage(r, userSvc),
	)
	app.Get("/beta-full", BetaFullPage(r, userSvc))
	app.Get("/dashboard", middleware.PageProtected(jwtCfg), DashboardPage(r, authSvc, profileSvc, dashboardSvc))
}

func LoginPage(r *Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return r.Render(c, "login", betaData{Title: "Iniciar sesión"})
	}
}

func SignUpPage(r *Renderer, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := userSvc.BetaStatus(c.UserContext())
		if err != nil {
			return err
		}
		return r.Render(c, "signup", betaData{Title: "Crear cuenta", Beta: status})
	}
}

func BetaFullPage(r *Renderer, userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, err := userSvc.BetaStatus(c.UserContext())
		if err != nil {
			return err
		}
		return r.Render(c, "beta_full", betaData{Title: "Beta completa", Beta: status})
	}
}

// DashboardPage renders the summary in the user's display currency.
func DashboardPage(
	r *Renderer,
	authSvc *authsvc.Service,
	profileSvc *profilesvc.Service,
	dashboardSvc *dashboardsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		p, err := profileSvc.Ensure(c.UserContext(), userID)
		if err != nil {
			return err
		}
		s, err := dashboardSvc.Summary(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return r.Render(c, "dashboard", dashboardData{
			Title:    "Dashboard",
			Name:     p.Username,
			Currency: p.Currency,
			Summary:  s,
		})
	}
}
