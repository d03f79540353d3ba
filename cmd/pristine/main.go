package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"pristine/internal/config"
	"pristine/internal/http/handlers"
	applog "pristine/internal/log"
	"pristine/internal/mail"
	"pristine/internal/repos"
	"pristine/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	mailer := mail.New(cfg)
	if !mailer.Enabled() {
		log.Println("[mail] SMTP not configured; transactional email disabled")
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Mail: mailer}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc, mailer)

	// Public pages
	app.Get("/", deps.PageHandler.Home)
	app.Get("/about", deps.PageHandler.About)
	app.Get("/services", deps.PageHandler.Services)
	app.Get("/services/:slug", deps.PageHandler.ServiceDetail)
	app.Get("/contact", deps.PageHandler.ContactForm)
	app.Post("/contact", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.PageHandler.ContactSubmit)

	// Booking wizard
	app.Get("/booking", deps.BookingHandler.Wizard)
	app.Post("/booking/service", deps.BookingHandler.SelectService)
	app.Post("/booking/schedule", deps.BookingHandler.SelectSchedule)
	app.Post("/booking/details", deps.BookingHandler.SubmitDetails)
	app.Post("/booking/back", deps.BookingHandler.Back)
	app.Post("/booking/confirm", deps.BookingHandler.Confirm)
	app.Get("/booking/complete/:id", deps.BookingHandler.Complete)

	// API
	api := app.Group("/api/v1")
	quoteLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|quote"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.quote.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/quote", quoteLimiter, deps.QuoteHandler.Price)

	// Customer dashboard
	app.Get("/dashboard", handlers.RequireUser(authSvc), deps.DashboardHandler.View)
	app.Post("/bookings/:id/cancel", handlers.RequireUser(authSvc), deps.DashboardHandler.Cancel)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", limiter.New(limiter.Config{Max: 5, Expiration: 10 * time.Minute}), authH.Register)
	app.Get("/confirm", authH.Confirm)
	app.Post("/resend-confirmation", limiter.New(limiter.Config{Max: 3, Expiration: 10 * time.Minute}), authH.ResendConfirmation)
	app.Post("/logout", authH.Logout)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/bookings", deps.AdminHandler.BookingsPage)
	admin.Post("/bookings/:id/status", deps.AdminHandler.UpdateBookingStatus)
	admin.Get("/services", deps.AdminHandler.ServicesPage)
	admin.Post("/services/:id/toggle", deps.AdminHandler.ToggleService)
	admin.Get("/messages", deps.AdminHandler.MessagesPage)
	admin.Post("/messages/:id/status", deps.AdminHandler.UpdateMessageStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
