package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"pristine/internal/log"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// safeNext restricts post-login redirects to local paths.
func safeNext(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": "", "Next": safeNext(c.Query("next"))})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	next := safeNext(c.FormValue("next"))
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_email_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "Next": next, "CSRFToken": c.Cookies("csrf_")})
	}
	pass := c.FormValue("password")

	_, err := h.Auth.Login(sid, email, pass)
	if errors.Is(err, services.ErrEmailNotConfirmed) {
		// business error with a recovery action, not a credential failure
		log.Info(c, "auth.login.unconfirmed", map[string]any{"email": email})
		return c.Status(403).Render("login", fiber.Map{
			"Err":         "Please confirm your email address before logging in.",
			"ResendEmail": email,
			"Next":        next,
			"CSRFToken":   c.Cookies("csrf_"),
		})
	}
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "Next": next, "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect(next)
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	name, okName := validate.Name(c.FormValue("name"))
	pass := c.FormValue("password")

	fail := func(msg string) error {
		return c.Status(400).Render("register", fiber.Map{"Err": msg, "CSRFToken": c.Cookies("csrf_")})
	}
	if !okEmail {
		return fail("Please enter a valid email address.")
	}
	if !okName {
		return fail("Please enter your name.")
	}
	if !validate.Password(pass) {
		return fail("Password must be 8-64 characters with upper/lower case letters and a digit.")
	}

	_, err := h.Auth.Register(email, name, pass)
	if errors.Is(err, services.ErrEmailTaken) {
		return fail("An account with this email already exists. Try logging in.")
	}
	if err != nil {
		log.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return fail("Could not create your account. Please try again.")
	}

	log.Audit(c, "auth.register", map[string]any{"email": email})
	return render(c, "register_done", fiber.Map{"Email": email})
}

// Confirm handles the emailed confirmation link.
func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	token, ok := validate.ID(c.Query("token"))
	if !ok {
		return c.Status(400).Render("notfound", fiber.Map{"Message": "Invalid confirmation link"})
	}
	u, err := h.Auth.Confirm(token)
	if err != nil {
		log.Security(c, "auth.confirm.fail", map[string]any{"token": token})
		return c.Status(400).Render("notfound", fiber.Map{"Message": "This confirmation link is invalid or already used"})
	}
	log.Audit(c, "auth.confirm", map[string]any{"email": u.Email})
	return render(c, "login", fiber.Map{"Err": "", "Notice": "Email confirmed. You can log in now.", "Next": "/"})
}

func (h *AuthHandler) ResendConfirmation(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Redirect("/login")
	}
	if err := h.Auth.ResendConfirmation(email); err != nil {
		log.Error(c, "auth.resend.fail", err, map[string]any{"email": email})
	}
	return render(c, "login", fiber.Map{
		"Err":    "",
		"Notice": "If an unconfirmed account exists for that address, a new confirmation email is on its way.",
		"Next":   "/",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
