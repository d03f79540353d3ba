package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "pristine/internal/log"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type PageHandler struct {
	Catalog *services.CatalogService
	Contact *services.ContactService
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	svcs, err := h.Catalog.ListActive()
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Something went wrong. Please try again."})
	}
	return render(c, "home", fiber.Map{"Services": svcs})
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	return render(c, "about", fiber.Map{})
}

func (h *PageHandler) Services(c *fiber.Ctx) error {
	svcs, err := h.Catalog.ListActive()
	if err != nil {
		applog.Error(c, "services.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load services"})
	}
	return render(c, "services", fiber.Map{"Services": svcs})
}

func (h *PageHandler) ServiceDetail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Service not found"})
	}
	svc, err := h.Catalog.BySlug(slug)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Service not found"})
	}
	return render(c, "service", fiber.Map{"S": svc, "Included": svc.Included()})
}

func (h *PageHandler) ContactForm(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{"Err": ""})
}

func (h *PageHandler) ContactSubmit(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	message, okMsg := validate.Line(c.FormValue("message"), 2000)
	if !okName || !okEmail || !okMsg {
		applog.Security(c, "validation.fail", map[string]any{"form": "contact"})
		return c.Status(400).Render("contact", fiber.Map{
			"Err":       "Please fill in your name, a valid email, and a message.",
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	phone := validate.Optional(c.FormValue("phone"), 20)
	subject := validate.Optional(c.FormValue("subject"), 120)

	m, err := h.Contact.Submit(name, email, phone, subject, message)
	if err != nil {
		applog.Error(c, "contact.submit.fail", err, nil)
		return c.Status(500).Render("contact", fiber.Map{
			"Err":       "Could not send your message. Please try again.",
			"CSRFToken": c.Cookies("csrf_"),
		})
	}
	applog.Audit(c, "contact.submit", map[string]any{"message_id": m.ID})
	return render(c, "contact_done", fiber.Map{"Name": name})
}
