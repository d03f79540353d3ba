package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pristine/internal/domain"
	applog "pristine/internal/log"
	"pristine/internal/repos"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type AdminHandler struct {
	Bookings *repos.BookingRepo
	Catalog  *services.CatalogService
	Contact  *services.ContactService
	Booking  *services.BookingService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	counts, err := h.Bookings.StatusCounts()
	if err != nil {
		applog.Error(c, "admin.stats.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load stats"})
	}
	total := 0
	stats := make([]fiber.Map, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		total += counts[s]
		stats = append(stats, fiber.Map{"Label": s.Label(), "Count": counts[s]})
	}
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats, "Total": total})
}

// GET /admin/bookings
func (h *AdminHandler) BookingsPage(c *fiber.Ctx) error {
	rows, err := h.Bookings.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.bookings.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load bookings"})
	}
	return render(c, "admin_bookings", fiber.Map{"Bookings": rows, "Statuses": domain.Statuses})
}

// POST /admin/bookings/:id/status
func (h *AdminHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing booking id")
	}
	status, err := h.Booking.UpdateStatus(id, c.FormValue("status"))
	if err != nil {
		applog.Error(c, "admin.bookings.update.fail", err, map[string]any{"booking_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.bookings.update", map[string]any{"booking_id": id, "status": string(status)})
	return c.Redirect("/admin/bookings")
}

// GET /admin/services
func (h *AdminHandler) ServicesPage(c *fiber.Ctx) error {
	svcs, err := h.Catalog.ListAll()
	if err != nil {
		applog.Error(c, "admin.services.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load services"})
	}
	return render(c, "admin_services", fiber.Map{"Services": svcs})
}

// POST /admin/services/:id/toggle
func (h *AdminHandler) ToggleService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing service id")
	}
	active := c.FormValue("active") == "1"
	if err := h.Catalog.SetActive(id, active); err != nil {
		applog.Error(c, "admin.services.toggle.fail", err, map[string]any{"service_id": id})
		return c.Status(400).SendString("could not update service")
	}
	applog.Audit(c, "admin.services.toggle", map[string]any{"service_id": id, "active": active})
	return c.Redirect("/admin/services")
}

// GET /admin/messages
func (h *AdminHandler) MessagesPage(c *fiber.Ctx) error {
	msgs, err := h.Contact.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.messages.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load messages"})
	}
	return render(c, "admin_messages", fiber.Map{"Messages": msgs})
}

// POST /admin/messages/:id/status
func (h *AdminHandler) UpdateMessageStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing message id")
	}
	if err := h.Contact.UpdateStatus(id, c.FormValue("status")); err != nil {
		applog.Error(c, "admin.messages.update.fail", err, map[string]any{"message_id": id})
		return c.Status(400).SendString("could not update message")
	}
	applog.Audit(c, "admin.messages.update", map[string]any{"message_id": id})
	return c.Redirect("/admin/messages")
}
