package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pristine/internal/domain"
	applog "pristine/internal/log"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type DashboardHandler struct {
	Booking *services.BookingService
}

// View lists the logged-in customer's bookings.
func (h *DashboardHandler) View(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login?next=/dashboard")
	}
	bookings, err := h.Booking.ListByCustomer(u.Email)
	if err != nil {
		applog.Error(c, "dashboard.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your bookings"})
	}

	rows := make([]fiber.Map, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, fiber.Map{
			"B":           b,
			"StatusLabel": b.Status.Label(),
			"CanModify":   b.Status.CanModify(),
		})
	}
	return render(c, "dashboard", fiber.Map{"Rows": rows, "Err": c.Query("err")})
}

// Cancel handles POST /bookings/:id/cancel.
func (h *DashboardHandler) Cancel(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing booking id")
	}

	err := h.Booking.Cancel(id, u.Email)
	switch {
	case errors.Is(err, services.ErrNotOwner):
		applog.Security(c, "booking.cancel.denied", map[string]any{"booking_id": id})
		return c.Redirect("/dashboard?err=Booking+not+found")
	case errors.Is(err, services.ErrNotModifiable):
		return c.Redirect("/dashboard?err=This+booking+can+no+longer+be+cancelled")
	case err != nil:
		applog.Error(c, "booking.cancel.fail", err, map[string]any{"booking_id": id})
		return c.Redirect("/dashboard?err=Could+not+cancel.+Please+try+again")
	}

	applog.Audit(c, "booking.cancel", map[string]any{"booking_id": id})
	return c.Redirect("/dashboard")
}
