package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"pristine/internal/booking"
	"pristine/internal/domain"
	applog "pristine/internal/log"
	"pristine/internal/pricing"
	"pristine/internal/services"
	"pristine/internal/validate"
)

type BookingHandler struct {
	Catalog *services.CatalogService
	Booking *services.BookingService
	Drafts  *booking.Store
}

// Wizard renders whichever step the session's draft is on. Every
// handler below locks the session's wizard for the whole request:
// overlapping requests on one sid would otherwise interleave their
// step transitions.
func (h *BookingHandler) Wizard(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	defer w.Unlock()

	// ?service=<slug> preselects the offering (links from service pages)
	if w.Step == booking.StepService {
		if slug, ok := validate.Slug(c.Query("service")); ok && slug != "" {
			w.Draft.ServiceSlug = slug
		}
	}

	return h.renderStep(c, w, "")
}

func (h *BookingHandler) renderStep(c *fiber.Ctx, w *booking.Wizard, errMsg string) error {
	data := fiber.Map{
		"Step":  int(w.Step),
		"Draft": w.Draft,
		"Err":   errMsg,
	}
	if errMsg != "" {
		c.Status(fiber.StatusBadRequest)
	}

	switch w.Step {
	case booking.StepService:
		svcs, err := h.Catalog.ListActive()
		if err != nil {
			applog.Error(c, "booking.services.load", err, nil)
			return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load services"})
		}
		data["Services"] = svcs
		return render(c, "booking_service", data)

	case booking.StepSchedule:
		data["TimeSlots"] = booking.TimeSlots
		data["MinDate"] = time.Now().AddDate(0, 0, 1).Format(booking.DateLayout)
		return render(c, "booking_schedule", data)

	case booking.StepDetails:
		sizes := make([]fiber.Map, 0, 9)
		for _, s := range pricing.Sizes() {
			sizes = append(sizes, fiber.Map{"Tag": s, "Label": pricing.SizeLabel(s)})
		}
		data["Sizes"] = sizes
		return render(c, "booking_details", data)

	default: // StepConfirm
		svc, err := h.Catalog.BySlug(w.Draft.ServiceSlug)
		if err != nil {
			// service deactivated mid-wizard; send them back to step one
			w.Step = booking.StepService
			return h.renderStep(c, w, "That service is no longer available. Please pick another.")
		}
		data["Service"] = svc
		data["Total"] = pricing.Quote(svc.BasePrice, w.Draft.Details.PropertySize)
		data["SizeLabel"] = pricing.SizeLabel(w.Draft.Details.PropertySize)
		return render(c, "booking_confirm", data)
	}
}

// SelectService handles step one's Next.
func (h *BookingHandler) SelectService(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	defer w.Unlock()
	if w.Step != booking.StepService {
		return c.Redirect("/booking")
	}

	slug, ok := validate.Slug(c.FormValue("service"))
	if ok {
		if _, err := h.Catalog.BySlug(slug); err != nil {
			ok = false
		}
	}
	if !ok {
		return h.renderStep(c, w, "Please choose a service to continue.")
	}

	w.Draft.ServiceSlug = slug
	if !w.Next() {
		return h.renderStep(c, w, "Please choose a service to continue.")
	}
	return c.Redirect("/booking")
}

// SelectSchedule handles step two's Next.
func (h *BookingHandler) SelectSchedule(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	defer w.Unlock()
	if w.Step != booking.StepSchedule {
		return c.Redirect("/booking")
	}

	date, okDate := validate.Date(c.FormValue("date"))
	slot := strings.TrimSpace(c.FormValue("time"))
	if !okDate || !booking.ValidSlot(slot) {
		return h.renderStep(c, w, "Please pick a date and an arrival window.")
	}

	w.Draft.Date = date
	w.Draft.TimeSlot = slot
	if !w.Next() {
		// shape was fine, so the gate that failed is the date floor
		return h.renderStep(c, w, "Bookings start tomorrow at the earliest. Please pick a later date.")
	}
	return c.Redirect("/booking")
}

// SubmitDetails handles step three's Next.
func (h *BookingHandler) SubmitDetails(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	defer w.Unlock()
	if w.Step != booking.StepDetails {
		return c.Redirect("/booking")
	}

	name, okName := validate.Name(c.FormValue("customer_name"))
	email, okEmail := validate.Email(c.FormValue("customer_email"))
	phone, okPhone := validate.Phone(c.FormValue("customer_phone"))
	addr1, okAddr := validate.Line(c.FormValue("address_line1"), 120)
	city, okCity := validate.Line(c.FormValue("city"), 60)
	zip, okZip := validate.Zip(c.FormValue("zip_code"))
	size := strings.TrimSpace(c.FormValue("property_size"))

	// Keep whatever they typed so the re-rendered form is not blanked.
	w.Draft.Details = booking.Details{
		Name:         name,
		Email:        email,
		Phone:        phone,
		AddressLine1: addr1,
		AddressLine2: validate.Optional(c.FormValue("address_line2"), 120),
		City:         city,
		ZipCode:      zip,
		PropertySize: size,
		SpecialNotes: validate.Optional(c.FormValue("special_instructions"), 1000),
	}

	if !okName || !okEmail || !okPhone || !okAddr || !okCity || !okZip || !pricing.ValidSize(size) {
		applog.Security(c, "validation.fail", map[string]any{"form": "booking_details"})
		return h.renderStep(c, w, "Please fill in all required fields (name, email, phone, address, city, ZIP, property size).")
	}
	if !w.Next() {
		return h.renderStep(c, w, "Please fill in all required fields.")
	}
	return c.Redirect("/booking")
}

// Back retreats one step; the draft keeps everything entered so far.
func (h *BookingHandler) Back(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	w.Back()
	w.Unlock()
	return c.Redirect("/booking")
}

// Confirm is the submission side effect off the final step. It requires
// an authenticated identity; without one the customer is sent to login
// and returns to the confirmation step afterward.
func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	w := h.Drafts.Get(sid)
	w.Lock()
	defer w.Unlock()
	if w.Step != booking.StepConfirm {
		return c.Redirect("/booking")
	}

	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		applog.Info(c, "booking.confirm.unauthenticated", nil)
		return c.Redirect("/login?next=/booking")
	}

	b, err := h.Booking.Create(u, w.Draft)
	if err != nil {
		applog.Error(c, "booking.create.fail", err, map[string]any{"sid": sid})
		msg := "Could not create your booking. Please try again."
		if errors.Is(err, services.ErrEmailMismatch) {
			// permission errors surface verbatim with their hint
			msg = err.Error()
		}
		// wizard stays on Confirmation for retry
		return h.renderStep(c, w, msg)
	}

	// Reset before dropping: a second in-flight confirm still holds this
	// wizard and must land back on step one, not submit again.
	w.Step = booking.StepService
	w.Draft = booking.Draft{}
	h.Drafts.Drop(sid)
	applog.Audit(c, "booking.create", map[string]any{"booking_id": b.ID, "total": b.TotalPrice})
	return c.Redirect("/booking/complete/" + b.ID)
}

// Complete shows the created booking (the Submitted terminal state).
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Booking not found"})
	}
	b, err := h.Booking.Bookings.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Booking not found"})
	}
	// owner or admin only
	u, _ := c.Locals("user").(*domain.User)
	if u == nil || (!strings.EqualFold(u.Email, b.CustomerEmail) && u.Role != "ADMIN") {
		applog.Security(c, "access.denied.booking", map[string]any{"booking_id": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Booking not found"})
	}
	return render(c, "booking_complete", fiber.Map{"B": b, "StatusLabel": b.Status.Label()})
}
