package services

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"pristine/internal/booking"
	"pristine/internal/domain"
	"pristine/internal/mail"
	"pristine/internal/pricing"
	"pristine/internal/repos"
)

var (
	// ErrEmailMismatch is the ownership policy: a booking's customer
	// email must be the authenticated account's email.
	ErrEmailMismatch = errors.New("permission denied: the booking email must match your account email. Log in with that address or change the contact email on the details step")
	ErrNotOwner      = errors.New("booking not found")
	ErrNotModifiable = errors.New("this booking can no longer be changed; please contact us")
)

type BookingService struct {
	Bookings *repos.BookingRepo
	Services *repos.ServiceRepo
	Mail     Mailer
}

func NewBookingService(bookings *repos.BookingRepo, services *repos.ServiceRepo, mailer Mailer) *BookingService {
	return &BookingService{Bookings: bookings, Services: services, Mail: mailer}
}

// Create turns a completed draft into a pending booking for the
// authenticated user. The price is recomputed server-side from the
// stored base price; the draft's idea of a price is never trusted.
func (s *BookingService) Create(user *domain.User, d booking.Draft) (domain.Booking, error) {
	svc, err := s.Services.BySlug(d.ServiceSlug)
	if err != nil {
		return domain.Booking{}, errors.New("selected service is no longer available")
	}
	if !strings.EqualFold(d.Details.Email, user.Email) {
		return domain.Booking{}, ErrEmailMismatch
	}

	b := domain.Booking{
		ID:            uuid.NewString(),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		CustomerEmail: d.Details.Email,
		CustomerName:  d.Details.Name,
		CustomerPhone: d.Details.Phone,
		ScheduledDate: d.Date,
		ScheduledTime: d.TimeSlot,
		AddressLine1:  d.Details.AddressLine1,
		AddressLine2:  d.Details.AddressLine2,
		City:          d.Details.City,
		ZipCode:       d.Details.ZipCode,
		PropertySize:  d.Details.PropertySize,
		SpecialNotes:  d.Details.SpecialNotes,
		Status:        domain.StatusPending,
		TotalPrice:    pricing.Quote(svc.BasePrice, d.Details.PropertySize),
	}
	if err := s.Bookings.Create(b); err != nil {
		return domain.Booking{}, err
	}

	// Best-effort confirmation mail; a send failure never unwinds the
	// booking.
	if s.Mail != nil {
		summary := mail.BookingSummary{
			BookingID:   b.ID,
			Customer:    b.CustomerName,
			ServiceName: b.ServiceName,
			Date:        b.ScheduledDate,
			Time:        b.ScheduledTime,
			Address:     b.AddressLine1 + ", " + b.City,
			TotalPrice:  b.TotalPrice,
		}
		if err := s.Mail.SendBookingConfirmation(b.CustomerEmail, summary); err != nil {
			log.Printf("[mail] booking confirmation for %s failed: %v", b.ID, err)
		}
	}
	return b, nil
}

func (s *BookingService) ListByCustomer(email string) ([]domain.Booking, error) {
	return s.Bookings.ListByCustomer(email)
}

// Cancel lets a customer cancel their own booking while its status is
// still modifiable.
func (s *BookingService) Cancel(id, customerEmail string) error {
	b, err := s.Bookings.Get(id)
	if err != nil {
		return ErrNotOwner
	}
	if !strings.EqualFold(b.CustomerEmail, customerEmail) {
		return ErrNotOwner
	}
	if !b.Status.CanModify() {
		return ErrNotModifiable
	}
	return s.Bookings.UpdateStatus(id, domain.StatusCancelled)
}

// UpdateStatus is the staff-side transition; raw input goes through the
// closed status vocabulary.
func (s *BookingService) UpdateStatus(id, raw string) (domain.Status, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return "", err
	}
	return status, s.Bookings.UpdateStatus(id, status)
}
