package handlers

import (
	"pristine/internal/booking"
	"pristine/internal/repos"
	"pristine/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler      *PageHandler
	BookingHandler   *BookingHandler
	DashboardHandler *DashboardHandler
	QuoteHandler     *QuoteHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, mailer services.Mailer) *Deps {
	serviceRepo := repos.NewServiceRepo(db)
	bookingRepo := repos.NewBookingRepo(db)
	contactRepo := repos.NewContactRepo(db)

	catalogSvc := services.NewCatalogService(serviceRepo)
	bookingSvc := services.NewBookingService(bookingRepo, serviceRepo, mailer)
	contactSvc := services.NewContactService(contactRepo)

	drafts := booking.NewStore()

	return &Deps{
		PageHandler:      &PageHandler{Catalog: catalogSvc, Contact: contactSvc},
		BookingHandler:   &BookingHandler{Catalog: catalogSvc, Booking: bookingSvc, Drafts: drafts},
		DashboardHandler: &DashboardHandler{Booking: bookingSvc},
		QuoteHandler:     &QuoteHandler{Catalog: catalogSvc},
		AdminHandler:     &AdminHandler{Bookings: bookingRepo, Catalog: catalogSvc, Contact: contactSvc, Booking: bookingSvc},
	}
}
