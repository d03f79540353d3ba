package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pristine/internal/booking"
	"pristine/internal/domain"
	"pristine/internal/mail"
	"pristine/internal/repos"
	"pristine/internal/services"
)

type stubMailer struct {
	bookings []mail.BookingSummary
	accounts []string
	fail     error
}

func (m *stubMailer) SendBookingConfirmation(to string, s mail.BookingSummary) error {
	m.bookings = append(m.bookings, s)
	return m.fail
}

func (m *stubMailer) SendAccountConfirmation(to, name, token string) error {
	m.accounts = append(m.accounts, to)
	return m.fail
}

func completedDraft() booking.Draft {
	return booking.Draft{
		ServiceSlug: "residential-cleaning",
		Date:        "2031-05-20",
		TimeSlot:    "10:00 AM",
		Details: booking.Details{
			Name:         "Dana",
			Email:        "dana@pristineco.test",
			Phone:        "555-0142",
			AddressLine1: "12 Elm St",
			City:         "Baltimore",
			ZipCode:      "21201",
			PropertySize: "2bed",
		},
	}
}

func TestBookingCreateFlow(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	mailer := &stubMailer{}
	svc := services.NewBookingService(repos.NewBookingRepo(db), repos.NewServiceRepo(db), mailer)
	user := &domain.User{ID: "u-dana", Email: "dana@pristineco.test", Name: "Dana"}

	b, err := svc.Create(user, completedDraft())
	if err != nil {
		t.Fatal(err)
	}
	if b.ID == "" {
		t.Fatal("no booking id")
	}
	if b.Status != domain.StatusPending {
		t.Fatalf("wizard must produce pending, got %s", b.Status)
	}
	// 149 * 1.4 = 208.6 rounds to 209
	if b.TotalPrice != 209 {
		t.Fatalf("want total 209, got %v", b.TotalPrice)
	}
	if len(mailer.bookings) != 1 || mailer.bookings[0].BookingID != b.ID {
		t.Fatalf("confirmation email not sent: %+v", mailer.bookings)
	}

	got, err := svc.ListByCustomer("dana@pristineco.test")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("dashboard list wrong: %+v", got)
	}
}

func TestBookingCreateRejectsForeignEmail(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := services.NewBookingService(repos.NewBookingRepo(db), repos.NewServiceRepo(db), &stubMailer{})
	user := &domain.User{ID: "u-x", Email: "someone-else@pristineco.test"}

	_, err = svc.Create(user, completedDraft())
	if !errors.Is(err, services.ErrEmailMismatch) {
		t.Fatalf("want ErrEmailMismatch, got %v", err)
	}
	rows, _ := svc.ListByCustomer("dana@pristineco.test")
	if len(rows) != 0 {
		t.Fatalf("rejected draft must not persist, got %d rows", len(rows))
	}
}

func TestBookingCreateSurvivesMailFailure(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	mailer := &stubMailer{fail: errors.New("smtp down")}
	svc := services.NewBookingService(repos.NewBookingRepo(db), repos.NewServiceRepo(db), mailer)
	user := &domain.User{ID: "u-dana", Email: "dana@pristineco.test"}

	b, err := svc.Create(user, completedDraft())
	if err != nil {
		t.Fatalf("mail failure must not fail the booking: %v", err)
	}
	if got, err := svc.Bookings.Get(b.ID); err != nil || got.Status != domain.StatusPending {
		t.Fatalf("booking not persisted: %v %+v", err, got)
	}
}

func TestCancelRespectsOwnershipAndStatus(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := services.NewBookingService(repos.NewBookingRepo(db), repos.NewServiceRepo(db), &stubMailer{})
	user := &domain.User{ID: "u-dana", Email: "dana@pristineco.test"}

	b, err := svc.Create(user, completedDraft())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Cancel(b.ID, "mallory@pristineco.test"); !errors.Is(err, services.ErrNotOwner) {
		t.Fatalf("foreign cancel should look like not-found, got %v", err)
	}

	if err := svc.Cancel(b.ID, "DANA@pristineco.test"); err != nil {
		t.Fatalf("owner cancel of a pending booking: %v", err)
	}
	got, _ := svc.Bookings.Get(b.ID)
	if got.Status != domain.StatusCancelled {
		t.Fatalf("want cancelled, got %s", got.Status)
	}

	// cancelled is no longer modifiable
	if err := svc.Cancel(b.ID, "dana@pristineco.test"); !errors.Is(err, services.ErrNotModifiable) {
		t.Fatalf("want ErrNotModifiable, got %v", err)
	}
}

func TestUpdateStatusUsesClosedVocabulary(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := services.NewBookingService(repos.NewBookingRepo(db), repos.NewServiceRepo(db), &stubMailer{})
	user := &domain.User{ID: "u-dana", Email: "dana@pristineco.test"}
	b, err := svc.Create(user, completedDraft())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(b.ID, "shipped"); err == nil {
		t.Fatal("unknown status must be rejected")
	}
	status, err := svc.UpdateStatus(b.ID, "confirmed")
	if err != nil {
		t.Fatal(err)
	}
	if status != domain.StatusConfirmed {
		t.Fatalf("want confirmed, got %s", status)
	}
}
