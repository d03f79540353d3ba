package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pristine/internal/repos"
	"pristine/internal/services"
)

func TestRegisterConfirmLogin(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	mailer := &stubMailer{}
	auth := &services.AuthService{Users: repos.NewUserRepo(db), Mail: mailer}

	u, err := auth.Register("new@pristineco.test", "Newcomer", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if u.EmailConfirmed {
		t.Fatal("fresh accounts start unconfirmed")
	}
	if len(mailer.accounts) != 1 {
		t.Fatalf("confirmation mail not sent: %+v", mailer.accounts)
	}

	// unconfirmed login is the business error, not bad credentials
	if _, err := auth.Login("sid-1", "new@pristineco.test", "Sup3rSecret"); !errors.Is(err, services.ErrEmailNotConfirmed) {
		t.Fatalf("want ErrEmailNotConfirmed, got %v", err)
	}

	confirmed, err := auth.Confirm(u.ConfirmToken)
	if err != nil {
		t.Fatal(err)
	}
	if !confirmed.EmailConfirmed {
		t.Fatal("token confirm did not stick")
	}

	logged, err := auth.Login("sid-1", "new@pristineco.test", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	cur, err := auth.CurrentUser("sid-1")
	if err != nil || cur.ID != logged.ID {
		t.Fatalf("session not bound: %v %+v", err, cur)
	}

	if err := auth.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("session should be unbound after logout")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	auth := &services.AuthService{Users: repos.NewUserRepo(db), Mail: &stubMailer{}}

	// dana is seeded
	if _, err := auth.Register("dana@pristineco.test", "Dana Again", "Sup3rSecret"); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestResendConfirmationRotatesToken(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	users := repos.NewUserRepo(db)
	mailer := &stubMailer{}
	auth := &services.AuthService{Users: users, Mail: mailer}

	u, err := auth.Register("new@pristineco.test", "Newcomer", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	first := u.ConfirmToken

	if err := auth.ResendConfirmation("new@pristineco.test"); err != nil {
		t.Fatal(err)
	}
	fresh, err := users.ByEmail("new@pristineco.test")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ConfirmToken == "" || fresh.ConfirmToken == first {
		t.Fatal("resend should rotate the token")
	}
	if len(mailer.accounts) != 2 {
		t.Fatalf("want two confirmation mails, got %d", len(mailer.accounts))
	}

	// unknown and already-confirmed addresses are silent no-ops
	if err := auth.ResendConfirmation("ghost@pristineco.test"); err != nil {
		t.Fatal(err)
	}
	if err := auth.ResendConfirmation("dana@pristineco.test"); err != nil {
		t.Fatal(err)
	}
	if len(mailer.accounts) != 2 {
		t.Fatal("no-op resends must not send mail")
	}
}
