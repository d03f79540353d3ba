package services_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pristine/internal/repos"
	"pristine/internal/services"
)

func TestContactStatusVocabularyIsClosed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	svc := services.NewContactService(repos.NewContactRepo(db))

	m, err := svc.Submit("Dana", "dana@pristineco.test", "", "Quote question", "How soon can you come?")
	if err != nil {
		t.Fatal(err)
	}
	if m.Status != "new" {
		t.Fatalf("fresh messages start new, got %s", m.Status)
	}

	if err := svc.UpdateStatus(m.ID, "archived"); err == nil {
		t.Fatal("unknown status must be rejected, not coerced")
	}
	got, err := svc.ListLatest(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Status != "new" {
		t.Fatalf("rejected update must not touch the row: %+v", got)
	}

	if err := svc.UpdateStatus(m.ID, "replied"); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.ListLatest(10)
	if got[0].Status != "replied" {
		t.Fatalf("want replied, got %s", got[0].Status)
	}
}
