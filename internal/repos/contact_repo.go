package repos

import (
	"pristine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Create(m domain.ContactMessage) error {
	_, err := r.db.Exec(`
	  INSERT INTO contact_messages(id, name, email, phone, subject, message, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, 'new', CURRENT_TIMESTAMP)
	`, m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message)
	return err
}

func (r *ContactRepo) ListLatest(limit int) ([]domain.ContactMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.ContactMessage
	err := r.db.Select(&out, `
	  SELECT id, name, email, COALESCE(phone,'') AS phone,
	         COALESCE(subject,'') AS subject, message, status,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM contact_messages
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ContactRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`
	  UPDATE contact_messages SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	return err
}
