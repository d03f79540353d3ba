package repos

import (
	"pristine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ServiceRepo struct{ db *sqlx.DB }

func NewServiceRepo(db *sqlx.DB) *ServiceRepo { return &ServiceRepo{db: db} }

const serviceCols = `
  id, slug, name, COALESCE(description,'') AS description,
  COALESCE(long_description,'') AS long_description,
  COALESCE(included_json,'[]') AS included_json,
  duration_hours, base_price, COALESCE(icon,'') AS icon,
  COALESCE(image,'') AS image, display_order, active,
  created_at, COALESCE(updated_at,'') AS updated_at`

// ListActive returns the bookable offerings in display order.
func (r *ServiceRepo) ListActive() ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE active = 1
	  ORDER BY display_order, name
	`)
	return out, err
}

// ListAll includes deactivated services (admin view).
func (r *ServiceRepo) ListAll() ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.Select(&out, `
	  SELECT `+serviceCols+`
	  FROM services
	  ORDER BY display_order, name
	`)
	return out, err
}

func (r *ServiceRepo) BySlug(slug string) (domain.Service, error) {
	var s domain.Service
	err := r.db.Get(&s, `
	  SELECT `+serviceCols+`
	  FROM services
	  WHERE slug = ? AND active = 1
	`, slug)
	return s, err
}

func (r *ServiceRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`
	  UPDATE services SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, active, id)
	return err
}
