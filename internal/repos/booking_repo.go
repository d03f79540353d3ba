package repos

import (
	"pristine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `
  id, service_id, service_name, customer_email, customer_name,
  COALESCE(customer_phone,'') AS customer_phone,
  scheduled_date, scheduled_time, address_line1,
  COALESCE(address_line2,'') AS address_line2, city, zip_code,
  property_size, COALESCE(special_instructions,'') AS special_instructions,
  status, COALESCE(total_price,0) AS total_price,
  COALESCE(admin_notes,'') AS admin_notes,
  created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts a new booking row. The caller fills ID and Status.
func (r *BookingRepo) Create(b domain.Booking) error {
	_, err := r.db.Exec(`
	  INSERT INTO bookings
	    (id, service_id, service_name, customer_email, customer_name, customer_phone,
	     scheduled_date, scheduled_time, address_line1, address_line2, city, zip_code,
	     property_size, special_instructions, status, total_price, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, b.ID, b.ServiceID, b.ServiceName, b.CustomerEmail, b.CustomerName, b.CustomerPhone,
		b.ScheduledDate, b.ScheduledTime, b.AddressLine1, b.AddressLine2, b.City, b.ZipCode,
		b.PropertySize, b.SpecialNotes, string(b.Status), b.TotalPrice)
	return err
}

func (r *BookingRepo) Get(id string) (domain.Booking, error) {
	var b domain.Booking
	err := r.db.Get(&b, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id)
	return b, err
}

// ListByCustomer returns a customer's bookings, next visit first.
func (r *BookingRepo) ListByCustomer(email string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.Select(&out, `
	  SELECT `+bookingCols+`
	  FROM bookings
	  WHERE LOWER(customer_email) = LOWER(?)
	  ORDER BY scheduled_date DESC, scheduled_time
	`, email)
	return out, err
}

// ListLatest feeds the admin table.
func (r *BookingRepo) ListLatest(limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Booking
	err := r.db.Select(&out, `
	  SELECT `+bookingCols+`
	  FROM bookings
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *BookingRepo) UpdateStatus(id string, status domain.Status) error {
	_, err := r.db.Exec(`
	  UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(status), id)
	return err
}

// StatusCounts powers the admin dashboard stats.
func (r *BookingRepo) StatusCounts() (map[domain.Status]int, error) {
	rows := []struct {
		Status domain.Status `db:"status"`
		N      int           `db:"n"`
	}{}
	if err := r.db.Select(&rows, `SELECT status, COUNT(*) AS n FROM bookings GROUP BY status`); err != nil {
		return nil, err
	}
	out := make(map[domain.Status]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
