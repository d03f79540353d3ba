package domain

import "encoding/json"

type Service struct {
	ID           string  `db:"id"`
	Slug         string  `db:"slug"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	LongDesc     string  `db:"long_description"`
	IncludedJSON string  `db:"included_json"` // ordered JSON array of strings
	DurationHrs  int     `db:"duration_hours"`
	BasePrice    float64 `db:"base_price"`
	Icon         string  `db:"icon"`
	Image        string  `db:"image"`
	DisplayOrder int     `db:"display_order"`
	Active       bool    `db:"active"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

// Included decodes the ordered line items bundled with the service.
func (s Service) Included() []string {
	var items []string
	if err := json.Unmarshal([]byte(s.IncludedJSON), &items); err != nil {
		return nil
	}
	return items
}

type Booking struct {
	ID            string  `db:"id"`
	ServiceID     string  `db:"service_id"`
	ServiceName   string  `db:"service_name"`
	CustomerEmail string  `db:"customer_email"`
	CustomerName  string  `db:"customer_name"`
	CustomerPhone string  `db:"customer_phone"`
	ScheduledDate string  `db:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string  `db:"scheduled_time"`
	AddressLine1  string  `db:"address_line1"`
	AddressLine2  string  `db:"address_line2"`
	City          string  `db:"city"`
	ZipCode       string  `db:"zip_code"`
	PropertySize  string  `db:"property_size"`
	SpecialNotes  string  `db:"special_instructions"`
	Status        Status  `db:"status"`
	TotalPrice    float64 `db:"total_price"`
	AdminNotes    string  `db:"admin_notes"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

type ContactMessage struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Subject   string `db:"subject"`
	Message   string `db:"message"`
	Status    string `db:"status"` // new | read | replied
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}
