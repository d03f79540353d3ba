package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the service catalog if empty (first boot)
	if err := seedServices(db); err != nil {
		return nil, err
	}
	// Ensure baseline accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Service catalog (reference data; read-only to the booking flow)
CREATE TABLE IF NOT EXISTS services(
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  long_description TEXT,
  included_json TEXT,
  duration_hours INTEGER NOT NULL DEFAULT 0,
  base_price NUMERIC NOT NULL CHECK (base_price >= 0),
  icon TEXT,
  image TEXT,
  display_order INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_services_active ON services(active, display_order);

-- Bookings
CREATE TABLE IF NOT EXISTS bookings(
  id TEXT PRIMARY KEY,
  service_id TEXT NOT NULL REFERENCES services(id) ON DELETE RESTRICT,
  service_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT,
  scheduled_date TEXT NOT NULL,
  scheduled_time TEXT NOT NULL,
  address_line1 TEXT NOT NULL,
  address_line2 TEXT,
  city TEXT NOT NULL,
  zip_code TEXT NOT NULL,
  property_size TEXT NOT NULL,
  special_instructions TEXT,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','confirmed','in_progress','completed','cancelled')),
  total_price NUMERIC,
  admin_notes TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_bookings_email   ON bookings(LOWER(customer_email));
CREATE INDEX IF NOT EXISTS idx_bookings_date    ON bookings(scheduled_date);
CREATE INDEX IF NOT EXISTS idx_bookings_created ON bookings(created_at);

-- Contact messages
CREATE TABLE IF NOT EXISTS contact_messages(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  subject TEXT,
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new','read','replied')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_created ON contact_messages(created_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  email_confirmed INTEGER NOT NULL DEFAULT 0,
  confirm_token TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedServices(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM services`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting default service catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO services
	  (id, slug, name, description, long_description, included_json, duration_hours, base_price, icon, image, display_order) VALUES
	  ('residential', 'residential-cleaning', 'Residential Cleaning',
	   'Comprehensive home cleaning tailored to your lifestyle and schedule.',
	   'Our residential cleaning service transforms your home into a sanctuary. Using premium, eco-friendly products, our trained professionals meticulously clean every room. Whether you need weekly maintenance or occasional deep cleaning, we adapt to your needs.',
	   '["All rooms dusted and vacuumed","Kitchen surfaces sanitized","Bathrooms deep cleaned","Floors mopped and polished","Beds made with fresh linens","Trash emptied and liners replaced","Mirrors and glass cleaned","Light switches and handles sanitized"]',
	   3, 149, 'Home', 'https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800&q=80', 1),
	  ('office', 'office-cleaning', 'Office Cleaning',
	   'Professional commercial cleaning that reflects your business standards.',
	   'First impressions matter in business. Our office cleaning service ensures your workspace projects professionalism and attention to detail. We work around your schedule to minimize disruption while maximizing cleanliness.',
	   '["Workspace and desk cleaning","Common area maintenance","Kitchen/break room sanitation","Restroom deep cleaning","Floor care (carpet/hard surfaces)","Trash and recycling management","Glass and window cleaning","High-touch surface disinfection"]',
	   4, 299, 'Building2', 'https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&q=80', 2),
	  ('deep', 'deep-cleaning', 'Deep Cleaning',
	   'Intensive cleaning that reaches every corner of your space.',
	   'Our deep cleaning service goes beyond the surface. We tackle the areas that do not get attention during routine cleaning: inside cabinets, behind appliances, under furniture, and more. Perfect for spring cleaning or pre-event preparation.',
	   '["Inside oven and refrigerator","Cabinet interiors wiped","Baseboards and crown molding","Window tracks and blinds","Light fixtures and ceiling fans","Behind and under furniture","Grout and tile deep clean","Wall spot cleaning"]',
	   6, 349, 'Sparkles', 'https://images.unsplash.com/photo-1584820927498-cfe5211fd8bf?w=800&q=80', 3),
	  ('movein', 'move-in-out-cleaning', 'Move-In/Out Cleaning',
	   'Complete cleaning for seamless real estate transitions.',
	   'Moving is stressful enough without worrying about cleaning. Our move-in/out service ensures you leave your old place spotless for the next occupant and arrive at your new home ready to settle in.',
	   '["Complete interior cleaning","All appliances inside and out","Cabinet and closet cleaning","Light fixtures and ceiling fans","Window cleaning (interior)","Garage sweeping and spot cleaning","Final inspection walkthrough","Touch-up as needed"]',
	   8, 449, 'Truck', 'https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&q=80', 4)`)

	return tx.Commit()
}

// seedUsers ensures a demo customer and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-dana", "dana@pristineco.test", "Dana", "USER", "Passw0rd!"),
		mk("u-admin", "admin@pristineco.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role,email_confirmed)
			VALUES(?,?,?,?,?,1)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
