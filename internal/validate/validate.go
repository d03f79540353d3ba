package validate

import (
	"regexp"
	"strings"
)

var (
	// US ZIP: 5 digits
	reZIP   = regexp.MustCompile(`^[0-9]{5}$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9+() .-]{7,20}$`)
	reSlug  = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reDate  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Zip(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reZIP.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Line validates a free-form single-line field (address, city, subject).
func Line(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return "", false
	}
	return s, true
}

// Optional trims and caps an optional field; empty is fine.
func Optional(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// Slug validates a service slug.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSlug.MatchString(s)
}

// ID validates a simple resource identifier (bookings, messages).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reID.MatchString(s)
}

// Date validates the YYYY-MM-DD shape only; range checks belong to the
// wizard gate.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDate.MatchString(s)
}

// Password enforces a length window plus character classes for signup.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
