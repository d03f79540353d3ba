package services

import "pristine/internal/mail"

// Mailer is what the services need from the SMTP layer; tests swap in a
// recording stub.
type Mailer interface {
	SendBookingConfirmation(to string, s mail.BookingSummary) error
	SendAccountConfirmation(to, name, token string) error
}
