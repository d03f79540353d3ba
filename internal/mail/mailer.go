// Package mail sends transactional email over SMTP. Delivery is
// best-effort throughout the app: a failed send is logged by the caller
// and never rolls back the action that triggered it.
package mail

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"pristine/internal/config"
)

type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	replyTo string
	baseURL string
}

// New returns a Mailer, or a disabled one (nil dialer) when no SMTP host
// is configured. Disabled sends are silent no-ops so local development
// works without a mail account.
func New(cfg config.Config) *Mailer {
	m := &Mailer{from: cfg.MailFrom, replyTo: cfg.MailReplyTo, baseURL: cfg.BaseURL}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return m
}

func (m *Mailer) Enabled() bool { return m != nil && m.dialer != nil }

type BookingSummary struct {
	BookingID   string
	Customer    string
	ServiceName string
	Date        string
	Time        string
	Address     string
	TotalPrice  float64
}

// SendBookingConfirmation emails the customer once their booking is
// created.
func (m *Mailer) SendBookingConfirmation(to string, s BookingSummary) error {
	if !m.Enabled() {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", s.Customer)
	body.WriteString("Thank you for choosing Pristine & Co. Your booking has been received!\n\n")
	body.WriteString("Booking Details:\n")
	fmt.Fprintf(&body, "  Service: %s\n", s.ServiceName)
	fmt.Fprintf(&body, "  Date: %s\n", s.Date)
	fmt.Fprintf(&body, "  Time: %s\n", s.Time)
	fmt.Fprintf(&body, "  Address: %s\n", s.Address)
	fmt.Fprintf(&body, "  Total: $%.0f\n", s.TotalPrice)
	fmt.Fprintf(&body, "  Booking ID: %s\n\n", s.BookingID)
	body.WriteString("Our team will arrive at the scheduled time. If you need to make any changes, reply to this email or call 1-800-PRISTINE.\n\n")
	body.WriteString("Best regards,\nThe Pristine & Co. Team\n")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", m.replyTo)
	msg.SetHeader("Subject", "Booking Received - "+s.ServiceName)
	msg.SetBody("text/plain", body.String())

	return m.dialer.DialAndSend(msg)
}

// SendAccountConfirmation emails a new account's confirmation link.
func (m *Mailer) SendAccountConfirmation(to, name, token string) error {
	if !m.Enabled() {
		return nil
	}

	link := m.baseURL + "/confirm?token=" + token

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", name)
	body.WriteString("Welcome to Pristine & Co. Please confirm your email address to activate your account:\n\n")
	fmt.Fprintf(&body, "  %s\n\n", link)
	body.WriteString("If you did not create this account, you can ignore this message.\n")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Reply-To", m.replyTo)
	msg.SetHeader("Subject", "Confirm your Pristine & Co. account")
	msg.SetBody("text/plain", body.String())

	return m.dialer.DialAndSend(msg)
}
