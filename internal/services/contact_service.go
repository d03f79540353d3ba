package services

import (
	"fmt"

	"github.com/google/uuid"

	"pristine/internal/domain"
	"pristine/internal/repos"
)

type ContactService struct {
	Messages *repos.ContactRepo
}

func NewContactService(messages *repos.ContactRepo) *ContactService {
	return &ContactService{Messages: messages}
}

func (s *ContactService) Submit(name, email, phone, subject, message string) (domain.ContactMessage, error) {
	m := domain.ContactMessage{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
		Status:  "new",
	}
	return m, s.Messages.Create(m)
}

func (s *ContactService) ListLatest(limit int) ([]domain.ContactMessage, error) {
	return s.Messages.ListLatest(limit)
}

// UpdateStatus moves a message through the closed new/read/replied
// vocabulary; anything else is rejected.
func (s *ContactService) UpdateStatus(id, status string) error {
	switch status {
	case "new", "read", "replied":
	default:
		return fmt.Errorf("unknown message status %q", status)
	}
	return s.Messages.UpdateStatus(id, status)
}
