package services

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"pristine/internal/domain"
	"pristine/internal/repos"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	// ErrEmailNotConfirmed maps to the resend-confirmation recovery
	// action in the login form.
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	ErrEmailTaken        = errors.New("an account with this email already exists")
)

type AuthService struct {
	Users *repos.UserRepo
	Mail  Mailer
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if !u.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Register creates an unconfirmed account and emails its confirmation
// link. The account cannot log in until the link is followed.
func (s *AuthService) Register(email, name, password string) (*domain.User, error) {
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Hash:         string(hash),
		Role:         "USER",
		ConfirmToken: uuid.NewString(),
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if s.Mail != nil {
		if err := s.Mail.SendAccountConfirmation(u.Email, u.Name, u.ConfirmToken); err != nil {
			log.Printf("[mail] account confirmation to %s failed: %v", u.Email, err)
		}
	}
	return &u, nil
}

func (s *AuthService) Confirm(token string) (*domain.User, error) {
	return s.Users.ConfirmByToken(token)
}

// ResendConfirmation issues a fresh token and re-sends the link. It is a
// no-op for confirmed or unknown accounts so the endpoint leaks nothing.
func (s *AuthService) ResendConfirmation(email string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil || u.EmailConfirmed {
		return nil
	}
	token := uuid.NewString()
	if err := s.Users.SetConfirmToken(u.ID, token); err != nil {
		return err
	}
	if s.Mail != nil {
		if err := s.Mail.SendAccountConfirmation(u.Email, u.Name, token); err != nil {
			log.Printf("[mail] account confirmation to %s failed: %v", u.Email, err)
		}
	}
	return nil
}
