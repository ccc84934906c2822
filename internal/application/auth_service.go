package application

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/domain/entity"
	"github.com/jortega/storefront/internal/domain/repository"
	"github.com/jortega/storefront/pkg/helpers"
	"github.com/jortega/storefront/pkg/mailer"
)

// AuthService owns registration and credential verification. The
// welcome-email publisher is optional; a nil Pub simply skips the
// enqueue, and a broker failure never fails a signup.
type AuthService struct {
	Users  repository.UserRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Pub: pub, Logger: logger}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Register validates input, rejects duplicate emails, hashes the
// password and persists the record. All validation runs before any
// store access, and every failure path performs zero writes. The
// advisory GetByEmail exists for a precise error message; the unique
// index arbitrates concurrent signups, surfacing as ErrDuplicate from
// Create.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if len(in.Password) < 8 {
		return nil, ErrWeakPassword
	}
	fullName := strings.TrimSpace(in.FullName)
	if n := utf8.RuneCountInString(fullName); n < 3 || n > 128 {
		return nil, &ValidationError{Field: "fullname", Reason: "must be between 3 and 128 characters long"}
	}
	if !validEmail(in.Email) {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid email"}
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Email: in.Email, PasswordHash: hash, FullName: fullName}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

// Authenticate verifies email/password and returns the user. Lookup
// failures and bad passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Profile returns the user behind an authenticated identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	FullName string
}

// UpdateProfile applies the non-empty fields of in to the user record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.FullName != "" {
		fullName := strings.TrimSpace(in.FullName)
		if n := utf8.RuneCountInString(fullName); n < 3 || n > 128 {
			return nil, &ValidationError{Field: "fullname", Reason: "must be between 3 and 128 characters long"}
		}
		u.FullName = fullName
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: u.Email, Template: mailer.TemplateWelcome, Name: u.FullName}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
	}
}

// validEmail checks the shape the store promises callers: a local part,
// an @, and a domain with at least one dot.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
