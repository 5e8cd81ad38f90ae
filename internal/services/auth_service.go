package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jerseystore/internal/domain"
	"jerseystore/internal/repos"
	"jerseystore/internal/validate"
)

var (
	ErrBadCreds     = errors.New("invalid email or password")
	ErrWeakPassword = errors.New("admin password does not meet policy")
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}

// EnsureAdmin creates or refreshes the admin account from configuration.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email, ok := validate.Email(email)
	if !ok {
		return ErrBadCreds
	}
	if !validate.Password(password) {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.Upsert(ctx, domain.User{
		ID:    uuid.NewString(),
		Email: strings.ToLower(email),
		Name:  "Store Admin",
		Hash:  string(hash),
		Role:  domain.RoleAdmin,
	})
}
