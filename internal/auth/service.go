package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/shared"
)

// dummyHash is a valid bcrypt hash compared against when the username does
// not exist, so the missing-user and wrong-password paths do comparable work.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service wraps authentication and account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials. A missing user, an
// inactive account and a wrong password all collapse to
// shared.ErrInvalidCredentials so the caller learns nothing about which
// usernames exist.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// RegisterParams carries the fields accepted at account creation.
type RegisterParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	PhoneNumber string
}

// Register creates a new active account with the default user role.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		Username:     params.Username,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: string(hash),
		Role:         RoleUser,
		IsActive:     true,
		PhoneNumber:  params.PhoneNumber,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the account backing the given user id.
func (s *Service) Profile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ChangePassword verifies the old password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrAuthInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return shared.ErrAuthInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// ChangePhoneNumber verifies the account password before storing a new
// phone number.
func (s *Service) ChangePhoneNumber(ctx context.Context, userID int64, password, phoneNumber string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return shared.ErrAuthInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return shared.ErrAuthInvalid
	}
	return s.repo.UpdatePhoneNumber(ctx, userID, phoneNumber)
}
