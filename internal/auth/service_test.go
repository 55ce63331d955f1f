package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskvault/taskvault/internal/shared"
)

type stubRepo struct {
	users         map[string]*User
	byID          map[int64]*User
	created       *User
	createErr     error
	passwordSet   string
	phoneSet      string
	passwordSetID int64
}

func newStubRepo(users ...*User) *stubRepo {
	repo := &stubRepo{users: map[string]*User{}, byID: map[int64]*User{}}
	for _, u := range users {
		repo.users[u.Username] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (s *stubRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, shared.ErrUserNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, shared.ErrUserNotFound
}

func (s *stubRepo) CreateUser(ctx context.Context, user *User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = int64(len(s.users) + 1)
	s.created = user
	return nil
}

func (s *stubRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	s.passwordSetID = userID
	s.passwordSet = passwordHash
	return nil
}

func (s *stubRepo) UpdatePhoneNumber(ctx context.Context, userID int64, phoneNumber string) error {
	s.phoneSet = phoneNumber
	return nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "correct-horse"), Role: RoleUser, IsActive: true})
	service := NewService(repo)

	user, err := service.Authenticate(context.Background(), "alice", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthenticateFailureModesAreIdentical(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "correct-horse"), Role: RoleUser, IsActive: true})
	service := NewService(repo)

	_, wrongPassword := service.Authenticate(context.Background(), "alice", "wrong-password")
	_, missingUser := service.Authenticate(context.Background(), "nobody", "wrong-password")

	if !errors.Is(wrongPassword, shared.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(missingUser, shared.ErrInvalidCredentials) {
		t.Fatalf("missing user: expected ErrInvalidCredentials, got %v", missingUser)
	}
	if wrongPassword.Error() != missingUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPassword, missingUser)
	}
}

func TestAuthenticateInactiveUser(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "correct-horse"), Role: RoleUser, IsActive: false})
	service := NewService(repo)

	if _, err := service.Authenticate(context.Background(), "alice", "correct-horse"); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newStubRepo()
	service := NewService(repo)

	user, err := service.Register(context.Background(), RegisterParams{
		Username:  "newuser",
		Email:     "newuser@example.test",
		FirstName: "New",
		LastName:  "User",
		Password:  "ChangeMe123!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.PasswordHash == "ChangeMe123!" || user.PasswordHash == "" {
		t.Fatalf("password was not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("ChangeMe123!")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = shared.ErrDuplicate
	service := NewService(repo)

	_, err := service.Register(context.Background(), RegisterParams{
		Username:  "taken",
		Email:     "taken@example.test",
		FirstName: "T",
		LastName:  "K",
		Password:  "ChangeMe123!",
	})
	if !errors.Is(err, shared.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "old-password"), Role: RoleUser, IsActive: true})
	service := NewService(repo)

	err := service.ChangePassword(context.Background(), 1, "not-the-old-one", "new-password")
	if !errors.Is(err, shared.ErrAuthInvalid) {
		t.Fatalf("expected ErrAuthInvalid, got %v", err)
	}
	if repo.passwordSet != "" {
		t.Fatalf("password must not be updated on failed verification")
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "old-password"), Role: RoleUser, IsActive: true})
	service := NewService(repo)

	if err := service.ChangePassword(context.Background(), 1, "old-password", "new-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if repo.passwordSetID != 1 || repo.passwordSet == "" {
		t.Fatalf("expected password update for user 1")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.passwordSet), []byte("new-password")); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestChangePhoneNumber(t *testing.T) {
	repo := newStubRepo(&User{ID: 1, Username: "alice", PasswordHash: hashFor(t, "correct-horse"), Role: RoleUser, IsActive: true})
	service := NewService(repo)

	if err := service.ChangePhoneNumber(context.Background(), 1, "wrong", "555-0100"); !errors.Is(err, shared.ErrAuthInvalid) {
		t.Fatalf("expected ErrAuthInvalid, got %v", err)
	}
	if err := service.ChangePhoneNumber(context.Background(), 1, "correct-horse", "555-0100"); err != nil {
		t.Fatalf("change phone: %v", err)
	}
	if repo.phoneSet != "555-0100" {
		t.Fatalf("expected phone update, got %q", repo.phoneSet)
	}
}
