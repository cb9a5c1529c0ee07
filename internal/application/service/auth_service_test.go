package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garamsoft/groupware/internal/auth"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

type mockUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*entity.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	for _, u := range m.users {
		if u.LoginID == loginID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context, team string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if team == "" || u.Team == team {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) SetRefreshHash(ctx context.Context, id int64, hash string) error {
	if u, exists := m.users[id]; exists {
		u.RefreshHash = hash
	}
	return nil
}

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(auth.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

func registerTestUser(t *testing.T, svc AuthService) *entity.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterUserInput{
		LoginID:  "jkim",
		Password: "secret123",
		Name:     "J Kim",
		Team:     "dev",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestRegisterDefaultsRole(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokenManager(), noopLogger{})
	user := registerTestUser(t, svc)

	if user.Role != entity.RoleUser {
		t.Errorf("expected default role USER, got %s", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Errorf("expected hashed password")
	}
}

func TestRegisterDuplicateLoginID(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokenManager(), noopLogger{})
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), RegisterUserInput{
		LoginID: "jkim", Password: "other", Name: "Other",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokenManager(), noopLogger{})
	user := registerTestUser(t, svc)

	pair, err := svc.Login(context.Background(), "jkim", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Errorf("expected both tokens to be issued")
	}
	if repo.users[user.ID].RefreshHash != auth.HashToken(pair.RefreshToken) {
		t.Errorf("expected stored refresh hash to match issued token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokenManager(), noopLogger{})
	registerTestUser(t, svc)

	if _, err := svc.Login(context.Background(), "jkim", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, testTokenManager(), noopLogger{})
	registerTestUser(t, svc)

	pair, err := svc.Login(context.Background(), "jkim", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Errorf("expected rotated token pair")
	}

	// The old refresh token no longer matches the stored hash
	if repo.users[rotated.User.ID].RefreshHash == auth.HashToken(pair.RefreshToken) &&
		pair.RefreshToken != rotated.RefreshToken {
		t.Errorf("expected stored hash to move to the rotated token")
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokenManager(), noopLogger{})
	user := registerTestUser(t, svc)

	pair, err := svc.Login(context.Background(), "jkim", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials after logout, got %v", err)
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testTokenManager(), noopLogger{})

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
