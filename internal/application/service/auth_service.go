package service

import (
	"context"
	"fmt"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/auth"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/pkg/utils"
)

// TokenPair is the result of a successful login or refresh
type TokenPair struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// RegisterUserInput carries a new account
type RegisterUserInput struct {
	LoginID  string
	Password string
	Name     string
	Email    string
	Team     string
	Position string
	Role     string
}

// AuthService handles accounts, login and token rotation
type AuthService interface {
	Register(ctx context.Context, input RegisterUserInput) (*entity.User, error)
	Login(ctx context.Context, loginID, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	ListUsers(ctx context.Context, team string, limit, offset int) ([]*entity.User, error)
}

type authServiceImpl struct {
	userRepo port.UserRepository
	tokens   *auth.TokenManager
	logger   Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo port.UserRepository, tokens *auth.TokenManager, logger Logger) AuthService {
	return &authServiceImpl{userRepo: userRepo, tokens: tokens, logger: logger}
}

// Register creates a new account with a bcrypt password hash
func (s *authServiceImpl) Register(ctx context.Context, input RegisterUserInput) (*entity.User, error) {
	if input.LoginID == "" || input.Password == "" || input.Name == "" {
		return nil, fmt.Errorf("%w: login_id, password and name are required", ErrValidation)
	}
	if input.Email != "" {
		if err := utils.ValidateEmail(input.Email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	existing, err := s.userRepo.GetByLoginID(ctx, input.LoginID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: login_id already taken", ErrValidation)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}

	user := &entity.User{
		LoginID:      input.LoginID,
		Name:         input.Name,
		Email:        input.Email,
		Team:         input.Team,
		Position:     input.Position,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to register user", "error", err, "login_id", input.LoginID)
		return nil, err
	}

	s.logger.Info("User registered", "id", user.ID, "login_id", user.LoginID)
	return user, nil
}

// Login checks credentials and issues a fresh token pair. The refresh
// token is stored hashed so a stolen database cannot replay it.
func (s *authServiceImpl) Login(ctx context.Context, loginID, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Info("Login rejected", "login_id", loginID)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "id", user.ID, "login_id", user.LoginID)
	return pair, nil
}

// Refresh rotates the token pair. The presented refresh token must match
// the stored hash; rotation invalidates the old token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshHash == "" {
		return nil, ErrInvalidCredentials
	}
	if auth.HashToken(refreshToken) != user.RefreshHash {
		s.logger.Info("Refresh token mismatch", "user_id", claims.UserID)
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

// Logout drops the stored refresh hash so the current refresh token dies
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetRefreshHash(ctx, userID, ""); err != nil {
		s.logger.Error("Failed to log out user", "error", err, "user_id", userID)
		return err
	}
	s.logger.Info("User logged out", "user_id", userID)
	return nil
}

// GetUser retrieves a single account
func (s *authServiceImpl) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ListUsers lists accounts, optionally filtered by team
func (s *authServiceImpl) ListUsers(ctx context.Context, team string, limit, offset int) ([]*entity.User, error) {
	return s.userRepo.List(ctx, team, limit, offset)
}

func (s *authServiceImpl) issuePair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, _, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshHash(ctx, user.ID, auth.HashToken(refresh)); err != nil {
		return nil, fmt.Errorf("store refresh hash: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
