package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/repositories"
	"tour_sales_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -destination=mocks/mock_auth_service.go -package=mocks tour_sales_backend/internal/services AuthService

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrRoleNotFound       = errors.New("specified role not found")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

const minPasswordLength = 8

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO. GuideID is required for guide accounts and rejected otherwise.
type RegisterUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required"`
	FullName *string `json:"full_name"`
	RoleName string  `json:"role" binding:"required"`
	GuideID  *int64  `json:"guide_id"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error)
	LoginUser(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUserProfile(ctx context.Context, userID int64) (*models.User, error)
}

type authService struct {
	authRepo repositories.AuthRepository
	db       repositories.SQLExecutor
	tokens   *utils.TokenManager
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, db repositories.SQLExecutor, tokens *utils.TokenManager) AuthService {
	return &authService{authRepo: authRepo, db: db, tokens: tokens}
}

// RegisterUser creates an account. Only admins reach this through the API.
func (s *authService) RegisterUser(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	roleName := strings.ToLower(strings.TrimSpace(req.RoleName))
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if !models.IsKnownRole(roleName) {
		return nil, fmt.Errorf("%w: '%s'", ErrRoleNotFound, req.RoleName)
	}
	if roleName == models.RoleGuide && req.GuideID == nil {
		return nil, fmt.Errorf("%w: guide accounts must be linked to a guide", ErrValidation)
	}
	if roleName != models.RoleGuide && req.GuideID != nil {
		return nil, fmt.Errorf("%w: only guide accounts can be linked to a guide", ErrValidation)
	}

	role, err := s.authRepo.FindRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrRoleNotFound, req.RoleName)
		}
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		RoleID:   role.ID,
		RoleName: role.Name,
		GuideID:  req.GuideID,
	}
	userID, err := s.authRepo.CreateUser(ctx, s.db, &user, string(hashed))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey) && strings.Contains(err.Error(), "users_email_key"):
			return nil, ErrEmailExists
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrUsernameExists
		case errors.Is(err, repositories.ErrForeignKey):
			return nil, fmt.Errorf("%w: linked guide does not exist", ErrValidation)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	registered, err := s.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user registered but failed to retrieve full details: %w", err)
	}
	utils.LogInfo("User registered", map[string]interface{}{"user_id": userID, "role": role.Name})
	return registered, nil
}

// LoginUser checks the credentials and issues an access token.
func (s *authService) LoginUser(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, storedHash, err := s.authRepo.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.RoleName, user.GuideID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	return user, nil
}
