package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/domain"
	"eventhire/internal/pkg/jwt"
	"eventhire/internal/pkg/password"
	"eventhire/internal/pkg/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email already registered")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenRevoked      = errors.New("token revoked")
	ErrUserInactive      = errors.New("user account is inactive")
)

// AuthService handles authentication business logic
type AuthService struct {
	store  repositories.Store
	cfg    config.JWTConfig
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store repositories.Store, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:  store,
		cfg:    cfg,
		logger: orNop(logger),
	}
}

// RegisterSeekerInput represents seeker registration input
type RegisterSeekerInput struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Phone    string `json:"phone" validate:"max=30"`
	City     string `json:"city" validate:"max=100"`
}

// RegisterCompanyInput represents company registration input
type RegisterCompanyInput struct {
	Email       string `json:"email" validate:"required,email,max=150"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required,max=150"`
	Phone       string `json:"phone" validate:"max=30"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// RegisterSeeker creates a seeker account and profile
func (s *AuthService) RegisterSeeker(ctx context.Context, input *RegisterSeekerInput) (*AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	email := input.Email

	user, err := s.register(ctx, email, input.Password, domain.RoleSeeker, func(tx repositories.Store, user *models.User) error {
		profile := &models.SeekerProfile{
			UserID:   user.ID,
			FullName: strings.TrimSpace(input.FullName),
			Phone:    input.Phone,
			Email:    email,
			City:     input.City,
		}
		return tx.Seekers().Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

// RegisterCompany creates a company account and profile
func (s *AuthService) RegisterCompany(ctx context.Context, input *RegisterCompanyInput) (*AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	email := input.Email

	user, err := s.register(ctx, email, input.Password, domain.RoleCompany, func(tx repositories.Store, user *models.User) error {
		profile := &models.CompanyProfile{
			UserID:      user.ID,
			CompanyName: strings.TrimSpace(input.CompanyName),
			Email:       email,
			Phone:       input.Phone,
		}
		return tx.Companies().Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

// register creates the user and its profile in one transaction
func (s *AuthService) register(
	ctx context.Context,
	email, plain string,
	role domain.Role,
	createProfile func(tx repositories.Store, user *models.User) error,
) (*models.User, error) {
	exists, err := s.store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     string(role),
		IsActive: true,
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := createProfile(tx, user); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return user, nil
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return s.issue(ctx, user)
}

// RefreshToken rotates the refresh token and issues a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	storedToken, err := s.store.RefreshTokens().GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrTokenRevoked
		}
		return nil, err
	}
	if storedToken.IsExpired(time.Now().UTC()) {
		return nil, ErrTokenExpired
	}

	user, err := s.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Token rotation
	if err := s.store.RefreshTokens().Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.store.RefreshTokens().RevokeByTokenHash(ctx, password.HashToken(refreshToken))
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.store.RefreshTokens().RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("all sessions revoked", zap.String("user_id", userID))
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.Secret)
}

// Me returns the caller's account with profile details
func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*models.UserResponse, error) {
	user, err := s.store.Users().GetByID(ctx, actor.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := user.ToResponse()
	resp.ProfileID, resp.Name, err = s.profileOf(ctx, user)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// issue generates and stores a token pair for the user
func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResponse, error) {
	profileID, name, err := s.profileOf(ctx, user)
	if err != nil {
		return nil, err
	}

	tokens, err := s.generateTokens(user, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	userResponse := user.ToResponse()
	userResponse.ProfileID = profileID
	userResponse.Name = name

	return &AuthResponse{
		User:         userResponse,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// profileOf returns the seeker or company profile id and display name.
// Admins have no profile.
func (s *AuthService) profileOf(ctx context.Context, user *models.User) (string, string, error) {
	switch domain.Role(user.Role) {
	case domain.RoleSeeker:
		p, err := s.store.Seekers().GetByUserID(ctx, user.ID)
		if err != nil {
			return "", "", fmt.Errorf("get seeker profile: %w", err)
		}
		return p.ID, p.FullName, nil
	case domain.RoleCompany:
		p, err := s.store.Companies().GetByUserID(ctx, user.ID)
		if err != nil {
			return "", "", fmt.Errorf("get company profile: %w", err)
		}
		return p.ID, p.CompanyName, nil
	}
	return "", "", nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User, profileID string) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Role,
		profileID,
		s.cfg.Secret,
		s.cfg.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		uuid.NewString(),
		s.cfg.RefreshSecret,
		s.cfg.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token hash in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.RefreshTokenDays),
	}
	return s.store.RefreshTokens().Create(ctx, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
