package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/swachhjanta/backend/internal/config"
	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

// AuthService is the authentication boundary. It issues the caller identity
// (id, email, user_type) that the rest of the system trusts.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

// Register creates a citizen account. Authority accounts are provisioned
// through the employee upsert, never by self-registration.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: email required and password must be at least 8 characters", ErrValidation)
	}

	if _, err := s.store.GetUserByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := req.Email
	user, err := s.store.UpsertUser(&models.User{
		ID:        uuid.New(),
		Email:     &email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  models.UserTypeCitizen,
	})
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.store.GetActiveRefreshToken(tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if err := s.store.RevokeRefreshToken(tokenHash); err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.store.GetUser(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	return s.store.RevokeRefreshToken(hashToken(req.RefreshToken))
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

// GenerateAccessToken signs a short-lived HS256 token carrying the caller
// identity claims.
func (s *AuthService) GenerateAccessToken(user *models.User) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"email":     email,
		"user_type": string(user.UserType),
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.store.CreateRefreshToken(record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
