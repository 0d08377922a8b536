package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/dto"
	"github.com/leadboxhq/leadbox-backend/internal/forms"
	"github.com/leadboxhq/leadbox-backend/internal/mailer"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

const resetKeyPrefix = "pwreset:"

// ResetTokenStore holds password reset tokens with a TTL. The Redis
// cache client satisfies it.
type ResetTokenStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type AuthService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	resets ResetTokenStore
	mail   mailer.Mailer
	cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, resets ResetTokenStore, mail mailer.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, resets: resets, mail: mail, cfg: cfg}
}

// Signup creates the account and its business profile in one
// transaction, then logs the new account in by issuing a token pair.
func (s *AuthService) Signup(req *dto.SignupRequest) (*dto.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.NotificationEmail = strings.TrimSpace(req.NotificationEmail)

	if req.Username == "" {
		return nil, errors.New("username is required")
	}
	if !forms.ValidEmail(req.Email) {
		return nil, errors.New("a valid email address is required")
	}
	if req.BusinessName == "" {
		return nil, errors.New("business name is required")
	}
	if req.NotificationEmail != "" && !forms.ValidEmail(req.NotificationEmail) {
		return nil, errors.New("notification email must be a valid email address")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if req.Password != req.PasswordConfirm {
		return nil, errors.New("passwords do not match")
	}

	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.users.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	profile := models.BusinessProfile{
		ID:                uuid.New(),
		BusinessName:      req.BusinessName,
		PublicID:          models.NewPublicID(),
		NotificationEmail: req.NotificationEmail,
	}

	if err := s.users.CreateWithProfile(&user, &profile); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(user)
}

// Refresh rotates the presented refresh token: the old one is revoked
// and a fresh pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.tokens.FindActive(hashToken(req.RefreshToken))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.Revoke(stored)
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Revoke(stored); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	return s.tokens.RevokeByHash(hashToken(req.RefreshToken))
}

// RequestPasswordReset stores a short-lived token in Redis and mails a
// reset link. It never reveals whether the address exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	user, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil
	}

	raw, err := randomToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	key := resetKeyPrefix + hashToken(raw)
	if err := s.resets.Set(ctx, key, user.ID.String(), s.cfg.ResetTokenTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	subject := "Password reset"
	body := "A password reset was requested for your account.\n\n" +
		"Reset link: " + baseURL + "/reset?token=" + raw + "\n\n" +
		"The link expires in " + s.cfg.ResetTokenTTL.String() + ". " +
		"If you did not request this, ignore this message.\n"

	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		slog.Error("failed to send password reset mail", "error", err, "user_id", user.ID.String())
	}
	return nil
}

// ConfirmPasswordReset consumes the token, updates the password hash
// and revokes every outstanding refresh token for the account.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	key := resetKeyPrefix + hashToken(token)
	val, err := s.resets.Get(ctx, key)
	if err != nil {
		return ErrInvalidResetToken
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	_ = s.resets.Del(ctx, key)

	if err := s.tokens.RevokeAllForUser(userID); err != nil {
		slog.Error("failed to revoke refresh tokens after reset", "error", err, "user_id", userID.String())
	}
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
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
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	raw, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.tokens.Create(&record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return raw, nil
}

func randomToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
