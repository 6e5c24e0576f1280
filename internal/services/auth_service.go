package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/config"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/riot"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOAuthNotConfigured = errors.New("riot OAuth is not configured")
	ErrAuthFailed         = errors.New("authentication failed")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	oauth  *riot.OAuthClient
	cipher *TokenCipher
}

func NewAuthService(db *gorm.DB, cfg *config.Config, cipher *TokenCipher) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		oauth:  riot.NewOAuthClient(cfg.RiotClientID, cfg.RiotClientSecret, cfg.RiotRedirectURI),
		cipher: cipher,
	}
}

// BeginLogin returns the provider authorize URL and a CSRF state. Development
// mode short-circuits to the in-process mock flow.
func (s *AuthService) BeginLogin() (*dto.LoginURLResponse, error) {
	if s.cfg.IsDevelopment() {
		authURL, state, err := riot.MockAuthURL(s.cfg.FrontendURL)
		if err != nil {
			return nil, err
		}
		return &dto.LoginURLResponse{AuthURL: authURL, State: state, IsDevelopment: true}, nil
	}

	if s.cfg.RiotClientID == "" {
		return nil, ErrOAuthNotConfigured
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(buf)

	return &dto.LoginURLResponse{
		AuthURL: s.oauth.AuthorizeURL(state),
		State:   state,
	}, nil
}

// Callback exchanges the authorization code, resolves the provider identity
// and upserts the user row: created on first login, token cache refreshed on
// every later one. Returns a 7-day bearer token.
func (s *AuthService) Callback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, info, err := s.exchange(ctx, code)
	if err != nil {
		slog.Error("oauth code exchange failed", "error", err)
		return nil, ErrAuthFailed
	}

	accessToken, err := s.cipher.Encrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refreshToken, err := s.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt refresh token: %w", err)
	}
	tokenExpiry := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	var user models.User
	err = s.db.Where("riot_puuid = ?", info.Puuid).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			ID:             uuid.New(),
			Email:          info.Email,
			RiotPuuid:      &info.Puuid,
			GameName:       &info.GameName,
			TagLine:        &info.TagLine,
			AccessToken:    accessToken,
			RefreshToken:   refreshToken,
			TokenExpiresAt: &tokenExpiry,
			IsAdmin:        s.cfg.IsDevelopment() && riot.MockIsAdmin(info.Puuid),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	default:
		updates := map[string]interface{}{
			"access_token":     accessToken,
			"refresh_token":    refreshToken,
			"token_expires_at": tokenExpiry,
			"game_name":        info.GameName,
			"tag_line":         info.TagLine,
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user tokens: %w", err)
		}
		user.GameName = &info.GameName
		user.TagLine = &info.TagLine
	}

	bearer, expiresAt, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:      userResponse(&user),
		Token:     bearer,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) exchange(ctx context.Context, code string) (*riot.TokenResponse, *riot.UserInfo, error) {
	if s.cfg.IsDevelopment() {
		token := riot.VerifyMockCode(code)
		info, err := riot.MockUserInfo(token.AccessToken)
		if err != nil {
			return nil, nil, err
		}
		return token, info, nil
	}

	token, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	info, err := s.oauth.UserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return token, info, nil
}

// IssueToken signs a fresh bearer token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiry)
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		GameName:  user.GameName,
		TagLine:   user.TagLine,
		RiotPuuid: user.RiotPuuid,
		IsAdmin:   user.IsAdmin,
	}
}
