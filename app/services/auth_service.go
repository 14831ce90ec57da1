package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/app/repositories"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/auth"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/cache"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/middleware"
)

// Sentinel errors for the identity flows. Controllers map these to
// user-facing messages; anything else is treated as transient.
var (
	ErrUserNotFound = errors.New("auth: user not found")
	ErrNameMismatch = errors.New("auth: name does not match")
	ErrPhoneTaken   = errors.New("auth: phone already registered")
)

// Session is the payload handed to the client after a successful sign-in
// or sign-up. The client owns its lifecycle: set on login, dropped on
// logout, never implicitly persisted server-side.
type Session struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// AuthService implements the identity flows: phone lookup plus name check
// on sign-in, conflict detection on sign-up, name disclosure on recovery,
// and token revocation on sign-out.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// synthEmail derives the legacy identifier kept for compatibility with
// accounts imported from the previous system.
func synthEmail(phone string) string {
	return phone + "@temp.com"
}

// SignIn authenticates by phone and name. The name comparison is
// case-insensitive against the stored record.
func (s *AuthService) SignIn(name, phone string) (*Session, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(strings.TrimSpace(name), user.Name) {
		return nil, ErrNameMismatch
	}

	if !auth.CheckSecret(user.SecretHash, phone) {
		logger.Warn("auth: stored credential mismatch", "user_id", user.ID)
		return nil, ErrNameMismatch
	}

	return s.issueSession(user)
}

// SignUp registers a new account. The phone must not already be taken.
func (s *AuthService) SignUp(name, phone string) (*Session, error) {
	_, err := s.users.FindByPhone(phone)
	switch {
	case err == nil:
		return nil, ErrPhoneTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := auth.HashSecret(phone)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:       strings.TrimSpace(name),
		Phone:      phone,
		Email:      synthEmail(phone),
		SecretHash: hash,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

// Recover discloses the name registered for a phone number.
func (s *AuthService) Recover(phone string) (string, error) {
	user, err := s.users.FindByPhone(phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Name, nil
}

// SignOut revokes the presented access token by placing it on the Redis
// denylist until its natural expiry. With the cache down this degrades to
// expiry-only revocation.
func (s *AuthService) SignOut(token string) error {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		// Already invalid, nothing to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return cache.Set(middleware.RevokedKey+token, true, ttl)
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (*Session, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if cache.Has(middleware.RevokedKey + refreshToken) {
		return nil, ErrUserNotFound
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user models.User) (*Session, error) {
	access, err := auth.GenerateToken(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Phone)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
