// Package identity implements the email/password session provider: account
// signup, session create/delete, and current-user lookup by token.
package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/cache"
	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
	sessionrepo "github.com/SD-CODE-OEB/stationery-Saas/internal/repository/session"
	userrepo "github.com/SD-CODE-OEB/stationery-Saas/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates the session token could not be validated.
	ErrInvalidToken = errors.New("invalid session token")
)

// Service handles signup/login/logout flows. Session lookups go through an
// optional cache before hitting the database; cached entries live for a few
// minutes so repeated auth checks stay cheap.
type Service struct {
	users       userrepo.Repository
	sessions    sessionrepo.Repository
	cache       cache.Cache
	sessionTTL  time.Duration
	cacheTTL    time.Duration
	passwordMin int
	logger      *log.Logger
}

// New creates a Service with sane defaults. The cache may be nil.
func New(users userrepo.Repository, sessions sessionrepo.Repository, c cache.Cache, sessionTTL time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		users:       users,
		sessions:    sessions,
		cache:       c,
		sessionTTL:  sessionTTL,
		cacheTTL:    5 * time.Minute,
		passwordMin: 8,
		logger:      logger,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup registers a new account.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email required")
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hashed),
	})
}

// Login validates credentials and creates a session, returning the user and
// the opaque session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	s.cacheUser(ctx, token, u)
	return u, token, nil
}

// Logout deletes the session. Unknown tokens are treated as success.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, token); err != nil {
			s.logger.Printf("identity: cache delete: %v", err)
		}
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// CurrentUser resolves a session token to its user. Expired sessions are
// deleted on sight and reported as invalid.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	if u, ok := s.cachedUser(ctx, token); ok {
		return u, nil
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	s.cacheUser(ctx, token, u)
	return u, nil
}

// SessionTTLSeconds exposes the session lifetime in seconds.
func (s *Service) SessionTTLSeconds() int {
	return int(s.sessionTTL.Seconds())
}

func (s *Service) issueSession(ctx context.Context, userID string) (string, error) {
	expiresAt := time.Now().Add(s.sessionTTL)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = s.sessions.Create(ctx, sessionrepo.Session{
			Token:     token,
			UserID:    userID,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("session token collision")
}

type cachedEntry struct {
	User domain.User `json:"user"`
}

func (s *Service) cacheUser(ctx context.Context, token string, u *domain.User) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(cachedEntry{User: *u})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, token, string(data), s.cacheTTL); err != nil {
		s.logger.Printf("identity: cache set: %v", err)
	}
}

func (s *Service) cachedUser(ctx context.Context, token string) (*domain.User, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, token)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Printf("identity: cache get: %v", err)
		}
		return nil, false
	}
	var entry cachedEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, false
	}
	return &entry.User, true
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
