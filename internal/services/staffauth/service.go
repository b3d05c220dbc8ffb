package staffauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionNotFound = errors.New("staff session not found")
)

// SessionRecord is the explicit session context the console carries instead
// of ambient page-level storage: created on login, cleared on logout or TTL
// expiry.
type SessionRecord struct {
	Token       string
	StaffID     string
	DisplayName string
	ExpiresAt   time.Time
}

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord) error
	Get(ctx context.Context, token string) (SessionRecord, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	sessions   SessionStore
	adminToken string
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(sessions SessionStore, adminToken string, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &Service{
		sessions:   sessions,
		adminToken: adminToken,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Login checks the shared console token and mints a staff session. Identity
// itself is asserted by the backend that issued the token; the console only
// needs a session to attribute actions to.
func (s *Service) Login(ctx context.Context, adminToken, staffID, displayName string) (SessionRecord, error) {
	if s.sessions == nil {
		return SessionRecord{}, fmt.Errorf("session store is not configured")
	}
	if strings.TrimSpace(staffID) == "" {
		return SessionRecord{}, ErrInvalidInput
	}
	if s.adminToken == "" || subtle.ConstantTimeCompare([]byte(adminToken), []byte(s.adminToken)) != 1 {
		return SessionRecord{}, ErrUnauthorized
	}

	session := SessionRecord{
		Token:       uuid.NewString(),
		StaffID:     strings.TrimSpace(staffID),
		DisplayName: strings.TrimSpace(displayName),
		ExpiresAt:   s.now().Add(s.sessionTTL).UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return SessionRecord{}, fmt.Errorf("create staff session: %w", err)
	}
	return session, nil
}

// Validate resolves a session token to the staff identity behind it.
func (s *Service) Validate(ctx context.Context, token string) (Identity, error) {
	if s.sessions == nil {
		return Identity{}, fmt.Errorf("session store is not configured")
	}
	if strings.TrimSpace(token) == "" {
		return Identity{}, ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, err
	}
	if !session.ExpiresAt.After(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		StaffID:     session.StaffID,
		DisplayName: session.DisplayName,
		Token:       token,
	}, nil
}

// Logout clears the session. Logging out an unknown token succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.sessions == nil {
		return fmt.Errorf("session store is not configured")
	}
	return s.sessions.Delete(ctx, token)
}
