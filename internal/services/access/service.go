package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
	"github.com/Zerokoinhub/admin-console/internal/services/staffauth"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrToggleInProgress = errors.New("access toggle already in progress")
)

// Backend flips the authoritative access state. Implementations must report
// failure distinctly from the payload, not only via transport errors.
type Backend interface {
	SetBanned(ctx context.Context, userID string) error
	SetUnbanned(ctx context.Context, userID string) error
}

type Auditor interface {
	Record(ctx context.Context, entry model.Audit) error
}

type ToggleResult struct {
	User     model.User
	NewState enums.AccessState
}

// Service manages the active/banned lifecycle per user with an optimistic
// flip that is rolled back when the backend does not confirm it.
type Service struct {
	backend Backend
	logger  *zap.Logger
	audit   Auditor

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewService(backend Backend, logger *zap.Logger) *Service {
	return &Service{
		backend:  backend,
		logger:   logger,
		inFlight: map[string]struct{}{},
	}
}

// AttachAuditor enables best-effort audit records for confirmed toggles.
func (s *Service) AttachAuditor(audit Auditor) {
	s.audit = audit
}

// Toggle flips the user's access state. On backend failure the pre-toggle
// state is restored from the pre-image, so the caller never observes a state
// the backend did not confirm. A second toggle for the same user while one
// is in flight fails with ErrToggleInProgress; other users are independent.
func (s *Service) Toggle(ctx context.Context, user model.User) (ToggleResult, error) {
	if user.ID == "" {
		return ToggleResult{}, ErrValidation
	}
	if s.backend == nil {
		return ToggleResult{}, fmt.Errorf("access backend is not configured")
	}

	if err := s.acquire(user.ID); err != nil {
		return ToggleResult{}, err
	}
	defer s.release(user.ID)

	previous := user.AccessState
	if previous == "" {
		previous = enums.AccessStateActive
	}
	target := previous.Opposite()

	// Optimistic flip; the pre-image stays in `previous` for the rollback.
	user.AccessState = target

	var err error
	if user.Banned() {
		err = s.backend.SetBanned(ctx, user.ID)
	} else {
		err = s.backend.SetUnbanned(ctx, user.ID)
	}
	if err != nil {
		user.AccessState = previous
		if s.logger != nil {
			s.logger.Warn("access toggle rolled back",
				zap.String("user_id", user.ID),
				zap.String("kept_state", string(previous)),
				zap.Error(err),
			)
		}
		return ToggleResult{User: user, NewState: previous}, fmt.Errorf("toggle access for user %s: %w", user.ID, err)
	}

	s.recordToggle(ctx, user.ID, previous, target)
	return ToggleResult{User: user, NewState: target}, nil
}

// recordToggle appends an audit row for a toggle the backend confirmed.
// Rolled-back toggles leave no trail; the user's state never changed.
func (s *Service) recordToggle(ctx context.Context, userID string, previous, target enums.AccessState) {
	if s.audit == nil {
		return
	}

	entry := model.Audit{
		UserID: userID,
		Action: enums.AuditActionAccessToggled,
	}
	if identity, ok := staffauth.IdentityFromContext(ctx); ok {
		entry.StaffID = identity.StaffID
	}
	if payload, err := json.Marshal(map[string]string{
		"previous_state": string(previous),
		"new_state":      string(target),
	}); err == nil {
		entry.Payload = payload
	}

	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("record access toggle audit entry", zap.String("user_id", userID), zap.Error(err))
	}
}

// InFlight reports whether a toggle is currently unresolved for the user.
func (s *Service) InFlight(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[userID]
	return ok
}

func (s *Service) acquire(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[userID]; ok {
		return ErrToggleInProgress
	}
	s.inFlight[userID] = struct{}{}
	return nil
}

func (s *Service) release(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}
