package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
	"github.com/Zerokoinhub/admin-console/internal/services/review"
	"github.com/Zerokoinhub/admin-console/internal/services/staffauth"
)

const signedURLTTL = 5 * time.Minute

var (
	ErrNoUserSelected  = errors.New("no user selected")
	ErrNoActiveSession = errors.New("no active review session")
	ErrNoPendingCredit = errors.New("no pending credit to retry")
)

type UserBackend interface {
	FetchUser(ctx context.Context, userID string) (model.User, error)
	CreditBalance(ctx context.Context, userID string, amount int64) (model.User, error)
}

type SubmissionBackend interface {
	FetchSubmissions(ctx context.Context, userID string) ([]model.SubmissionRecord, error)
}

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Auditor interface {
	Record(ctx context.Context, entry model.Audit) error
}

type SessionView struct {
	SessionID  string
	User       model.User
	Records    []model.SubmissionRecord
	ScreenURLs map[string]string
	Aggregates review.Aggregates
}

type FinalizeOutcome struct {
	SessionID string
	Result    review.FinalizeResult
	User      model.User
	Credited  bool
}

// Service sequences select user -> open review session -> approve/reject ->
// finalize -> credit. The review engine certifies the batch; crediting the
// balance is done here so the engine stays free of network failure modes.
type Config struct {
	// SeedPlaceholders substitutes a local demo record set when the
	// backend has no submissions for the user.
	SeedPlaceholders bool
}

type Service struct {
	users       UserBackend
	submissions SubmissionBackend
	cfg         Config
	signer      URLSigner
	audit       Auditor
	logger      *zap.Logger

	mu            sync.Mutex
	selected      *model.User
	sessionID     string
	engine        *review.Engine
	pendingCredit *pendingCredit
}

// pendingCredit survives a failed credit call so the credit alone can be
// retried without re-reviewing the batch.
type pendingCredit struct {
	sessionID string
	userID    string
	amount    int64
	result    review.FinalizeResult
}

func NewService(users UserBackend, submissions SubmissionBackend, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		users:       users,
		submissions: submissions,
		cfg:         cfg,
		logger:      logger,
	}
}

// AttachSigner enables presigned screenshot view URLs on session views.
func (s *Service) AttachSigner(signer URLSigner) {
	s.signer = signer
}

// AttachAuditor enables best-effort audit records for staff actions.
func (s *Service) AttachAuditor(audit Auditor) {
	s.audit = audit
}

// SelectUser loads the user from the backend and makes it the subject of
// subsequent review and credit operations. Selecting a user discards any
// open session for the previously selected one.
func (s *Service) SelectUser(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, review.ErrInvalidInput
	}
	if s.users == nil {
		return model.User{}, fmt.Errorf("user backend is not configured")
	}

	user, err := s.users.FetchUser(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	if user.AccessState == "" {
		user.AccessState = enums.AccessStateActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &user
	s.sessionID = ""
	s.engine = nil
	return user, nil
}

// OpenReviewSession seeds a fresh store for the selected user. Records come
// from the backend when it has any; otherwise a local placeholder set is
// seeded so the review flow stays demonstrable offline.
func (s *Service) OpenReviewSession(ctx context.Context) (SessionView, error) {
	s.mu.Lock()
	selected := s.selected
	s.mu.Unlock()

	if selected == nil {
		return SessionView{}, ErrNoUserSelected
	}

	var records []model.SubmissionRecord
	if s.submissions != nil {
		fetched, err := s.submissions.FetchSubmissions(ctx, selected.ID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("fetch submissions failed, seeding placeholders",
					zap.String("user_id", selected.ID),
					zap.Error(err),
				)
			}
		} else {
			records = fetched
		}
	}
	if len(records) == 0 && s.cfg.SeedPlaceholders {
		records = placeholderRecords()
	}

	store := review.NewStore()
	if err := store.Load(records); err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	s.sessionID = uuid.NewString()
	s.engine = review.NewEngine(store)
	sessionID := s.sessionID
	engine := s.engine
	user := *s.selected
	s.mu.Unlock()

	return s.sessionView(ctx, sessionID, user, engine), nil
}

// Approve records an approve decision for one submission.
func (s *Service) Approve(ctx context.Context, submissionID string) error {
	return s.decide(ctx, submissionID, true)
}

// Reject records a reject decision for one submission.
func (s *Service) Reject(ctx context.Context, submissionID string) error {
	return s.decide(ctx, submissionID, false)
}

func (s *Service) decide(ctx context.Context, submissionID string, approve bool) error {
	engine, user, sessionID, err := s.activeSession()
	if err != nil {
		return err
	}

	if approve {
		err = engine.Approve(submissionID)
	} else {
		err = engine.Reject(submissionID)
	}
	if err != nil {
		return err
	}

	action := enums.AuditActionSubmissionRejected
	if approve {
		action = enums.AuditActionSubmissionApproved
	}
	s.recordAudit(ctx, model.Audit{
		UserID:  user.ID,
		Action:  action,
		Payload: auditPayload(map[string]interface{}{"session_id": sessionID, "submission_id": submissionID}),
	})
	return nil
}

// Aggregates recomputes the current approval totals for the open session.
func (s *Service) Aggregates() (review.Aggregates, error) {
	engine, _, _, err := s.activeSession()
	if err != nil {
		return review.Aggregates{}, err
	}
	return engine.Aggregates(), nil
}

// Session returns the current session view, including re-signed screenshot
// URLs, for the presentation layer.
func (s *Service) Session(ctx context.Context) (SessionView, error) {
	engine, user, sessionID, err := s.activeSession()
	if err != nil {
		return SessionView{}, err
	}
	return s.sessionView(ctx, sessionID, user, engine), nil
}

// FinalizeAndCredit certifies the batch and credits the approved total to
// the selected user. A credit failure after a successful finalize does not
// reopen the session: the review decision stands and only the credit call
// is retried, via RetryCredit.
func (s *Service) FinalizeAndCredit(ctx context.Context) (FinalizeOutcome, error) {
	engine, user, sessionID, err := s.activeSession()
	if err != nil {
		return FinalizeOutcome{}, err
	}

	result, err := engine.Finalize()
	if err != nil {
		return FinalizeOutcome{}, err
	}

	s.recordAudit(ctx, model.Audit{
		UserID: user.ID,
		Action: enums.AuditActionReviewFinalized,
		Payload: auditPayload(map[string]interface{}{
			"session_id":     sessionID,
			"approved_count": result.ApprovedCount,
			"total_coins":    result.TotalApprovedCoins,
			"all_approved":   result.AllApproved,
		}),
	})

	outcome := FinalizeOutcome{SessionID: sessionID, Result: result, User: user}

	credited, err := s.credit(ctx, sessionID, user.ID, result)
	if err != nil {
		s.closeSession()
		return outcome, err
	}
	outcome.User = credited
	outcome.Credited = true

	s.closeSession()
	return outcome, nil
}

// RetryCredit re-issues the credit call for a finalized batch whose credit
// failed. The review decision itself is never re-run.
func (s *Service) RetryCredit(ctx context.Context) (FinalizeOutcome, error) {
	s.mu.Lock()
	pending := s.pendingCredit
	s.mu.Unlock()

	if pending == nil {
		return FinalizeOutcome{}, ErrNoPendingCredit
	}

	outcome := FinalizeOutcome{SessionID: pending.sessionID, Result: pending.result}

	credited, err := s.users.CreditBalance(ctx, pending.userID, pending.amount)
	if err != nil {
		return outcome, fmt.Errorf("retry credit for user %s: %w", pending.userID, err)
	}

	s.mu.Lock()
	s.pendingCredit = nil
	if s.selected != nil && s.selected.ID == credited.ID {
		s.selected.Balance = credited.Balance
	}
	s.mu.Unlock()

	s.recordAudit(ctx, model.Audit{
		UserID: pending.userID,
		Action: enums.AuditActionBalanceCredited,
		Payload: auditPayload(map[string]interface{}{
			"session_id": pending.sessionID,
			"amount":     pending.amount,
			"retried":    true,
		}),
	})

	outcome.User = credited
	outcome.Credited = true
	return outcome, nil
}

// PendingCreditAmount reports the uncredited total of the last finalized
// batch, zero when nothing is owed.
func (s *Service) PendingCreditAmount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingCredit == nil {
		return 0
	}
	return s.pendingCredit.amount
}

// CloseSession discards the open session without finalizing, the
// back-navigation path. A pending credit is kept.
func (s *Service) CloseSession() {
	s.closeSession()
}

// SelectedUser returns the current subject, if any.
func (s *Service) SelectedUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.User{}, false
	}
	return *s.selected, true
}

func (s *Service) credit(ctx context.Context, sessionID, userID string, result review.FinalizeResult) (model.User, error) {
	if s.users == nil {
		return model.User{}, fmt.Errorf("user backend is not configured")
	}

	credited, err := s.users.CreditBalance(ctx, userID, result.TotalApprovedCoins)
	if err != nil {
		s.mu.Lock()
		s.pendingCredit = &pendingCredit{
			sessionID: sessionID,
			userID:    userID,
			amount:    result.TotalApprovedCoins,
			result:    result,
		}
		s.mu.Unlock()
		return model.User{}, fmt.Errorf("credit %d coins to user %s: %w", result.TotalApprovedCoins, userID, err)
	}

	s.mu.Lock()
	s.pendingCredit = nil
	if s.selected != nil && s.selected.ID == credited.ID {
		s.selected.Balance = credited.Balance
	}
	s.mu.Unlock()

	s.recordAudit(ctx, model.Audit{
		UserID: userID,
		Action: enums.AuditActionBalanceCredited,
		Payload: auditPayload(map[string]interface{}{
			"session_id": sessionID,
			"amount":     result.TotalApprovedCoins,
		}),
	})
	return credited, nil
}

func (s *Service) activeSession() (*review.Engine, model.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil, model.User{}, "", ErrNoUserSelected
	}
	if s.engine == nil {
		return nil, model.User{}, "", ErrNoActiveSession
	}
	return s.engine, *s.selected, s.sessionID, nil
}

func (s *Service) closeSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.engine = nil
}

func (s *Service) sessionView(ctx context.Context, sessionID string, user model.User, engine *review.Engine) SessionView {
	records := engine.Snapshot()
	view := SessionView{
		SessionID:  sessionID,
		User:       user,
		Records:    records,
		Aggregates: engine.Aggregates(),
	}

	if s.signer == nil {
		return view
	}
	view.ScreenURLs = make(map[string]string, len(records))
	for _, record := range records {
		if record.ObjectKey == "" {
			continue
		}
		url, err := s.signer.PresignGet(ctx, record.ObjectKey, signedURLTTL)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("presign screenshot url",
					zap.String("object_key", record.ObjectKey),
					zap.Error(err),
				)
			}
			continue
		}
		view.ScreenURLs[record.ID] = url
	}
	return view
}

// recordAudit attributes the entry to the staff identity carried in ctx and
// hands it to the auditor. Audit failures are logged, never surfaced.
func (s *Service) recordAudit(ctx context.Context, entry model.Audit) {
	if s.audit == nil {
		return
	}
	if identity, ok := staffauth.IdentityFromContext(ctx); ok {
		entry.StaffID = identity.StaffID
	}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("record audit entry", zap.String("action", string(entry.Action)), zap.Error(err))
	}
}

func placeholderRecords() []model.SubmissionRecord {
	now := time.Now().UTC()
	return []model.SubmissionRecord{
		{ID: "demo-1", Title: "Mining session screenshot", RewardCoins: 100, SubmittedAt: now.Add(-72 * time.Hour), ReviewState: enums.ReviewStatePending},
		{ID: "demo-2", Title: "Referral proof screenshot", RewardCoins: 150, SubmittedAt: now.Add(-48 * time.Hour), ReviewState: enums.ReviewStatePending},
		{ID: "demo-3", Title: "Daily streak screenshot", RewardCoins: 200, SubmittedAt: now.Add(-24 * time.Hour), ReviewState: enums.ReviewStatePending},
	}
}

func auditPayload(fields map[string]interface{}) json.RawMessage {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return payload
}
