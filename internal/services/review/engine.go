package review

import (
	"errors"
	"sync"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

var (
	ErrNothingApproved = errors.New("no submissions approved")
	ErrSessionClosed   = errors.New("review session is closed")
)

type Aggregates struct {
	ApprovedCount      int
	TotalApprovedCoins int64
	AllApproved        bool
}

type FinalizeResult struct {
	ApprovedCount          int
	TotalApprovedCoins     int64
	AllApproved            bool
	HasApprovedScreenshots bool
}

// Engine applies approve/reject decisions to a store and certifies the
// batch outcome on finalize. It never talks to the backend itself; the
// caller credits the balance afterwards.
type Engine struct {
	mu     sync.Mutex
	store  *Store
	closed bool
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Approve marks the record approved. Re-approving an approved record is a
// no-op; approving a rejected record overwrites the earlier decision.
func (e *Engine) Approve(id string) error {
	return e.setState(id, enums.ReviewStateApproved)
}

func (e *Engine) Reject(id string) error {
	return e.setState(id, enums.ReviewStateRejected)
}

func (e *Engine) setState(id string, state enums.ReviewState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrSessionClosed
	}
	return e.store.SetState(id, state)
}

// Aggregates recomputes the totals from the current record states. The sum
// is never cached so it cannot drift from the records.
func (e *Engine) Aggregates() Aggregates {
	e.mu.Lock()
	defer e.mu.Unlock()
	return computeAggregates(e.store.Snapshot())
}

// Finalize closes the session for further decisions. A batch with pending
// or rejected leftovers still finalizes; only an empty approval set fails.
func (e *Engine) Finalize() (FinalizeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return FinalizeResult{}, ErrSessionClosed
	}

	agg := computeAggregates(e.store.Snapshot())
	if agg.ApprovedCount == 0 {
		return FinalizeResult{}, ErrNothingApproved
	}

	e.closed = true
	return FinalizeResult{
		ApprovedCount:          agg.ApprovedCount,
		TotalApprovedCoins:     agg.TotalApprovedCoins,
		AllApproved:            agg.AllApproved,
		HasApprovedScreenshots: true,
	}, nil
}

func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Engine) Snapshot() []model.SubmissionRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshot()
}

func computeAggregates(records []model.SubmissionRecord) Aggregates {
	agg := Aggregates{AllApproved: len(records) > 0}
	for _, record := range records {
		if record.ReviewState == enums.ReviewStateApproved {
			agg.ApprovedCount++
			agg.TotalApprovedCoins += record.RewardCoins
		} else {
			agg.AllApproved = false
		}
	}
	return agg
}
