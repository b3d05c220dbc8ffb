package review

import (
	"errors"
	"testing"
	"time"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

func TestStoreLoadRejectsNonPositiveRewards(t *testing.T) {
	store := NewStore()

	err := store.Load([]model.SubmissionRecord{
		{ID: "s1", Title: "ok", RewardCoins: 100},
		{ID: "s2", Title: "bad", RewardCoins: 0},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed load must not keep records, got %d", store.Len())
	}
}

func TestStoreLoadReplacesPreviousSession(t *testing.T) {
	store := NewStore()

	if err := store.Load(testRecords(t, 3)); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := store.Load(testRecords(t, 1)); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("load must replace the sequence, got %d records", store.Len())
	}
}

func TestStoreLoadDefaultsStateToPending(t *testing.T) {
	store := NewStore()

	if err := store.Load([]model.SubmissionRecord{{ID: "s1", RewardCoins: 50}}); err != nil {
		t.Fatalf("load: %v", err)
	}

	snapshot := store.Snapshot()
	if snapshot[0].ReviewState != enums.ReviewStatePending {
		t.Fatalf("unexpected initial state: %s", snapshot[0].ReviewState)
	}
}

func TestStoreSetStateUnknownID(t *testing.T) {
	store := NewStore()
	if err := store.Load(testRecords(t, 2)); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := store.SetState("missing", enums.ReviewStateApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSetStateIdempotent(t *testing.T) {
	store := NewStore()
	if err := store.Load(testRecords(t, 1)); err != nil {
		t.Fatalf("load: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.SetState("s1", enums.ReviewStateApproved); err != nil {
			t.Fatalf("set state attempt %d: %v", i+1, err)
		}
	}

	snapshot := store.Snapshot()
	if snapshot[0].ReviewState != enums.ReviewStateApproved {
		t.Fatalf("unexpected state after repeated set: %s", snapshot[0].ReviewState)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	if err := store.Load(testRecords(t, 1)); err != nil {
		t.Fatalf("load: %v", err)
	}

	snapshot := store.Snapshot()
	snapshot[0].ReviewState = enums.ReviewStateRejected

	if got := store.Snapshot()[0].ReviewState; got != enums.ReviewStatePending {
		t.Fatalf("mutating a snapshot leaked into the store: %s", got)
	}
}

func testRecords(t *testing.T, n int) []model.SubmissionRecord {
	t.Helper()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := make([]model.SubmissionRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, model.SubmissionRecord{
			ID:          "s" + string(rune('1'+i)),
			Title:       "screenshot",
			RewardCoins: int64(100 + 50*i),
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return records
}
