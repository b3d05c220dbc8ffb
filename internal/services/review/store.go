package review

import (
	"errors"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

var (
	ErrInvalidInput = errors.New("invalid submission record")
	ErrNotFound     = errors.New("submission record not found")
)

// Store holds the ordered submission records of exactly one review session.
type Store struct {
	records []model.SubmissionRecord
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the current sequence. Records arriving without a review
// state start out pending.
func (s *Store) Load(records []model.SubmissionRecord) error {
	for _, record := range records {
		if record.ID == "" || record.RewardCoins <= 0 {
			return ErrInvalidInput
		}
	}

	s.records = make([]model.SubmissionRecord, len(records))
	copy(s.records, records)
	for i := range s.records {
		if s.records[i].ReviewState == "" {
			s.records[i].ReviewState = enums.ReviewStatePending
		}
	}
	return nil
}

// SetState overwrites the review state of the record matching id. Setting
// the state a record already has succeeds and changes nothing.
func (s *Store) SetState(id string, state enums.ReviewState) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].ReviewState = state
			return nil
		}
	}
	return ErrNotFound
}

// Snapshot returns a copy of the sequence safe to hand out.
func (s *Store) Snapshot() []model.SubmissionRecord {
	out := make([]model.SubmissionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	return len(s.records)
}
