package model

import (
	"time"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
)

// SubmissionRecord is one reviewable proof-of-work screenshot.
type SubmissionRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	RewardCoins int64             `json:"reward_coins"`
	ObjectKey   string            `json:"object_key,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
	ReviewState enums.ReviewState `json:"review_state"`
}
