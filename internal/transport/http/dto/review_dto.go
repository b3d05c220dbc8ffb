package dto

import "time"

type SubmissionRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	RewardCoins int64     `json:"reward_coins"`
	SubmittedAt time.Time `json:"submitted_at"`
	ReviewState string    `json:"review_state"`
	ScreenURL   string    `json:"screen_url,omitempty"`
}

type Aggregates struct {
	ApprovedCount      int   `json:"approved_count"`
	TotalApprovedCoins int64 `json:"total_approved_coins"`
	AllApproved        bool  `json:"all_approved"`
}

type ReviewSessionResponse struct {
	SessionID  string             `json:"session_id"`
	User       User               `json:"user"`
	Records    []SubmissionRecord `json:"records"`
	Aggregates Aggregates         `json:"aggregates"`
}

type AggregatesResponse struct {
	Aggregates Aggregates `json:"aggregates"`
}

type FinalizeResponse struct {
	SessionID              string `json:"session_id"`
	ApprovedCount          int    `json:"approved_count"`
	TotalApprovedCoins     int64  `json:"total_approved_coins"`
	AllApproved            bool   `json:"all_approved"`
	HasApprovedScreenshots bool   `json:"has_approved_screenshots"`
	Credited               bool   `json:"credited"`
	User                   User   `json:"user"`
}
