package dto

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	AdminToken  string `json:"admin_token"`
	StaffID     string `json:"staff_id"`
	DisplayName string `json:"display_name"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AuditEntry struct {
	ID        string          `json:"id"`
	StaffID   string          `json:"staff_id"`
	UserID    string          `json:"user_id"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type AuditListResponse struct {
	Items []AuditEntry `json:"items"`
}
