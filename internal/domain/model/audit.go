package model

import (
	"encoding/json"
	"time"

	"github.com/Zerokoinhub/admin-console/internal/domain/enums"
)

type Audit struct {
	ID        string            `json:"id"`
	StaffID   string            `json:"staff_id"`
	UserID    string            `json:"user_id"`
	Action    enums.AuditAction `json:"action"`
	Payload   json.RawMessage   `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
