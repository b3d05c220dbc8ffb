package handlers

import (
	"net/http"
	"strconv"

	pgrepo "github.com/Zerokoinhub/admin-console/internal/repo/postgres"
	"github.com/Zerokoinhub/admin-console/internal/transport/http/dto"
	httperrors "github.com/Zerokoinhub/admin-console/internal/transport/http/errors"
)

type AuditHandler struct {
	audit *pgrepo.AuditRepo
}

func NewAuditHandler(audit *pgrepo.AuditRepo) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeInternal(w, "AUDIT_UNAVAILABLE", "audit trail is unavailable")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeBadRequest(w, "INVALID_INPUT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.audit.ListRecent(r.Context(), limit)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list audit entries")
		return
	}

	items := make([]dto.AuditEntry, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntry{
			ID:        entry.ID,
			StaffID:   entry.StaffID,
			UserID:    entry.UserID,
			Action:    string(entry.Action),
			Payload:   entry.Payload,
			CreatedAt: entry.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.AuditListResponse{Items: items})
}
