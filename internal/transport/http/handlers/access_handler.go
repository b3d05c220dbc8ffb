package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Zerokoinhub/admin-console/internal/domain/model"
	accesssvc "github.com/Zerokoinhub/admin-console/internal/services/access"
	"github.com/Zerokoinhub/admin-console/internal/transport/http/dto"
	httperrors "github.com/Zerokoinhub/admin-console/internal/transport/http/errors"
)

type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (model.User, error)
}

type AccessHandler struct {
	access *accesssvc.Service
	users  UserFetcher
}

func NewAccessHandler(access *accesssvc.Service, users UserFetcher) *AccessHandler {
	return &AccessHandler{
		access: access,
		users:  users,
	}
}

// Toggle flips ban/unban for the user in the URL. The current state is read
// from the backend so the toggle direction never depends on a stale view.
func (h *AccessHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h.access == nil || h.users == nil {
		writeInternal(w, "ACCESS_SERVICE_UNAVAILABLE", "access service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	if userID == "" {
		writeBadRequest(w, "INVALID_INPUT", "user id is required")
		return
	}

	user, err := h.users.FetchUser(r.Context(), userID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	result, err := h.access.Toggle(r.Context(), user)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ToggleAccessResponse{
		User:     userDTO(result.User),
		NewState: string(result.NewState),
	})
}
