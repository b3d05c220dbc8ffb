package handlers

import (
	"errors"
	"net/http"
	"strings"

	staffauthsvc "github.com/Zerokoinhub/admin-console/internal/services/staffauth"
	"github.com/Zerokoinhub/admin-console/internal/transport/http/dto"
	httperrors "github.com/Zerokoinhub/admin-console/internal/transport/http/errors"
)

type AuthHandler struct {
	staffAuth *staffauthsvc.Service
}

func NewAuthHandler(staffAuth *staffauthsvc.Service) *AuthHandler {
	return &AuthHandler{staffAuth: staffAuth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.staffAuth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_INPUT", "invalid request body")
		return
	}

	session, err := h.staffAuth.Login(r.Context(), req.AdminToken, req.StaffID, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, staffauthsvc.ErrInvalidInput):
			writeBadRequest(w, "INVALID_INPUT", "staff_id is required")
		case errors.Is(err, staffauthsvc.ErrUnauthorized):
			writeUnauthorized(w, "UNAUTHORIZED", "invalid admin token")
		default:
			writeInternal(w, "INTERNAL_ERROR", "login failed")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.staffAuth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := staffauthsvc.IdentityFromContext(r.Context())
	if !ok || strings.TrimSpace(identity.Token) == "" {
		writeUnauthorized(w, "UNAUTHORIZED", "staff session required")
		return
	}

	if err := h.staffAuth.Logout(r.Context(), identity.Token); err != nil {
		writeInternal(w, "INTERNAL_ERROR", "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
