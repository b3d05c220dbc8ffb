package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	backendhttp "github.com/Zerokoinhub/admin-console/internal/repo/backendhttp"
	accesssvc "github.com/Zerokoinhub/admin-console/internal/services/access"
	reviewsvc "github.com/Zerokoinhub/admin-console/internal/services/review"
	workflowsvc "github.com/Zerokoinhub/admin-console/internal/services/workflow"
	httperrors "github.com/Zerokoinhub/admin-console/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func isBackendNotFound(err error) bool {
	var reqErr *backendhttp.RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// writeWorkflowError maps service errors onto stable codes the console
// renders as banners; nothing crosses this boundary as a panic.
func writeWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reviewsvc.ErrInvalidInput):
		writeBadRequest(w, "INVALID_INPUT", "malformed submission data")
	case errors.Is(err, reviewsvc.ErrNotFound):
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: "NOT_FOUND", Message: "submission record not found"})
	case errors.Is(err, reviewsvc.ErrNothingApproved):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "NOTHING_APPROVED", Message: "no submissions approved in this session"})
	case errors.Is(err, reviewsvc.ErrSessionClosed):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "SESSION_CLOSED", Message: "review session is already finalized"})
	case errors.Is(err, workflowsvc.ErrNoUserSelected):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "NO_USER_SELECTED", Message: "select a user first"})
	case errors.Is(err, workflowsvc.ErrNoActiveSession):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "NO_ACTIVE_SESSION", Message: "open a review session first"})
	case errors.Is(err, workflowsvc.ErrNoPendingCredit):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "NO_PENDING_CREDIT", Message: "no failed credit to retry"})
	case errors.Is(err, accesssvc.ErrToggleInProgress):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "TOGGLE_IN_PROGRESS", Message: "an access toggle is already in flight for this user"})
	case errors.Is(err, accesssvc.ErrValidation):
		writeBadRequest(w, "INVALID_INPUT", "user id is required")
	case isBackendNotFound(err):
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: "NOT_FOUND", Message: "user not found"})
	case errors.Is(err, backendhttp.ErrBackendUnavailable):
		httperrors.Write(w, http.StatusBadGateway, httperrors.APIError{Code: "BACKEND_UNAVAILABLE", Message: err.Error()})
	default:
		writeInternal(w, "INTERNAL_ERROR", "unexpected failure")
	}
}
