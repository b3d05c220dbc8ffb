package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Zerokoinhub/admin-console/internal/domain/model"
	reviewsvc "github.com/Zerokoinhub/admin-console/internal/services/review"
	workflowsvc "github.com/Zerokoinhub/admin-console/internal/services/workflow"
	"github.com/Zerokoinhub/admin-console/internal/transport/http/dto"
	httperrors "github.com/Zerokoinhub/admin-console/internal/transport/http/errors"
)

type ReviewHandler struct {
	workflow *workflowsvc.Service
}

func NewReviewHandler(workflow *workflowsvc.Service) *ReviewHandler {
	return &ReviewHandler{workflow: workflow}
}

func (h *ReviewHandler) SelectUser(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	var req dto.SelectUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_INPUT", "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeBadRequest(w, "INVALID_INPUT", "user_id is required")
		return
	}

	user, err := h.workflow.SelectUser(r.Context(), req.UserID)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SelectUserResponse{User: userDTO(user)})
}

func (h *ReviewHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	view, err := h.workflow.OpenReviewSession(r.Context())
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, sessionDTO(view))
}

func (h *ReviewHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	view, err := h.workflow.Session(r.Context())
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, sessionDTO(view))
}

func (h *ReviewHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	h.workflow.CloseSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *ReviewHandler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	submissionID := strings.TrimSpace(chi.URLParam(r, "submissionID"))
	if submissionID == "" {
		writeBadRequest(w, "INVALID_INPUT", "submission id is required")
		return
	}

	var err error
	if approve {
		err = h.workflow.Approve(r.Context(), submissionID)
	} else {
		err = h.workflow.Reject(r.Context(), submissionID)
	}
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	aggregates, err := h.workflow.Aggregates()
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AggregatesResponse{Aggregates: aggregatesDTO(aggregates)})
}

func (h *ReviewHandler) Aggregates(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	aggregates, err := h.workflow.Aggregates()
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AggregatesResponse{Aggregates: aggregatesDTO(aggregates)})
}

func (h *ReviewHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	outcome, err := h.workflow.FinalizeAndCredit(r.Context())
	if err != nil && !outcome.Result.HasApprovedScreenshots {
		// Finalize itself failed; nothing was certified.
		writeWorkflowError(w, err)
		return
	}

	response := finalizeDTO(outcome)
	if err != nil {
		// The batch is certified but the credit failed. Report the partial
		// outcome; the credit alone can be retried.
		httperrors.Write(w, http.StatusAccepted, response)
		return
	}
	httperrors.Write(w, http.StatusOK, response)
}

func (h *ReviewHandler) RetryCredit(w http.ResponseWriter, r *http.Request) {
	if h.workflow == nil {
		writeInternal(w, "WORKFLOW_SERVICE_UNAVAILABLE", "workflow service is unavailable")
		return
	}

	outcome, err := h.workflow.RetryCredit(r.Context())
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, finalizeDTO(outcome))
}

func userDTO(user model.User) dto.User {
	return dto.User{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Balance:     user.Balance,
		AccessState: string(user.AccessState),
	}
}

func aggregatesDTO(agg reviewsvc.Aggregates) dto.Aggregates {
	return dto.Aggregates{
		ApprovedCount:      agg.ApprovedCount,
		TotalApprovedCoins: agg.TotalApprovedCoins,
		AllApproved:        agg.AllApproved,
	}
}

func sessionDTO(view workflowsvc.SessionView) dto.ReviewSessionResponse {
	records := make([]dto.SubmissionRecord, 0, len(view.Records))
	for _, record := range view.Records {
		records = append(records, dto.SubmissionRecord{
			ID:          record.ID,
			Title:       record.Title,
			RewardCoins: record.RewardCoins,
			SubmittedAt: record.SubmittedAt,
			ReviewState: string(record.ReviewState),
			ScreenURL:   view.ScreenURLs[record.ID],
		})
	}
	return dto.ReviewSessionResponse{
		SessionID:  view.SessionID,
		User:       userDTO(view.User),
		Records:    records,
		Aggregates: aggregatesDTO(view.Aggregates),
	}
}

func finalizeDTO(outcome workflowsvc.FinalizeOutcome) dto.FinalizeResponse {
	return dto.FinalizeResponse{
		SessionID:              outcome.SessionID,
		ApprovedCount:          outcome.Result.ApprovedCount,
		TotalApprovedCoins:     outcome.Result.TotalApprovedCoins,
		AllApproved:            outcome.Result.AllApproved,
		HasApprovedScreenshots: outcome.Result.HasApprovedScreenshots,
		Credited:               outcome.Credited,
		User:                   userDTO(outcome.User),
	}
}
