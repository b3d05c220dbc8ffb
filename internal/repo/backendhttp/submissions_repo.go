package backendhttp

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

type SubmissionsRepo struct {
	client *Client
}

func NewSubmissionsRepo(client *Client) *SubmissionsRepo {
	return &SubmissionsRepo{client: client}
}

func (r *SubmissionsRepo) FetchSubmissions(ctx context.Context, userID string) ([]model.SubmissionRecord, error) {
	response := struct {
		Submissions []model.SubmissionRecord `json:"submissions"`
	}{}
	err := r.client.DoJSON(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(userID)+"/screenshots", nil, &response)
	if err != nil {
		return nil, err
	}
	return response.Submissions, nil
}
