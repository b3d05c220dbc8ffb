package backendhttp

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Zerokoinhub/admin-console/internal/domain/model"
)

type UsersRepo struct {
	client *Client
}

func NewUsersRepo(client *Client) *UsersRepo {
	return &UsersRepo{client: client}
}

func (r *UsersRepo) FetchUser(ctx context.Context, userID string) (model.User, error) {
	response := struct {
		User model.User `json:"user"`
	}{}
	err := r.client.DoJSON(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(userID), nil, &response)
	if err != nil {
		return model.User{}, err
	}
	return response.User, nil
}

func (r *UsersRepo) SetBanned(ctx context.Context, userID string) error {
	return r.client.DoJSON(ctx, http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/ban", nil, nil)
}

func (r *UsersRepo) SetUnbanned(ctx context.Context, userID string) error {
	return r.client.DoJSON(ctx, http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/unban", nil, nil)
}

// CreditBalance adds amount coins to the user and returns the backend's
// authoritative view of the user afterwards.
func (r *UsersRepo) CreditBalance(ctx context.Context, userID string, amount int64) (model.User, error) {
	request := map[string]interface{}{
		"amount": amount,
	}
	response := struct {
		User model.User `json:"user"`
	}{}
	err := r.client.DoJSON(ctx, http.MethodPost, "/admin/users/"+url.PathEscape(userID)+"/balance/credit", request, &response)
	if err != nil {
		return model.User{}, err
	}
	return response.User, nil
}
