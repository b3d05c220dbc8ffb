package backendhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientDoJSONSetsRequiredHeaders(t *testing.T) {
	t.Parallel()

	const token = "console-secret"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+token {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected Content-Type: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"value":1}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, token, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	response := struct {
		Value int `json:"value"`
	}{}
	if err := client.DoJSON(context.Background(), http.MethodPost, "/admin/test", map[string]int{"x": 1}, &response); err != nil {
		t.Fatalf("do json: %v", err)
	}
	if response.Value != 1 {
		t.Fatalf("unexpected decoded value: %d", response.Value)
	}
}

func TestClientTreatsFailureFlagAsFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 200 with success=false is still a failure.
		_, _ = w.Write([]byte(`{"success":false,"message":"user is locked"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "token", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.DoJSON(context.Background(), http.MethodPost, "/admin/test", nil, nil)
	if err == nil {
		t.Fatal("expected failure for success=false body")
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", reqErr.StatusCode)
	}
}

func TestClientClassifiesHTTPStatuses(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		status int
	}{
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not found", status: http.StatusNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte("error"))
			}))
			defer server.Close()

			client, err := NewClient(server.URL, "token", time.Second)
			if err != nil {
				t.Fatalf("new client: %v", err)
			}

			err = client.DoJSON(context.Background(), http.MethodGet, "/admin/test", nil, nil)
			if err == nil {
				t.Fatalf("expected error for status %d", tc.status)
			}

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected RequestError, got %T", err)
			}
			if reqErr.StatusCode != tc.status {
				t.Fatalf("status mismatch: got=%d want=%d", reqErr.StatusCode, tc.status)
			}
			if !errors.Is(err, ErrBackendUnavailable) {
				t.Fatalf("expected ErrBackendUnavailable, got %v", err)
			}
		})
	}
}

func TestClientClassifiesTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(120 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "token", 30*time.Millisecond)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.DoJSON(context.Background(), http.MethodGet, "/admin/test", nil, nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable for timeout, got %v", err)
	}
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"", "   ", "not-a-url"} {
		if _, err := NewClient(baseURL, "token", time.Second); err == nil {
			t.Fatalf("expected error for base url %q", baseURL)
		}
	}
}

func TestUsersRepoFetchUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/u42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u42","display_name":"miner","balance":500,"access_state":"active"}}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "token", time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	user, err := NewUsersRepo(client).FetchUser(context.Background(), "u42")
	if err != nil {
		t.Fatalf("fetch user: %v", err)
	}
	if user.ID != "u42" || user.Balance != 500 {
		t.Fatalf("unexpected user: %+v", user)
	}
}
