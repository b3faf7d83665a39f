package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskhive/taskhive/internal/models"
)

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newTestRouter(&mockAuthService{}, &mockUserService{}, &mockTaskService{})

	w := doRequest(router, http.MethodGet, "/api/tasks", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newTestRouter(&mockAuthService{}, &mockUserService{}, &mockTaskService{})

	tests := []string{
		"sometoken",
		"Basic sometoken",
		"Bearer",
	}
	for _, header := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: got status %d, want %d", header, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	auth := &mockAuthService{
		ParseTokenFunc: func(string) (string, error) {
			return "", errors.New("token is expired")
		},
	}
	router := newTestRouter(auth, &mockUserService{}, &mockTaskService{})

	w := doRequest(router, http.MethodGet, "/api/tasks", "expired-token", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePassesUserID(t *testing.T) {
	var gotUserID string
	tasks := &mockTaskService{
		ListTasksFunc: func(_ context.Context, userID string) ([]*models.Task, error) {
			gotUserID = userID
			return []*models.Task{}, nil
		},
	}
	router := newTestRouter(acceptAnyToken("user-42"), &mockUserService{}, tasks)

	w := doRequest(router, http.MethodGet, "/api/tasks", "sometoken", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if gotUserID != "user-42" {
		t.Errorf("handler saw user id %q, want %q", gotUserID, "user-42")
	}
}
