package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chathub/backend/internal/auth"
	"github.com/chathub/backend/internal/db"
	"github.com/chathub/backend/internal/hub"
	"github.com/chathub/backend/internal/repository"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *auth.Verifier, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewTestDB()
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	service := hub.NewService(repository.NewChannelRepository(database))
	verifier := auth.NewVerifier("test-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api")
	api.Use(AuthMiddleware(verifier))
	NewChannelHandler(service).RegisterRoutes(api)

	cleanup := func() {
		database.Close()
	}
	return r, verifier, cleanup
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChannelAPI_RequiresAuthentication(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, r, http.MethodGet, "/api/channels", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/channels", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with invalid token, got %d", w.Code)
	}
}

func TestChannelAPI_CreateListDelete(t *testing.T) {
	r, verifier, cleanup := setupTestRouter(t)
	defer cleanup()

	token, err := verifier.Issue("alice")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	// Create
	w := doRequest(t, r, http.MethodPost, "/api/channels", token, map[string]string{"title": "General"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created ChannelResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if created.ID == 0 || created.Title != "General" {
		t.Errorf("Unexpected channel: %+v", created)
	}

	// List
	w = doRequest(t, r, http.MethodGet, "/api/channels", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var listed []ChannelResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "General" {
		t.Errorf("Unexpected list: %+v", listed)
	}

	// Delete
	w = doRequest(t, r, http.MethodDelete, "/api/channels/1", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/channels", token, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected empty list after delete, got %+v", listed)
	}
}

func TestChannelAPI_Validation(t *testing.T) {
	r, verifier, cleanup := setupTestRouter(t)
	defer cleanup()

	token, err := verifier.Issue("alice")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	t.Run("missing title", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/channels", token, map[string]string{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("non-numeric channel id", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/channels/abc", token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("delete of unknown channel succeeds", func(t *testing.T) {
		w := doRequest(t, r, http.MethodDelete, "/api/channels/404", token, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", w.Code)
		}
	})
}
