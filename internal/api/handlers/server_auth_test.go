package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bricktickler.io/dossier/internal/api/middleware"
)

func newAuthServer(t *testing.T) *Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("trowel-and-error"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewServer(Deps{
		JWT: middleware.JWTConfig{
			SigningKey: []byte("0123456789abcdef0123456789abcdef"),
			Issuer:     "dossier",
			ExpiresIn:  time.Hour,
		},
		ManagerUsername:     "manager",
		ManagerPasswordHash: hash,
	})
}

func TestLoginIssuesManagerToken(t *testing.T) {
	r := newTestRouter(newAuthServer(t))

	w := doJSON(r, http.MethodPost, "/auth/login", `{"username": "manager", "password": "trowel-and-error"}`, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Fatalf("expires_at = %s, not in the future", resp.ExpiresAt)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := newTestRouter(newAuthServer(t))

	cases := []string{
		`{"username": "manager", "password": "wrong"}`,
		`{"username": "intruder", "password": "trowel-and-error"}`,
	}
	for _, body := range cases {
		w := doJSON(r, http.MethodPost, "/auth/login", body, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: status = %d, want 401", body, w.Code)
		}
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	r := newTestRouter(newAuthServer(t))

	w := doJSON(r, http.MethodPost, "/auth/login", `{"username": "manager"}`, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
