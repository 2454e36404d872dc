package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func managerTestRouter(signingKey []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", JWTAuth(signingKey), RequireManager(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUsername(c.Request.Context())})
	})
	return r
}

func TestJWTAuthAcceptsGeneratedToken(t *testing.T) {
	t.Parallel()

	cfg := JWTConfig{SigningKey: []byte("0123456789abcdef0123456789abcdef"), Issuer: "dossier", ExpiresIn: time.Hour}
	token, _, err := GenerateToken(cfg, "manager", "manager", []string{RoleManager})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := managerTestRouter(cfg.SigningKey)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	t.Parallel()

	r := managerTestRouter([]byte("0123456789abcdef0123456789abcdef"))

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestJWTAuthRejectsWrongKey(t *testing.T) {
	t.Parallel()

	cfg := JWTConfig{SigningKey: []byte("0123456789abcdef0123456789abcdef"), Issuer: "dossier", ExpiresIn: time.Hour}
	token, _, err := GenerateToken(cfg, "manager", "manager", []string{RoleManager})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := managerTestRouter([]byte("another-signing-key-with-32-bytes"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireManagerRejectsOtherRoles(t *testing.T) {
	t.Parallel()

	cfg := JWTConfig{SigningKey: []byte("0123456789abcdef0123456789abcdef"), Issuer: "dossier", ExpiresIn: time.Hour}
	token, _, err := GenerateToken(cfg, "builder-7", "builder-7", []string{"builder"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := managerTestRouter(cfg.SigningKey)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
