package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"etik/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func newEngine(cfg *config.Config, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuthWithConfig(cfg)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("user_role")})
	})
	r.GET("/protected", chain...)
	return r
}

func TestJWTAuth(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signed(t, "other", jwt.MapClaims{"type": "access", "exp": exp}), http.StatusUnauthorized},
		{"refresh token", "Bearer " + signed(t, "test-secret", jwt.MapClaims{"type": "refresh", "exp": exp}), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, "test-secret", jwt.MapClaims{"type": "access", "exp": time.Now().Add(-time.Minute).Unix()}), http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, "test-secret", jwt.MapClaims{"type": "access", "exp": exp, "user_id": "op-1", "role": "STAFF"}), http.StatusOK},
	}

	r := newEngine(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	r := newEngine(cfg, RequireOwner())
	exp := time.Now().Add(time.Hour).Unix()

	for role, want := range map[string]int{"OWNER": http.StatusOK, "STAFF": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "test-secret", jwt.MapClaims{"type": "access", "exp": exp, "role": role}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("role %s: status = %d, want %d", role, w.Code, want)
		}
	}
}
