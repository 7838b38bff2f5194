package middleware

import (
	"StreamHub/internal/model"
	"StreamHub/internal/service"
	"StreamHub/pkg/apperr"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubValidator map[string]service.Caller

func (s stubValidator) ValidateToken(token string) (service.Caller, error) {
	caller, ok := s[token]
	if !ok {
		return service.Caller{}, apperr.Unauthorized("无效的授权令牌")
	}
	return caller, nil
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := stubValidator{
		"user-token":  {UserID: "1", Username: "alice", Role: model.RoleUser},
		"admin-token": {UserID: "2", Username: "admin", Role: model.RoleAdmin},
	}
	r := gin.New()
	r.Use(RequestLogger())
	authed := r.Group("/", AuthMiddleware(tokens))
	authed.GET("/me", func(c *gin.Context) {
		caller, _ := CurrentCaller(c)
		c.JSON(http.StatusOK, gin.H{"username": caller.Username})
	})
	authed.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestEngine()
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic user-token", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer user-token", http.StatusOK},
		{"lowercase scheme", "bearer user-token", http.StatusOK},
	}
	for _, c := range cases {
		w := doRequest(r, "/me", c.header)
		if w.Code != c.status {
			t.Errorf("%s: status = %d, want %d", c.name, w.Code, c.status)
		}
		if w.Code == http.StatusUnauthorized {
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("%s: body = %s", c.name, w.Body.String())
			}
		}
	}

	w := doRequest(r, "/me", "Bearer user-token")
	if w.Body.String() != `{"username":"alice"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := newTestEngine()
	if w := doRequest(r, "/admin", "Bearer user-token"); w.Code != http.StatusForbidden {
		t.Errorf("user: status = %d, want 403", w.Code)
	}
	if w := doRequest(r, "/admin", "Bearer admin-token"); w.Code != http.StatusNoContent {
		t.Errorf("admin: status = %d, want 204", w.Code)
	}
	if w := doRequest(r, "/admin", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}
}
