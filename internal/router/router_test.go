package router

import (
	"StreamHub/internal/handler"
	"StreamHub/internal/model"
	"StreamHub/internal/service"
	"StreamHub/pkg/apperr"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubTokens map[string]service.Caller

func (s stubTokens) ValidateToken(token string) (service.Caller, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return service.Caller{}, apperr.Unauthorized("无效的授权令牌")
}

// 只测路由和中间件，请求到不了service，所以service都可以是nil
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handlers{
		Auth:     handler.NewAuthHandler(nil),
		Video:    handler.NewVideoHandler(nil),
		Comment:  handler.NewCommentHandler(nil),
		Like:     handler.NewLikeHandler(nil),
		Channel:  handler.NewChannelHandler(nil),
		Playlist: handler.NewPlaylistHandler(nil),
		Admin:    handler.NewAdminHandler(nil),
	}
	tokens := stubTokens{"user": {UserID: "1", Username: "alice", Role: model.RoleUser}}
	return SetupRouter(h, tokens, []string{"https://app.example"})
}

func TestPing(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/ping", "/api/v1/ping"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()
	routes := [][2]string{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/videos/upload-request"},
		{http.MethodDelete, "/api/v1/videos/v1"},
		{http.MethodPost, "/api/v1/videos/v1/comments"},
		{http.MethodDelete, "/api/v1/videos/comments/c1"},
		{http.MethodPost, "/api/v1/videos/v1/likes"},
		{http.MethodGet, "/api/v1/channels/bob/subscription"},
		{http.MethodPost, "/api/v1/channels/bob/subscribe"},
		{http.MethodDelete, "/api/v1/channels/bob/subscribe"},
		{http.MethodPost, "/api/v1/playlists"},
		{http.MethodPut, "/api/v1/playlists/p1"},
		{http.MethodDelete, "/api/v1/playlists/p1"},
		{http.MethodPost, "/api/v1/playlists/p1/videos"},
		{http.MethodDelete, "/api/v1/playlists/p1/videos/v1"},
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodDelete, "/api/v1/admin/videos/v1"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt[0], rt[1], nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", rt[0], rt[1], w.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r := newTestRouter()
	routes := [][2]string{
		{http.MethodGet, "/api/v1/admin/users"},
		{http.MethodPost, "/api/v1/admin/users"},
		{http.MethodPut, "/api/v1/admin/users/u1/role"},
		{http.MethodDelete, "/api/v1/admin/users/u1"},
		{http.MethodGet, "/api/v1/admin/videos"},
		{http.MethodPut, "/api/v1/admin/videos/v1"},
		{http.MethodDelete, "/api/v1/admin/comments/c1"},
	}
	for _, rt := range routes {
		req := httptest.NewRequest(rt[0], rt[1], nil)
		req.Header.Set("Authorization", "Bearer user")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: status = %d, want 403", rt[0], rt[1], w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/videos", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("allow origin = %q", got)
	}

	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 0 {
		t.Errorf("wildcard config = %+v", cfg)
	}
}
