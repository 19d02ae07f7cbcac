package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/middleware"
	"github.com/chuyu5762/guestbook-backend/internal/model"
	"github.com/chuyu5762/guestbook-backend/internal/service"
	"github.com/chuyu5762/guestbook-backend/web"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 组装管理路由：认证门 + 管理处理器
func setupAdminRouter(t *testing.T) (*gin.Engine, *memEntryRepo) {
	t.Helper()

	guestbookCfg := &config.GuestbookConfig{
		SiteTitle:          "Test Guestbook",
		EntriesLimit:       50,
		ModerationRequired: true,
	}
	adminCfg := &config.AdminConfig{
		Username: "admin",
		Password: "secret",
		Realm:    "Guestbook Admin",
	}

	repo := newMemEntryRepo()
	svc := service.NewEntryService(repo, nil, guestbookCfg)
	h := NewAdminHandler(svc, guestbookCfg)

	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())
	admin := router.Group("/admin", middleware.BasicAuth(adminCfg))
	{
		admin.GET("", h.Index)
		admin.GET("/*path", h.Index)
		admin.POST("/moderate", h.Moderate)
	}
	router.NoRoute(NoRoute(middleware.BasicAuth(adminCfg), h))

	return router, repo
}

func adminAuthHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
}

func adminRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", adminAuthHeader())
	return req
}

func TestAdminHandler_RequiresAuth(t *testing.T) {
	router, _ := setupAdminRouter(t)

	// 无凭据
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Guestbook Admin"`, w.Header().Get("WWW-Authenticate"))

	// 错误凭据
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:wrong")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 审核接口同样被保护
	w = httptest.NewRecorder()
	form := url.Values{}
	form.Set("id", "1")
	form.Set("action", "approve")
	req = httptest.NewRequest(http.MethodPost, "/admin/moderate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_UnmatchedMethodRequiresAuth(t *testing.T) {
	router, _ := setupAdminRouter(t)

	// 未注册的方法/路径组合同样在认证门之后
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/admin"},
		{http.MethodPost, "/admin/other"},
		{http.MethodDelete, "/admin"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, `Basic realm="Guestbook Admin"`, w.Header().Get("WWW-Authenticate"))
	}
}

func TestAdminHandler_UnmatchedMethodAuthenticated(t *testing.T) {
	router, _ := setupAdminRouter(t)

	// 认证通过后按调度规则渲染列表页
	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/other", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin")
}

func TestNoRouteOutsideAdmin(t *testing.T) {
	router, _ := setupAdminRouter(t)

	// 管理前缀之外的未匹配路径仍是纯文本 404，无认证质询
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", w.Body.String())
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

func TestAdminHandler_IndexShowsAdminProjection(t *testing.T) {
	router, repo := setupAdminRouter(t)

	repo.Create(context.Background(), &model.Entry{
		Name:      "Ann",
		Message:   "pending message",
		Approved:  false,
		IPAddress: "203.0.113.7",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// 管理投影包含待审核留言、审核状态与来源 IP
	assert.Contains(t, body, "pending message")
	assert.Contains(t, body, "203.0.113.7")
	assert.Contains(t, body, "1 pending")
}

func TestAdminHandler_IndexSubPath(t *testing.T) {
	router, _ := setupAdminRouter(t)

	// admin 前缀下的其它 GET 路径也渲染列表页
	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodGet, "/admin/anything", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin")
}

func TestAdminHandler_ModerateApprove(t *testing.T) {
	router, repo := setupAdminRouter(t)

	entry := &model.Entry{Name: "Ann", Message: "hello", Approved: false}
	repo.Create(context.Background(), entry)

	form := url.Values{}
	form.Set("id", "1")
	form.Set("action", "approve")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/moderate", form))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	assert.True(t, repo.entries[1].Approved)
}

func TestAdminHandler_ModerateDelete(t *testing.T) {
	router, repo := setupAdminRouter(t)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		repo.Create(ctx, &model.Entry{Name: "x", Message: "y"})
	}

	form := url.Values{}
	form.Set("id", "5")
	form.Set("action", "delete")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/moderate", form))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	_, exists := repo.entries[5]
	assert.False(t, exists, "id 5 应已删除")
	assert.Len(t, repo.entries, 4)
}

func TestAdminHandler_ModerateUnknownActionDisapproves(t *testing.T) {
	router, repo := setupAdminRouter(t)

	repo.Create(context.Background(), &model.Entry{Name: "Ann", Message: "hi", Approved: true})

	// 未知动作按撤下处理（历史行为）
	form := url.Values{}
	form.Set("id", "1")
	form.Set("action", "bogus")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/moderate", form))

	require.Equal(t, http.StatusFound, w.Code)
	assert.False(t, repo.entries[1].Approved)
}

func TestAdminHandler_ModerateMissingIDIsNoop(t *testing.T) {
	router, repo := setupAdminRouter(t)

	repo.Create(context.Background(), &model.Entry{Name: "Ann", Message: "hi", Approved: true})

	// 不存在的 id：无错误、无变化
	form := url.Values{}
	form.Set("id", "9999")
	form.Set("action", "delete")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/moderate", form))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Len(t, repo.entries, 1)
	assert.True(t, repo.entries[1].Approved)
}

func TestAdminHandler_ModerateInvalidID(t *testing.T) {
	router, _ := setupAdminRouter(t)

	form := url.Values{}
	form.Set("id", "not-a-number")
	form.Set("action", "delete")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodPost, "/admin/moderate", form))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_IndexStorageFailure(t *testing.T) {
	router, repo := setupAdminRouter(t)
	repo.failList = true

	// 管理边界不吞故障
	w := httptest.NewRecorder()
	router.ServeHTTP(w, adminRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
