package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/middleware"
	"github.com/chuyu5762/guestbook-backend/pkg/response"
	"github.com/chuyu5762/guestbook-backend/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssetHandler 静态资源处理器
// 既服务嵌入的内置资源，也按配置从上游代理资源
type AssetHandler struct {
	client *http.Client
}

// NewAssetHandler 创建静态资源处理器
func NewAssetHandler() *AssetHandler {
	return &AssetHandler{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Proxy 按配置路由从上游原样转发资源
// 上游非 2xx 或不可达时返回 502
func (h *AssetHandler) Proxy(route config.AssetRoute) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, route.UpstreamURL, nil)
		if err != nil {
			response.Fail(c, http.StatusBadGateway, response.MsgBadGateway)
			return
		}

		resp, err := h.client.Do(req)
		if err != nil {
			middleware.GetLogger().Warn("上游资源请求失败",
				zap.String("path", route.Path),
				zap.String("upstream", route.UpstreamURL),
				zap.Error(err),
			)
			response.Fail(c, http.StatusBadGateway, response.MsgBadGateway)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			middleware.GetLogger().Warn("上游资源响应异常",
				zap.String("path", route.Path),
				zap.Int("status", resp.StatusCode),
			)
			response.Fail(c, http.StatusBadGateway, response.MsgBadGateway)
			return
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			response.Fail(c, http.StatusBadGateway, response.MsgBadGateway)
			return
		}

		if route.CacheControl != "" {
			c.Header("Cache-Control", route.CacheControl)
		}
		c.Data(http.StatusOK, route.ContentType, body)
	}
}

// Stylesheet 内置样式表
// GET /static/style.css
func (h *AssetHandler) Stylesheet(c *gin.Context) {
	h.serveEmbedded(c, "style.css", "text/css; charset=utf-8")
}

// Script 内置客户端脚本
// GET /static/script.js
func (h *AssetHandler) Script(c *gin.Context) {
	h.serveEmbedded(c, "script.js", "application/javascript; charset=utf-8")
}

func (h *AssetHandler) serveEmbedded(c *gin.Context, name, contentType string) {
	data, err := web.Static(name)
	if err != nil {
		response.NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}
