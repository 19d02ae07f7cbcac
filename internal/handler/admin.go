package handler

import (
	"net/http"
	"strings"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/middleware"
	"github.com/chuyu5762/guestbook-backend/internal/service"
	"github.com/chuyu5762/guestbook-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 管理后台处理器
type AdminHandler struct {
	entryService service.EntryService
	guestbook    *config.GuestbookConfig
}

// NewAdminHandler 创建管理后台处理器
func NewAdminHandler(entrySvc service.EntryService, cfg *config.GuestbookConfig) *AdminHandler {
	return &AdminHandler{
		entryService: entrySvc,
		guestbook:    cfg,
	}
}

// ModerateRequest 审核动作请求
type ModerateRequest struct {
	ID     uint   `form:"id"`
	Action string `form:"action"`
}

// Index 管理后台列表页（管理投影，含待审核留言）
// GET /admin
func (h *AdminHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	// 管理边界不吞故障：读失败直接 500
	entries, err := h.entryService.ListAll(ctx)
	if err != nil {
		middleware.GetLogger().Error("读取管理列表失败", zap.Error(err))
		response.ServerError(c)
		return
	}

	pending, err := h.entryService.CountPending(ctx)
	if err != nil {
		middleware.GetLogger().Error("统计待审核留言失败", zap.Error(err))
		response.ServerError(c)
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":        h.guestbook.SiteTitle,
		"Entries":      entries,
		"PendingCount": pending,
	})
}

// Moderate 执行一次审核动作后跳回列表页
// POST /admin/moderate
func (h *AdminHandler) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid moderation request")
		return
	}
	if req.ID == 0 {
		// id 缺失或不是数字
		response.BadRequest(c, "invalid entry id")
		return
	}

	action := service.ParseAction(req.Action)
	if err := h.entryService.Moderate(c.Request.Context(), req.ID, action); err != nil {
		middleware.GetLogger().Error("审核动作执行失败",
			zap.Uint("id", req.ID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		response.ServerError(c)
		return
	}

	middleware.GetLogger().Info("审核动作",
		zap.Uint("id", req.ID),
		zap.String("action", req.Action),
	)
	c.Redirect(http.StatusFound, "/admin")
}

// NoRoute 未注册路由的兜底处理
// 管理前缀下的任何方法和路径都先经过认证门：未通过返回 401 质询，
// 通过后渲染管理列表页；其余未匹配路径返回纯文本 404
func NoRoute(gate gin.HandlerFunc, admin *AdminHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/admin") {
			gate(c)
			if c.IsAborted() {
				return
			}
			admin.Index(c)
			return
		}
		c.String(http.StatusNotFound, response.MsgNotFound)
	}
}
