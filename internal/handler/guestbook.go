// Package handler HTTP 处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/internal/middleware"
	"github.com/chuyu5762/guestbook-backend/internal/service"
	"github.com/chuyu5762/guestbook-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GuestbookHandler 公开留言板处理器
type GuestbookHandler struct {
	entryService service.EntryService
	guestbook    *config.GuestbookConfig
}

// NewGuestbookHandler 创建公开留言板处理器
func NewGuestbookHandler(entrySvc service.EntryService, cfg *config.GuestbookConfig) *GuestbookHandler {
	return &GuestbookHandler{
		entryService: entrySvc,
		guestbook:    cfg,
	}
}

// SubmitRequest 留言提交请求
type SubmitRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Website string `form:"website"`
	Message string `form:"message"`
}

// Index 公开首页
// GET /
func (h *GuestbookHandler) Index(c *gin.Context) {
	entries := h.entryService.ListPublic(c.Request.Context())
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":   h.guestbook.SiteTitle,
		"Entries": entries,
	})
}

// ListEntries 公开留言列表
// GET /api/entries
func (h *GuestbookHandler) ListEntries(c *gin.Context) {
	entries := h.entryService.ListPublic(c.Request.Context())
	c.JSON(http.StatusOK, entries)
}

// Submit 提交留言
// POST /api/submit
func (h *GuestbookHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid submission")
		return
	}

	entry, err := h.entryService.Submit(c.Request.Context(), &service.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Website:   req.Website,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		// 校验错误与内容违规错误返回给用户，其余一律笼统处理
		if errors.Is(err, service.ErrFieldsRequired) || errors.Is(err, service.ErrContentRejected) {
			response.BadRequest(c, err.Error())
			return
		}
		middleware.GetLogger().Error("处理留言提交失败",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.ServerError(c)
		return
	}

	middleware.GetLogger().Info("新留言",
		zap.Uint("id", entry.ID),
		zap.Bool("approved", entry.Approved),
	)
	response.OK(c, "Added")
}
