package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 标准响应结构
// 成功时带 message，失败时带 error，两者不会同时出现
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// 常用错误消息
// 文本面向公开访客，保持英文且不泄露内部细节
const (
	MsgServerError  = "Failed to process submission"
	MsgUnauthorized = "Unauthorized"
	MsgNotFound     = "Not found"
	MsgBadGateway   = "Upstream asset unavailable"
)

// OK 成功响应
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Body{
		Success: true,
		Message: message,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, status int, errMsg string) {
	c.JSON(status, Body{
		Success: false,
		Error:   errMsg,
	})
}

// BadRequest 参数或内容错误
func BadRequest(c *gin.Context, errMsg string) {
	Fail(c, http.StatusBadRequest, errMsg)
}

// ServerError 服务器内部错误，对外统一使用笼统消息
func ServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, MsgServerError)
}

// NotFound 路由未匹配
func NotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, MsgNotFound)
}
