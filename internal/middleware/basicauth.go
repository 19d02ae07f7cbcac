package middleware

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/chuyu5762/guestbook-backend/internal/config"
	"github.com/chuyu5762/guestbook-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// CheckBasicAuth 校验 Authorization 头中的 Basic 凭据
// 只接受 Basic 方案；负载按第一个冒号拆成用户名和密码，
// 与配置值做精确比较。任何畸形输入都返回 false，不会 panic
//
// 注意：字符串相等比较不是常明时间的，存在时序侧信道；
// 保留该行为以维持与既有部署的可观测一致性
func CheckBasicAuth(header, username, password string) bool {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return false
	}

	payload, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return false
	}

	// 只在第一个冒号处拆分，密码本身可以包含冒号
	parts := strings.SplitN(string(payload), ":", 2)
	if len(parts) != 2 {
		return false
	}

	return parts[0] == username && parts[1] == password
}

// BasicAuth 管理后台认证中间件
// 认证失败时返回 401 并携带配置 realm 的质询头
func BasicAuth(cfg *config.AdminConfig) gin.HandlerFunc {
	challenge := fmt.Sprintf("Basic realm=%q", cfg.Realm)

	return func(c *gin.Context) {
		if !CheckBasicAuth(c.GetHeader("Authorization"), cfg.Username, cfg.Password) {
			c.Header("WWW-Authenticate", challenge)
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Body{
				Success: false,
				Error:   response.MsgUnauthorized,
			})
			return
		}
		c.Next()
	}
}
