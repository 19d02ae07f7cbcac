// Package service 业务逻辑层
package service

import (
	"strings"
)

// Action 审核动作
type Action int

const (
	// ActionDisapprove 撤下留言（未知动作的兜底分支）
	ActionDisapprove Action = iota
	// ActionApprove 通过留言
	ActionApprove
	// ActionDelete 删除留言
	ActionDelete
)

// ParseAction 解析表单提交的审核动作
// 除 "approve" 和 "delete" 外的任何值都按撤下处理，
// 与历史行为保持一致；如需拒绝未知动作只改这里
func ParseAction(s string) Action {
	switch s {
	case "approve":
		return ActionApprove
	case "delete":
		return ActionDelete
	default:
		return ActionDisapprove
	}
}

// IsRejected 判断留言内容是否命中违禁词
// 大小写不敏感的子串匹配，不做词边界处理（已知限制）
func IsRejected(message string, bannedWords []string) bool {
	lower := strings.ToLower(message)
	for _, word := range bannedWords {
		if word == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

// InitialApprovalState 返回新留言的初始审核状态
// 开启审核时新留言为待审核（false），否则直接发布（true）
func InitialApprovalState(moderationRequired bool) bool {
	return !moderationRequired
}
