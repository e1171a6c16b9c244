package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
)

// PostingKindKey 岗位类型在 Gin 上下文中的键，由 middleware.PostingKind 写入
const PostingKindKey = "posting_kind"

var errPostingKindMissing = errors.New("posting kind not set on route")

// MustGetPostingKind 从 Gin 上下文中安全提取岗位类型。
// 路由未挂载 PostingKind 中间件时返回 false 并写入 500 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetPostingKind(c *gin.Context) (string, bool) {
	v, exists := c.Get(PostingKindKey)
	if !exists {
		response.InternalError(c, "Internal server error", errPostingKindMissing)
		return "", false
	}
	kind, ok := v.(string)
	if !ok || !model.IsValidPostingKind(kind) {
		response.InternalError(c, "Internal server error", errPostingKindMissing)
		return "", false
	}
	return kind, true
}

// kindLabel internship → Internship，用于拼接响应消息
func kindLabel(kind string) string {
	if kind == "" {
		return ""
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}
