package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/CoderRdm/Placement-Cell/internal/api/handler"
)

// PostingKind 为路由组固定岗位类型（internship / job），handler 通过 MustGetPostingKind 读取
func PostingKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handler.PostingKindKey, kind)
		c.Next()
	}
}
