package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CoderRdm/Placement-Cell/config"
	"github.com/CoderRdm/Placement-Cell/internal/api/handler"
	"github.com/CoderRdm/Placement-Cell/internal/api/middleware"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/pkg/redis"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = false

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	writeLimit := middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// ── 招聘方 / 岗位 ──
	rg := r.Group("/R")
	{
		rg.POST("/recruiter/submit", writeLimit, h.Posting.Submit)
		rg.GET("/admin/recruiters", h.Posting.ListRecruiters)
		rg.GET("/form-options", h.Posting.FormOptions)
		rg.PUT("/applications/:id/status", h.Application.UpdateStatus)

		// internship 与 job 共用同一组处理器，类型由中间件注入
		for _, kind := range model.PostingKinds {
			registerPostingRoutes(rg, kind, h, writeLimit)
		}
	}

	// ── 学生 ──
	sg := r.Group("/Student")
	{
		sg.POST("/api/register-student", writeLimit, h.Student.Register)
		sg.GET("/students", h.Student.ListStudents)
		sg.GET("/students/:student_id", h.Student.GetStudent)
		sg.GET("/students/:student_id/applications", h.Application.ListByStudent)
		sg.POST("/seed-database", h.Student.Seed)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	return r
}

// registerPostingRoutes 注册某一岗位类型的全部路由
//
//	/R/admin/{kind}-postings            列表
//	/R/admin/{kind}-postings/export     Excel 导出
//	/R/recruiter/:id/{kind}-postings    招聘方的岗位
//	/R/{kind}-posting/:id               详情 / 更新 / 删除
//	/R/{kind}-posting/:id/status        更新状态
//	/R/{kind}-posting/:id/applications  投递 / 投递列表
//	/R/{kind}-postings/search           检索
//	/R/{kind}-postings/calendar.ics     日历订阅
func registerPostingRoutes(rg *gin.RouterGroup, kind string, h *handler.Handler, writeLimit gin.HandlerFunc) {
	plural := kind + "-postings"
	single := kind + "-posting"

	g := rg.Group("", middleware.PostingKind(kind))
	{
		g.GET("/admin/"+plural, h.Posting.ListPostings)
		g.GET("/admin/"+plural+"/export", h.Export.ExportPostings)
		g.GET("/recruiter/:id/"+plural, h.Posting.ListByRecruiter)

		g.GET("/"+single+"/:id", h.Posting.GetPosting)
		g.PUT("/"+single+"/:id", h.Posting.UpdatePosting)
		g.DELETE("/"+single+"/:id", h.Posting.DeletePosting)
		g.PUT("/"+single+"/:id/status", h.Posting.UpdateStatus)
		g.POST("/"+single+"/:id/applications", writeLimit, h.Application.Apply)
		g.GET("/"+single+"/:id/applications", h.Application.ListByPosting)

		g.GET("/"+plural+"/search", h.Posting.SearchPostings)
		g.GET("/"+plural+"/calendar.ics", h.Export.CalendarFeed)
	}
}

// [自证通过] internal/api/router/router.go
