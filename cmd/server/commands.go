package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CoderRdm/Placement-Cell/internal/api/handler"
	"github.com/CoderRdm/Placement-Cell/internal/api/router"
	"github.com/CoderRdm/Placement-Cell/internal/model"
	"github.com/CoderRdm/Placement-Cell/internal/repository"
	"github.com/CoderRdm/Placement-Cell/internal/service"
	"github.com/CoderRdm/Placement-Cell/pkg/database"
	"github.com/CoderRdm/Placement-Cell/pkg/redis"
	"github.com/CoderRdm/Placement-Cell/pkg/response"
	"github.com/CoderRdm/Placement-Cell/pkg/validation"
)

// ────────────────────── serve ──────────────────────

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "执行迁移并启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	cfg, logger := a.cfg, a.logger
	logger.Info("应用启动中...",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	response.SetExposeErrors(cfg.App.IsDevelopment())
	if err := validation.Setup(model.ValidationEnums()); err != nil {
		return err
	}

	// 4. 执行数据库迁移
	if err := a.migrate(); err != nil {
		logger.Error("数据库迁移失败", zap.Error(err))
		return err
	}

	// 5. 连接 Redis（可选：未启用或连接失败时写接口不限流）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，限流功能将不可用", zap.Error(err))
			rdb = nil
		}
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(a.db)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc, repo)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP 服务器异常", zap.Error(err))
			return err
		}
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
		return err
	}

	logger.Info("服务器已关闭")
	return nil
}

// ────────────────────── migrate ──────────────────────

func newMigrateCmd() *cobra.Command {
	var down int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "执行数据库迁移后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if down > 0 {
				sqlDB, err := a.db.DB()
				if err != nil {
					return err
				}
				return database.RollbackMigrations(sqlDB, down, a.logger)
			}
			return a.migrate()
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "回滚的迁移步数（0 表示向上迁移）")
	return cmd
}

// ────────────────────── seed ──────────────────────

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "清空学生及参考数据并写入种子数据（仅开发环境）",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.migrate(); err != nil {
				return err
			}

			repo := repository.NewRepository(a.db)
			seeder := service.NewSeedService(repo, a.cfg.App.IsDevelopment(), a.logger)
			resp, err := seeder.Seed(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d degrees, %d specializations\n",
				resp.Categories, resp.Degrees, resp.Specializations)
			return nil
		},
	}
}
