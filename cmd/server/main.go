package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CoderRdm/Placement-Cell/config"
	"github.com/CoderRdm/Placement-Cell/pkg/database"
	applogger "github.com/CoderRdm/Placement-Cell/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "placement-cell",
		Short:        "Campus placement portal backend",
		SilenceUsage: true,
		// 未指定子命令时启动 HTTP 服务
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认查找 ./config/config.yaml 与 ./config.yaml）")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app 各子命令共用的基础依赖
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// bootstrap 加载配置、初始化日志并连接数据库
func bootstrap() (*app, error) {
	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, applogger.GormLevel(cfg.Log.Level), logger)
	if err != nil {
		logger.Error("数据库连接失败", zap.Error(err))
		_ = logger.Sync()
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func (a *app) migrate() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return database.RunMigrations(sqlDB, a.logger)
}
