package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tubescribe/config"
	"tubescribe/internal/deps"
	"tubescribe/internal/router"
	"tubescribe/internal/storage"
	"tubescribe/log"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	if err := bootstrap(); err != nil {
		return err
	}
	defer log.GetLogger().Sync()

	if err := storage.InitDB(); err != nil {
		return err
	}

	// 清理上次运行遗留的僵尸任务
	if count, err := storage.MarkStaleTasks(); err != nil {
		log.GetLogger().Warn("标记遗留任务失败 failed to mark stale tasks", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("已标记遗留任务为失败 marked stale tasks as failed", zap.Int64("count", count))
	}

	if err := deps.CheckDependency(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.Default()
	router.SetupRouter(engine)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("服务启动 server starting", zap.String("addr", addr))
	return engine.Run(addr)
}
