package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/topmovies/internal/config"
	"github.com/user/topmovies/internal/handler"
	"github.com/user/topmovies/internal/logger"
	"github.com/user/topmovies/internal/repository"
	"github.com/user/topmovies/internal/router"
)

func main() {
	// 加载环境变量
	envErr := godotenv.Load()

	// 加载配置
	cfg := config.Load()

	// 初始化日志
	log := logger.New(cfg)
	if envErr != nil {
		log.Info("未找到 .env 文件，使用系统环境变量")
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("数据库连接失败")
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Fatal("数据库迁移失败")
	}

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 Handler 并注册路由
	h := handler.NewHandler(repos, cfg, log)
	r := router.Setup(h)

	// 配置 HTTP 服务器
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.TMDBTimeout + 10*time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		log.Infof("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("服务器启动失败")
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("正在关闭服务器...")

	// 5 秒超时上下文用于关闭过程
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("服务器强制关闭")
	}

	log.Info("服务器已退出")
}
