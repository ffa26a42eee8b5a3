package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/user/topmovies/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 根据配置创建 logrus 日志实例
// 生产环境输出 JSON，开发环境输出文本；配置了 LOG_FILE 时同时写入滚动日志文件
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.SetOutput(output(cfg))
	return log
}

func output(cfg *config.Config) io.Writer {
	if cfg.LogFile == "" {
		return os.Stdout
	}
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, fileWriter)
}
