package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escapetogether/escape-together/internal/config"
	"github.com/escapetogether/escape-together/internal/logger"
	"github.com/escapetogether/escape-together/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	logPath := flag.String("log", "", "日志文件路径（为空时输出到 stderr）")
	flag.Parse()

	if err := logger.InitFile(*logPath); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			os.Exit(1)
		}
	}()

	// 配置文件不存在时使用默认配置启动
	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️ 配置文件 %s 不存在，使用默认配置", *configPath)
			cfg = config.Default()
		} else {
			log.Fatalf("加载配置失败: %v", err)
		}
	}

	srv := server.NewServer(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("服务器启动失败: %v", err)
		}
	case sig := <-quit:
		log.Printf("收到信号 %v，准备关闭", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("关闭服务器出错: %v", err)
		}
	}
}
