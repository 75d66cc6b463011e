package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "city.newnan/motd-bot/api/v1"
	"city.newnan/motd-bot/internal/bot"
	"city.newnan/motd-bot/internal/command"
	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/render"
	"city.newnan/motd-bot/internal/router"
	"city.newnan/motd-bot/pkg/mcprobe"
)

// @title           Minecraft MOTD Bot API
// @version         1.0
// @description     Minecraft服务器状态卡片机器人插件 API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	// 加载配置
	cfg := config.LoadConfig()

	// 加载字体（字体缺失是部署配置错误，直接终止）
	face, err := render.LoadFontFace(cfg.FontPath, cfg.FontSize)
	if err != nil {
		log.Fatalf("初始化渲染字体失败: %v", err)
	}

	// 组装探测、渲染与命令处理
	prober := mcprobe.NewProber(cfg.ProbeTimeout)
	prober.JavaDefaultPort = cfg.JavaDefaultPort
	prober.BedrockDefaultPort = cfg.BedrockDefaultPort

	renderer := render.NewRenderer(face)
	handler := command.NewHandler(cfg.CommandPrefix, prober, renderer)

	// 启动机器人连接（未配置时为空操作）
	botClient := bot.NewClient(cfg, handler)
	botClient.Start()

	// 初始化路由
	motdController := v1.NewMotdController(cfg, prober, renderer, handler)
	r := router.SetupRouter(cfg, motdController)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler: r,
	}

	// 启动服务器（非阻塞）
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("监听失败: %v", err)
		}
	}()

	log.Printf("服务器开始运行，监听: %s:%d", cfg.ServerHost, cfg.ServerPort)

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 先停机器人，等待处理中的命令完成
	botClient.Stop()

	// 设置关闭超时
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器被强制关闭:", err)
	}

	log.Println("服务器优雅退出")
}
