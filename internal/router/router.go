package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "city.newnan/motd-bot/api/v1"
	"city.newnan/motd-bot/internal/config"
	"city.newnan/motd-bot/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, motdController *v1.MotdController) *gin.Engine {
	// 设置Gin模式
	gin.SetMode(cfg.Mode)

	// 创建路由引擎
	r := gin.New()

	// 使用中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// 配置跨域
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 默认路由
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "欢迎使用Minecraft MOTD Bot API",
		})
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// 创建控制器实例
	authController := v1.NewAuthController(cfg)

	// API v1 路由组
	api := r.Group("/api/v1")
	{
		// 公开路由
		api.POST("/auth/token", authController.Token)

		// 需要认证的路由（未配置API_ACCESS_KEY时中间件直接放行）
		auth := api.Group("")
		auth.Use(middleware.JWTAuth(cfg))
		{
			auth.GET("/motd/status", motdController.Status)
			auth.GET("/motd/card", motdController.Card)
			auth.POST("/motd/event", motdController.Event)
		}
	}

	return r
}
