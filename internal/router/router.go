package router

import (
	"github.com/blues/daochat/internal/handler"
	"github.com/blues/daochat/internal/session"
	"github.com/gin-gonic/gin"
)

func Setup(sessions *session.Manager) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		running, capacity := sessions.PoolStats()
		c.JSON(200, gin.H{
			"status":   "ok",
			"service":  "daochat",
			"sessions": sessions.Len(),
			"pool": gin.H{
				"running":  running,
				"capacity": capacity,
			},
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 会话相关路由
		sessionHandler := handler.NewSessionHandler(sessions)
		s := v1.Group("/sessions")
		{
			s.POST("", sessionHandler.CreateSession)
			s.DELETE("/:id", sessionHandler.DeleteSession)
			s.POST("/:id/messages", sessionHandler.SendMessage)
			s.POST("/:id/actions/:actionId", sessionHandler.SelectAction)
			s.GET("/:id/profile", sessionHandler.GetProfile)
			s.GET("/:id/campaigns", sessionHandler.GetCampaigns)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
