package http

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/sujalbistaa/zevina/internal/config"
)

const limiterSweepInterval = 10 * time.Minute

// SetupRoutes configures all application routes and middleware. Background
// work started here stops when ctx is done.
func SetupRoutes(ctx context.Context, router *gin.Engine, env *Env, cfg *config.Config) {

	// --- Middleware ---
	router.Use(ZapLogger(env.Log))
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", ClientHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	router.Use(ClientMiddleware())

	// --- Rate Limiter Setup ---
	limiter := NewClientRateLimiter(rate.Every(cfg.PostRateInterval), 1)
	go limiter.RunSweeper(ctx, limiterSweepInterval)

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.POST("/auth/login", env.Login)
		api.POST("/auth/signup", env.Signup)
		api.POST("/auth/logout", env.Logout)
		api.GET("/auth/me", env.Me)

		api.GET("/theme", env.GetTheme)
		api.POST("/theme/toggle", env.ToggleTheme)

		api.POST("/chat/reply", env.ChatReply)
		api.GET("/chat/suggestions", env.ChatSuggestions)
	}

	forumAPI := api.Group("/forum", env.RequireSession())
	{
		forumAPI.GET("/topics", env.GetTopics)
		forumAPI.GET("/posts", env.GetPosts)
		forumAPI.POST("/posts", RateLimitMiddleware(limiter), env.CreatePost)
		forumAPI.POST("/posts/:id/like", env.ToggleLike)
		forumAPI.POST("/posts/:id/comments", RateLimitMiddleware(limiter), env.AddComment)
	}

	// --- WebSocket Routes ---
	router.GET("/ws", env.ForumSocket)
	router.GET("/ws/chat", env.ChatSocket)
}
