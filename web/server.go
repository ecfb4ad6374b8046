package web

import (
	"context"
	"net/http"
	"time"

	"medcart-agent/agent"
	"medcart-agent/catalog"
	"medcart-agent/config"
	"medcart-agent/web/handlers"
	"medcart-agent/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
	config *config.Config
}

func NewServer(a *agent.Agent, sessions *agent.SessionManager, snapshot *catalog.Snapshot, logger *zap.Logger, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server := &Server{
		router: router,
		logger: logger,
		config: cfg,
	}

	server.setupRoutes(a, sessions, snapshot)
	return server
}

func (s *Server) setupRoutes(a *agent.Agent, sessions *agent.SessionManager, snapshot *catalog.Snapshot) {
	// Serve the chat UI
	s.router.Static("/static", "./web/static")
	s.router.GET("/", func(c *gin.Context) {
		c.File("./web/static/index.html")
	})

	chatHandler := handlers.NewChatHandler(a, sessions, snapshot, s.logger)
	limiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		MessagesPerMinute: s.config.RateLimitPerMinute,
		BurstSize:         s.config.RateLimitBurstSize,
	}, s.logger)

	s.router.GET("/health", chatHandler.Health)

	session := s.router.Group("/", middleware.SessionMiddleware())
	session.POST("/chat", middleware.RateLimitMiddleware(limiter), chatHandler.Chat)
	session.POST("/reset", chatHandler.Reset)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
