package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"anoa.com/apiplayground/internal/config"
	"anoa.com/apiplayground/internal/middleware"
	"anoa.com/apiplayground/pkg/ratelimiter"
	"anoa.com/apiplayground/pkg/response"
	"anoa.com/apiplayground/web"

	profileHttp "anoa.com/apiplayground/internal/modules/profile/delivery/http"
	profileService "anoa.com/apiplayground/internal/modules/profile/service"

	searchHttp "anoa.com/apiplayground/internal/modules/search/delivery/http"
	searchService "anoa.com/apiplayground/internal/modules/search/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const Version = "1.0.0"

type Server struct {
	engine *gin.Engine
}

// NewServer wires the HTTP surface. searchSvc and redisClient may be nil.
func NewServer(cfg *config.Config, profileSvc profileService.ProfileService, searchSvc searchService.MeiliSearchService, redisClient *redis.Client) *Server {
	profileHandler := profileHttp.NewProfileHandler(profileSvc)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		slog.Warn("invalid TRUSTED_PROXIES, trusting no proxy", "err", err)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.AccessLog(slog.Default()))
	router.Use(gin.CustomRecovery(recoverPanic))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.AllowedOriginSuffixes))

	router.GET("/", rootHandler)
	router.GET("/health", healthHandler)

	writeLimit := middleware.RateLimit(redisClient, ratelimiter.ScopeWrite, cfg.RateLimitWrite)

	profiles := router.Group("/profiles")
	{
		profiles.GET("", profileHandler.GetProfiles)
		profiles.GET("/:id", profileHandler.GetProfile)
		profiles.POST("", writeLimit, profileHandler.CreateProfile)
		profiles.PUT("/:id", writeLimit, profileHandler.UpdateProfile)
		profiles.DELETE("/:id", writeLimit, profileHandler.DeleteProfile)
	}

	search := router.Group("/search")
	{
		search.GET("/projects", profileHandler.SearchProjects)
		search.GET("/profiles", searchHandler.SearchProfiles)
	}

	router.StaticFS("/app", http.FS(web.Static()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return &Server{
		engine: router,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	slog.Info("server running", "addr", addr)
	slog.Info("health check", "url", "http://localhost"+addr+"/health")
	slog.Info("api endpoints", "url", "http://localhost"+addr+"/profiles")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API Playground Backend is running!",
		"endpoints": gin.H{
			"health":         "/health",
			"profiles":       "/profiles",
			"search":         "/search/projects?q=query",
			"searchProfiles": "/search/profiles?q=query",
			"client":         "/app/",
		},
		"version": Version,
	})
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "API is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func recoverPanic(c *gin.Context, recovered any) {
	slog.Error("panic recovered",
		"request_id", response.GetRequestID(c),
		"path", c.Request.URL.Path,
		"panic", recovered,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
}
