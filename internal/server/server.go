package server

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imagesaver/internal/config"
	"imagesaver/internal/handler"
	"imagesaver/internal/repository"
	"imagesaver/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

// New prepares the upload directory and the router. A directory that cannot
// be created is returned as an error so the caller can abort startup.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	repo, err := repository.NewLocalRepository(cfg.App.UploadDir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	router, err := NewRouter(cfg, repo, log)
	if err != nil {
		return nil, err
	}

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        router,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("upload_dir", cfg.App.UploadDir))

	return server, nil
}

func NewRouter(cfg *config.Config, repo repository.ImageRepository, log *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsCfg := corsConfig(cfg.CORS)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS config: %w", err)
	}

	router.Use(requestID(), accessLog(log), recovery(log), cors.New(corsCfg))

	imageService := service.NewImageService(repo, log)
	h := handler.NewHandler(imageService, log)

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/save_image", limitBody(cfg.App.MaxUploadSize), h.SaveImage)
	}

	if prefix := service.URLPath(repo.Dir(), ""); cfg.App.ServeUploads && prefix != "/" {
		router.Static(prefix, repo.Dir())
	}

	return router, nil
}

func corsConfig(c config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:  []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		out.AllowAllOrigins = true
	} else {
		out.AllowOrigins = c.AllowedOrigins
	}
	return out
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
