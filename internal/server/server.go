package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zyfayes/polaroid/internal/camera"
	"github.com/zyfayes/polaroid/internal/composer"
	"github.com/zyfayes/polaroid/internal/config"
	"github.com/zyfayes/polaroid/internal/develop"
	"github.com/zyfayes/polaroid/internal/export"
	"github.com/zyfayes/polaroid/internal/handler"
	"github.com/zyfayes/polaroid/internal/service"
	"github.com/zyfayes/polaroid/internal/store"
)

type Server struct {
	httpServer *http.Server
	cameraSvc  service.CameraService
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	medium, err := newMedium(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create persistence medium: %w", err)
	}

	photoStore := store.New(medium, cfg.Store.RetentionLimit, log)
	if err := photoStore.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load photo store: %w", err)
	}

	source, err := camera.NewSyntheticSource(cfg.Capture.SourceWidth, cfg.Capture.SourceHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to create video source: %w", err)
	}

	normalizer := camera.NewNormalizer(cfg.Capture.OutputSize, cfg.Capture.JPEGQuality)
	tracker := develop.NewTracker(cfg.Capture.DevelopWindow)

	cameraSvc := service.NewCameraService(source, normalizer, photoStore, tracker, log)

	frameComposer, err := composer.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create frame composer: %w", err)
	}

	fileSink, err := export.NewDirFileSink(cfg.Export.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file sink: %w", err)
	}

	actions := export.NewActions(frameComposer, export.NewSystemClipboard(), fileSink, log)

	h := handler.NewHandler(cameraSvc, actions, log)

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/capture", h.Capture)
		api.GET("/photos", h.ListPhotos)
		api.GET("/photos/:id", h.GetPhoto)
		api.DELETE("/photos/:id", h.DeletePhoto)
		api.POST("/photos/:id/copy", h.CopyFrame)
		api.GET("/photos/:id/frame", h.DownloadFrame)
	}

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        router,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cameraSvc: cameraSvc,
		cfg:       cfg,
		log:       log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Store.Backend))

	return server, nil
}

func newMedium(cfg *config.Config, log *zap.Logger) (store.Medium, error) {
	switch cfg.Store.Backend {
	case "file":
		return store.NewFileMedium(cfg.Store.FilePath)
	case "s3":
		return store.NewS3Medium(&store.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UseSSL:          cfg.S3.UseSSL,
			BucketName:      cfg.S3.BucketName,
			Region:          cfg.S3.Region,
			Key:             cfg.Store.Key,
		}, log)
	case "sqlite":
		return store.NewSQLiteMedium(cfg.Store.SQLitePath, cfg.Store.Key)
	case "memory":
		return store.NewMemoryMedium(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, then releases the camera source and
// flushes pending persistence writes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	err := s.httpServer.Shutdown(ctx)
	if cerr := s.cameraSvc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
