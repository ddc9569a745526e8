package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/ai"
	"github.com/craftedbits/resumatch/internal/config"
	"github.com/craftedbits/resumatch/internal/db"
	"github.com/craftedbits/resumatch/internal/embedcache"
	"github.com/craftedbits/resumatch/internal/handler"
	"github.com/craftedbits/resumatch/internal/job"
	"github.com/craftedbits/resumatch/internal/middleware"
	"github.com/craftedbits/resumatch/internal/schedule"
	"github.com/craftedbits/resumatch/internal/service"
	"github.com/craftedbits/resumatch/internal/session"
	"github.com/craftedbits/resumatch/internal/vecstore"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "resumatch",
		Short: "resumatch backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run resumatch server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildIndex(cfg *config.Config) (vecstore.Index, error) {
	switch cfg.Index.Type {
	case "pgvector":
		conn, err := db.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := db.ApplyMigrations(conn); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return vecstore.NewPgvectorIndex(conn), nil
	case "memory":
		return vecstore.NewMemoryIndex(), nil
	default:
		return nil, fmt.Errorf("unsupported index type: %s", cfg.Index.Type)
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("index", cfg.Index.Type),
		zap.String("embed_provider", cfg.AI.Embed.Provider),
		zap.String("generate_provider", cfg.AI.Generate.Provider),
	)

	index, err := buildIndex(cfg)
	if err != nil {
		return err
	}

	generateProvider, err := ai.NewProvider(cfg.AI.Generate.Provider, cfg.AI.Generate)
	if err != nil {
		return fmt.Errorf("init generate provider: %w", err)
	}
	embedProvider, err := ai.NewEmbedProvider(cfg.AI.Embed.Provider, cfg.AI.Embed)
	if err != nil {
		return fmt.Errorf("init embed provider: %w", err)
	}
	embedder := embedcache.WrapLruCacheToEmbedder(
		ai.NewEmbedder(embedProvider, cfg.AI.Embed.Model),
		cfg.AI.EmbedCacheSize,
		time.Duration(cfg.AI.EmbedCacheTTLMinute)*time.Minute,
	)
	manager := ai.NewManager(
		ai.NewGenerator(generateProvider, cfg.AI.Generate.Model),
		embedder,
		ai.ManagerConfig{Timeout: cfg.AI.Timeout},
	)

	sessions := session.NewManager(time.Duration(cfg.Session.TTLHours) * time.Hour)
	factService := service.NewFactService(manager, index)
	retrievalService := service.NewRetrievalService(manager, index)
	resumeService := service.NewResumeService(retrievalService, manager, service.CapsFromConfig(cfg.Retrieval))

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSessionCleanupJob(sessions), cfg.Session.SweepSpec); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	deps := handler.RouterDeps{
		Sessions: sessions,
		Session:  handler.NewSessionHandler(sessions),
		Facts:    handler.NewFactHandler(factService),
		Resume:   handler.NewResumeHandler(resumeService),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
