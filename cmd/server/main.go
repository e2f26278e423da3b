package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"courrier/backend/internal/config"
	"courrier/backend/internal/domain"
	"courrier/backend/internal/extractor"
	"courrier/backend/internal/health"
	"courrier/backend/internal/logger"
	"courrier/backend/internal/monitoring"
	"courrier/backend/internal/service"
	"courrier/backend/internal/storage"
	"courrier/backend/internal/storage/memory"
	httptransport "courrier/backend/internal/transport/http"
	"courrier/backend/internal/websocket"
)

// main 启动信件数字化后端服务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.NewLogger(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     "",
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting courrier server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
		zap.String("extractor_provider", cfg.Extractor.Provider),
	)

	// 初始化登记册存储（内存）
	store := memory.NewStore()
	log.Info("using memory registry storage")

	// 开发环境写入示例信件
	if cfg.Registry.SeedSampleData {
		seedSampleRecords(store, log)
	}

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化健康检查
	healthChecker := health.NewHealthChecker(store, log)

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化提取客户端
	extractorClient, err := newExtractorClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize extractor client", zap.Error(err))
	}
	defer extractorClient.Close()

	// 初始化服务层
	intakeService := service.NewIntakeService(extractorClient, cfg.Intake.ExtractionTimeout, metrics, log)
	mailService := service.NewMailService(store)
	viewService := service.NewViewService(store)

	// 创建 WebSocket Hub
	wsHub := websocket.NewHub(cfg.CORS.AllowedOrigins, log)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:        cfg,
		IntakeService: intakeService,
		MailService:   mailService,
		ViewService:   viewService,
		Store:         store,
		WebSocketHub:  wsHub,
		Metrics:       metrics,
		HealthChecker: healthChecker,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// WebSocket Hub goroutine
	group.Go(func() error {
		log.Info("starting WebSocket hub")
		wsHub.Run(groupCtx)
		return nil
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown error", zap.Error(err))
		}

		if err := store.Close(); err != nil {
			log.Warn("registry store close warning", zap.Error(err))
		}

		log.Info("server stopped")
		return nil
	})

	// 等待所有 goroutine 完成
	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatal("server error", zap.Error(err))
	}

	log.Info("server exited cleanly")
}

// newExtractorClient 根据配置选择提取客户端实现。
//
// provider=gemini 时连接 Vertex AI；provider=stub 时所有提取均失败，
// 录入流程退化为手动回退草稿（本地开发无需 GCP 凭证）。
func newExtractorClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (extractor.Client, error) {
	switch cfg.Extractor.Provider {
	case config.ExtractorProviderGemini:
		client, err := extractor.NewGeminiClient(ctx, cfg.Extractor.ProjectID, cfg.Extractor.Region, cfg.Extractor.Model, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		log.Info("extractor initialized",
			zap.String("provider", cfg.Extractor.Provider),
			zap.String("model", cfg.Extractor.Model),
			zap.String("region", cfg.Extractor.Region),
		)
		return client, nil
	default:
		log.Warn("using stub extractor, all scans fall back to manual drafts")
		return extractor.NewStubClient(), nil
	}
}

// seedSampleRecords 写入演示用的示例信件（仅开发模式）。
func seedSampleRecords(store storage.Store, log *zap.Logger) {
	now := time.Now()

	records := []*domain.MailRecord{
		{
			ID:             uuid.NewString(),
			Reference:      "2024-FACT-001",
			Direction:      domain.DirectionIncoming,
			Status:         domain.StatusReceived,
			Priority:       domain.PriorityUrgent,
			Sender:         "EDF France",
			Recipient:      "Jean Dupont",
			Subject:        "Facture d'électricité - Janvier 2024",
			Date:           now.Format(domain.DisplayDateLayout),
			ContentSummary: "Facture mensuelle d'électricité d'un montant de 89,50 €, à régler avant le 15 du mois prochain.",
			CreatedAt:      now,
		},
		{
			ID:             uuid.NewString(),
			Reference:      "2024-ENV-014",
			Direction:      domain.DirectionOutgoing,
			Status:         domain.StatusSent,
			Priority:       domain.PriorityNormal,
			Sender:         "Jean Dupont",
			Recipient:      "Mairie de Lyon",
			Subject:        "Demande d'acte de naissance",
			Date:           now.Format(domain.DisplayDateLayout),
			ContentSummary: "Demande d'une copie intégrale d'acte de naissance pour renouvellement de passeport.",
			TrackingNumber: "LP123456789FR",
			CreatedAt:      now,
		},
	}

	// 倒序插入保证第一条示例显示在登记册头部
	for i := len(records) - 1; i >= 0; i-- {
		if err := store.InsertMailRecord(records[i]); err != nil {
			log.Warn("failed to seed sample record", zap.Error(err))
		}
	}

	log.Info("sample mail records seeded", zap.Int("count", len(records)))
}
