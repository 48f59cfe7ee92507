package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/issue-bridge/internal/api/http"
	"github.com/spec-kit/issue-bridge/internal/api/http/handlers"
	"github.com/spec-kit/issue-bridge/internal/chat"
	"github.com/spec-kit/issue-bridge/internal/config"
	"github.com/spec-kit/issue-bridge/internal/events"
	"github.com/spec-kit/issue-bridge/internal/flows"
	"github.com/spec-kit/issue-bridge/internal/jira"
	"github.com/spec-kit/issue-bridge/internal/observability"
	"github.com/spec-kit/issue-bridge/internal/persistence"
	"github.com/spec-kit/issue-bridge/internal/repository"
	"github.com/spec-kit/issue-bridge/internal/service"
	"github.com/spec-kit/issue-bridge/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	correlationRepo := repository.NewCorrelationRepository(redis.Client)
	chatClient := chat.NewSlackClient(cfg.Slack)
	tracker := jira.NewClient(cfg.Jira)

	registry := flows.NewRegistry(
		flows.NewSupportFlow(cfg.Flows.SupportProjectKey),
		flows.NewProductFlow(cfg.Flows.ProductProjectKey),
	)
	logger.Info("registered workflow domains", zap.Strings("domains", registry.Domains()))

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, logger, cfg.Notification)
	auditService.RegisterHandlers()

	runner := worker.NewRunner(logger)

	eventService := service.NewEventService(service.EventDependencies{
		Chat:         chatClient,
		Tracker:      tracker,
		Correlations: correlationRepo,
		Dispatcher:   dispatcher,
		TeamDomain:   cfg.Slack.TeamDomain,
		Logger:       logger,
	})

	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		Registry:     registry,
		Chat:         chatClient,
		Tracker:      tracker,
		Correlations: correlationRepo,
		EventService: eventService,
		Runner:       runner,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
		IssueBaseURL: cfg.Jira.BaseURL,
	})

	classifier := service.NewClassifier()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Command:     handlers.NewCommandHandler(classifier, workflowService),
		Interaction: handlers.NewInteractionHandler(classifier, workflowService),
		Event:       handlers.NewEventHandler(classifier, workflowService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	runner.Drain(cfg.App.ShutdownGrace())
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
