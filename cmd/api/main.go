package main

import (
	"context"
	"fmt"
	"log"

	common_api "formdash/internal/common/api"
	"formdash/internal/config"
	"formdash/internal/database"
	"formdash/internal/features/audit"
	"formdash/internal/features/canvas"
	"formdash/internal/features/dashboard"
	export_feature "formdash/internal/features/export"
	"formdash/internal/features/metrics"
	"formdash/internal/features/share"
	"formdash/internal/features/system"
	"formdash/internal/features/template"
	"formdash/internal/logger"
	"formdash/internal/middleware"
	"formdash/pkg/utils"

	_ "formdash/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           FormDash API
// @version         1.0
// @description     Dashboard builder and rendering service.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			audit.NewAuditRepository,
			dashboard.NewDashboardRepository,
			template.NewTemplateRepository,
			metrics.NewMetricsRepository,
			export_feature.NewScheduleRepository,
			export_feature.NewSnapshotStore,

			// Services
			audit.NewAuditService,
			dashboard.NewDashboardService,
			template.NewTemplateService,
			canvas.NewCanvasService,
			metrics.NewMetricsService,
			export_feature.NewExportService,
			system.NewEventHub,

			// The websocket hub delivers dashboard change events
			func(h *system.EventHub) dashboard.EventBroadcaster { return h },

			// Controllers
			audit.NewAuditController,
			dashboard.NewDashboardController,
			template.NewTemplateController,
			canvas.NewCanvasController,
			metrics.NewMetricsController,
			export_feature.NewExportController,
			share.NewShareController,

			// API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(template.NewTemplateApi),
			AsRoute(canvas.NewCanvasApi),
			AsRoute(metrics.NewMetricsApi),
			AsRoute(export_feature.NewExportApi),
			AsRoute(share.NewShareApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, exportService export_feature.ExportService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return exportService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return exportService.StopScheduler()
					},
				})
			},
			func(lc fx.Lifecycle, snapshots *export_feature.SnapshotStore) {
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return snapshots.Close()
					},
				})
			},
		),
	)

	app.Run()
}
