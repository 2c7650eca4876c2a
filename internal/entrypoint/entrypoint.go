package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grantgco/reading-library/internal/clock"
	"github.com/grantgco/reading-library/internal/commands"
	"github.com/grantgco/reading-library/internal/config"
	"github.com/grantgco/reading-library/internal/database"
	"github.com/grantgco/reading-library/internal/dates"
	"github.com/grantgco/reading-library/internal/exporters"
	http_controllers "github.com/grantgco/reading-library/internal/http"
	"github.com/grantgco/reading-library/internal/library"
	"github.com/grantgco/reading-library/internal/logging"
	"github.com/grantgco/reading-library/internal/scheduler"
	"github.com/grantgco/reading-library/internal/tasks"
)

// App holds the components shared by every command. The CLI opens one per
// invocation; serve keeps it for the life of the process.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Database *database.Database
	Service  *library.Service

	// Exporter is nil when no export directory is configured.
	Exporter *exporters.LibraryMarkdownExporter

	flush func()
}

type Option func(*options)

type options struct {
	clock  clock.Clock
	logger *zap.Logger
}

// WithClock replaces the wall clock used to interpret dates.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger uses logger instead of building one from the config.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open validates cfg and wires the database, library service and exporter.
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{clock: clock.NewSystem(nil)}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flush := o.logger, func() {}
	if logger == nil {
		var err error
		logger, flush, err = logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path, database.WithSQLLogging(cfg.Database.Debug))
	if err != nil {
		flush()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	interpreter := dates.NewInterpreter(o.clock, dates.WithPreferMonthFirst(cfg.Dates.PreferMonthFirst))
	service := library.NewService(db.Books, db.Sessions, db.Notes, interpreter, logger)

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Database: db,
		Service:  service,
		flush:    flush,
	}

	if cfg.Export.Dir != "" {
		markdown := exporters.NewMarkdownExporter(cfg.Export.Dir, o.clock.Now, logger)
		app.Exporter = exporters.NewLibraryMarkdownExporter(service, markdown, logger)
	}

	return app, nil
}

// Dispatcher returns a command dispatcher over the app's service. A nil
// confirmer cancels every unconfirmed delete.
func (a *App) Dispatcher(confirmer commands.Confirmer) *commands.Dispatcher {
	opts := []commands.DispatcherOption{commands.WithLogger(a.Logger)}
	if confirmer != nil {
		opts = append(opts, commands.WithConfirmer(confirmer))
	}
	if a.Exporter != nil {
		opts = append(opts, commands.WithExporter(a.Exporter))
	}
	return commands.NewDispatcher(a.Service, opts...)
}

// Close releases the database and flushes the logger.
func (a *App) Close() error {
	err := a.Database.Close()
	if a.flush != nil {
		a.flush()
	}
	return err
}

// Serve runs the HTTP API, the task queue and the export scheduler until ctx
// is cancelled, then shuts them down within the configured timeout.
func Serve(ctx context.Context, app *App, version string) error {
	cfg := app.Config
	logger := app.Logger

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting reading library",
		zap.String("version", version),
		zap.String("database", cfg.Database.Path))

	taskClient, err := newTaskClient(app)
	if err != nil {
		return err
	}
	if taskClient != nil {
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error("error closing task client", zap.Error(err))
			}
		}()
	}

	routerCfg := http_controllers.RouterConfig{
		Service:  app.Service,
		Database: app.Database,
		Logger:   logger,
		Version:  version,
		ReadOnly: cfg.HTTP.ReadOnly,
	}
	var exportScheduler *scheduler.JournalExportScheduler
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
		if cfg.Export.ScheduleEnabled {
			exportScheduler = scheduler.NewJournalExportScheduler(cfg.Export.Schedule, taskClient, logger)
			routerCfg.ExportSchedule = exportScheduler
		}
	} else if cfg.Export.ScheduleEnabled {
		logger.Warn("export schedule is enabled but the task queue is not running; scheduled exports are disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           http_controllers.NewRouter(routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if taskClient != nil {
		taskCtx, cancelTasks := context.WithCancel(context.Background())
		defer cancelTasks()
		taskClient.Start(taskCtx)

		if exportScheduler != nil {
			if err := exportScheduler.Start(gctx); err != nil {
				return err
			}
		}
	}

	g.Go(func() error {
		logger.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if exportScheduler != nil {
			exportScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("server exited")
	return err
}

// newTaskClient returns nil when the queue is disabled or there is nothing
// for it to run.
func newTaskClient(app *App) (*tasks.Client, error) {
	cfg := app.Config
	if !cfg.Tasks.Enabled {
		app.Logger.Info("task queue disabled")
		return nil, nil
	}
	if app.Exporter == nil {
		app.Logger.Warn("EXPORT_DIR is not set; task queue and journal export endpoints are disabled")
		return nil, nil
	}

	taskCfg := tasks.DefaultConfig()
	if cfg.Tasks.Workers > 0 {
		taskCfg.Workers = cfg.Tasks.Workers
	}
	if cfg.Tasks.ReleaseAfter > 0 {
		taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
	}
	if cfg.Tasks.CleanupInterval > 0 {
		taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval
	}

	client, err := tasks.NewClient(cfg.Database.Path, taskCfg, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task queue: %w", err)
	}
	client.Register(tasks.NewExportJournalQueue(app.Exporter, app.Logger))
	return client, nil
}
