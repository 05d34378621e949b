package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"UploadTimeAdvisor/internal/calendar"
	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/infrastructure/holidays"
	"UploadTimeAdvisor/internal/infrastructure/httpapi"
	"UploadTimeAdvisor/internal/infrastructure/llm"
	"UploadTimeAdvisor/internal/infrastructure/scheduler"
	"UploadTimeAdvisor/internal/infrastructure/storage"
	"UploadTimeAdvisor/internal/infrastructure/telegram"
	"UploadTimeAdvisor/internal/logging"
	"UploadTimeAdvisor/internal/metrics"
	"UploadTimeAdvisor/internal/peaktime"
	"UploadTimeAdvisor/internal/ports"
	"UploadTimeAdvisor/internal/usecase"
)

const databaseSourceKind = "postgres"

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	metrics     *metrics.Metrics
	db          *sql.DB
	repo        *storage.PostgresRepository
	recommender *usecase.Recommender
	digest      *usecase.Scheduler
}

// New builds the runnable application. A missing API key is tolerated so
// that static operations keep working; generation calls then fail.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	a := &Application{
		cfg:     cfg,
		logger:  baseLogger,
		metrics: metrics.New(),
	}

	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("holiday database unavailable", "error", err)
		} else {
			a.db = db
			a.repo = storage.NewPostgresRepository(db)
			if err := a.repo.EnsureSchema(ctx); err != nil {
				baseLogger.Warn("holiday schema not ensured", "error", err)
			}
		}
	}

	var repo ports.HolidayRepository
	if a.repo != nil {
		repo = a.repo
	}
	cal, err := BuildCalendar(ctx, cfg, repo, baseLogger.With("component", "calendar"))
	if err != nil {
		a.Close()
		return nil, err
	}

	model, err := peaktime.Load()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load peak time table: %w", err)
	}

	var generator ports.TextGenerator
	if cfg.OpenAI.APIKey != "" {
		client, err := llm.NewChatGPTClient(cfg.OpenAI, baseLogger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("build chatgpt client: %w", err)
		}
		generator = client
	} else {
		baseLogger.Warn("OPENAI_API_KEY is not set; recommendations are unavailable")
	}

	a.recommender, err = usecase.NewRecommender(usecase.RecommenderDeps{
		Calendar:    cal,
		PeakTimes:   model,
		Generator:   generator,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
		Parallelism: cfg.Weekly.Parallelism,
		Logger:      baseLogger,
		Metrics:     a.metrics,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Schedule.Cron != "" && cfg.Notifications.Telegram.Enabled() {
		driver, err := scheduler.NewCronScheduler(cfg.Schedule.Cron, cfg.Location())
		if err != nil {
			a.Close()
			return nil, err
		}
		a.digest = usecase.NewScheduler(usecase.DigestDeps{
			Driver:      driver,
			Recommender: a.recommender,
			Notifier:    telegram.NewNotifier(cfg.Notifications.Telegram),
			Category:    domain.Category(cfg.Schedule.Category),
			Weekly:      cfg.Schedule.Weekly,
			Location:    cfg.Location(),
			Logger:      baseLogger,
		})
	}

	baseLogger.Info("application ready",
		"holidays", cal.Len(),
		"model", cfg.OpenAI.Model,
		"timezone", cfg.Timezone,
		"digest", a.digest != nil)

	return a, nil
}

// BuildCalendar merges the generated recurring holidays, the built-in table
// and configured sources, in that order of precedence (later wins). Broken
// sources are logged and skipped.
func BuildCalendar(ctx context.Context, cfg config.Config, repo ports.HolidayRepository, logger *slog.Logger) (*calendar.Calendar, error) {
	builtin, rules, err := calendar.Builtin()
	if err != nil {
		return nil, err
	}

	generated, err := calendar.ExpandRecurring(rules, cfg.Calendar.RecurringFrom, cfg.Calendar.RecurringTo)
	if err != nil {
		return nil, fmt.Errorf("expand recurring holidays: %w", err)
	}

	sources := cfg.Calendar.Sources
	if repo != nil && !hasKind(sources, databaseSourceKind) {
		sources = append(append([]config.SourceConfig(nil), sources...), config.SourceConfig{Name: "database", Kind: databaseSourceKind})
	}

	var extra []domain.HolidayEntry
	if len(sources) > 0 {
		source := holidays.NewStrategySource(newRegistry(repo), sources, true, logger)
		extra, err = source.Load(ctx)
		if err != nil {
			logger.Warn("holiday sources unavailable, using built-in table", "error", err)
			extra = nil
		}
	}

	return calendar.New(generated, builtin, extra), nil
}

func newRegistry(repo ports.HolidayRepository) *holidays.Registry {
	reg := holidays.NewRegistry(holidays.NewICSLoader(nil), holidays.NewHTMLLoader(nil))
	if repo != nil {
		reg.Register(holidays.NewRepositoryLoader(repo))
	}
	return reg
}

func hasKind(sources []config.SourceConfig, kind string) bool {
	for _, s := range sources {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Recommender exposes the use case for CLI commands.
func (a *Application) Recommender() *usecase.Recommender {
	return a.recommender
}

// Today is the current calendar day in the configured timezone.
func (a *Application) Today() domain.Date {
	return domain.DateOf(time.Now().In(a.cfg.Location()))
}

// Serve runs the HTTP API and the digest scheduler until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	server := httpapi.New(httpapi.Deps{
		Service:            a.recommender,
		Metrics:            a.metrics,
		Server:             a.cfg.Server,
		DefaultTemperature: a.cfg.OpenAI.Temperature,
		Location:           a.cfg.Location(),
		Logger:             a.logger,
	})

	if a.digest != nil {
		if err := a.digest.Start(ctx); err != nil {
			return fmt.Errorf("start digest scheduler: %w", err)
		}
		a.logger.Info("digest scheduler started", "cron", a.cfg.Schedule.Cron)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if a.digest != nil {
			errs = append(errs, a.digest.Stop(shutdownCtx))
		}
		errs = append(errs, server.Shutdown(shutdownCtx))
		return errors.Join(errs...)
	})

	return g.Wait()
}

// SyncHolidays loads the configured ICS/HTML sources and stores them in
// Postgres. It reports how many entries were written.
func (a *Application) SyncHolidays(ctx context.Context) (int, error) {
	if a.repo == nil {
		return 0, fmt.Errorf("holiday database is not configured (set DATABASE_DSN)")
	}

	var sources []config.SourceConfig
	for _, s := range a.cfg.Calendar.Sources {
		if s.Kind != databaseSourceKind {
			sources = append(sources, s)
		}
	}
	if len(sources) == 0 {
		return 0, fmt.Errorf("no holiday sources configured")
	}

	entries, err := holidays.NewStrategySource(newRegistry(nil), sources, false, a.logger).Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := a.repo.SaveHolidays(ctx, entries); err != nil {
		return 0, err
	}

	a.logger.Info("holidays synced", "count", len(entries))
	return len(entries), nil
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
