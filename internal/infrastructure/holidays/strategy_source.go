package holidays

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/ports"
)

// StrategySource implements ports.HolidaySource via registered loader strategies.
type StrategySource struct {
	registry   *Registry
	sources    []config.SourceConfig
	skipFailed bool
	logger     *slog.Logger
}

var _ ports.HolidaySource = (*StrategySource)(nil)

// NewStrategySource wires the loader registry with config-defined sources.
// With skipFailed a broken source is logged and the rest still load.
func NewStrategySource(reg *Registry, sources []config.SourceConfig, skipFailed bool, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry:   reg,
		sources:    sources,
		skipFailed: skipFailed,
		logger:     log,
	}
}

// Name identifies the aggregate source in logs.
func (s *StrategySource) Name() string {
	return "configured-sources"
}

// Load iterates over configured sources and executes their loaders.
func (s *StrategySource) Load(ctx context.Context) ([]domain.HolidayEntry, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("holiday loader registry is not configured")
	}

	s.debug("load holidays", "sources", len(s.sources))

	var (
		aggregated []domain.HolidayEntry
		failures   []error
	)
	for _, src := range s.sources {
		entries, err := s.loadOne(ctx, src)
		if err != nil {
			if !s.skipFailed {
				return nil, err
			}
			s.warn("skip holiday source", "source", src.Name, "kind", src.Kind, "error", err)
			failures = append(failures, err)
			continue
		}
		s.debug("source produced holidays", "source", src.Name, "count", len(entries))
		aggregated = append(aggregated, entries...)
	}

	if len(failures) == len(s.sources) && len(failures) > 0 {
		return nil, errors.Join(failures...)
	}

	s.debug("strategy source done", "total_holidays", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) loadOne(ctx context.Context, src config.SourceConfig) ([]domain.HolidayEntry, error) {
	loader, err := s.registry.Resolve(src.Kind)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", src.Name, err)
	}

	entries, err := loader.Load(ctx, Request{
		SourceName: src.Name,
		URL:        src.URL,
		Options:    src.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("load source %s: %w", src.Name, err)
	}

	for i := range entries {
		if entries[i].Kind == "" {
			entries[i].Kind = kindForName(entries[i].Name)
		}
	}
	return entries, nil
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

// RepositoryLoader exposes a HolidayRepository as the "postgres" strategy.
type RepositoryLoader struct {
	repo ports.HolidayRepository
}

// NewRepositoryLoader wraps repo.
func NewRepositoryLoader(repo ports.HolidayRepository) *RepositoryLoader {
	return &RepositoryLoader{repo: repo}
}

// Name identifies the strategy inside the registry.
func (l *RepositoryLoader) Name() string {
	return "postgres"
}

// Load lists every stored holiday; request fields are ignored.
func (l *RepositoryLoader) Load(ctx context.Context, _ Request) ([]domain.HolidayEntry, error) {
	if l.repo == nil {
		return nil, fmt.Errorf("holiday repository is not configured")
	}
	return l.repo.ListHolidays(ctx)
}
