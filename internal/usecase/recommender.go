package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"UploadTimeAdvisor/internal/calendar"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/metrics"
	"UploadTimeAdvisor/internal/peaktime"
	"UploadTimeAdvisor/internal/ports"
	"UploadTimeAdvisor/internal/timeexpr"
)

const (
	daysPerWeek = 7

	operationDaily  = "daily"
	operationWeekly = "weekly"
)

// RecommenderDeps wires the tables and the text generator into the use case.
type RecommenderDeps struct {
	Calendar    *calendar.Calendar
	PeakTimes   *peaktime.Model
	Generator   ports.TextGenerator
	Extractor   *timeexpr.Engine
	Model       string
	MaxTokens   int
	Temperature float32
	// Parallelism above 1 fans the seven daily calls out concurrently.
	Parallelism int
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
}

// Recommender produces daily and weekly upload-time recommendations.
type Recommender struct {
	calendar    *calendar.Calendar
	peakTimes   *peaktime.Model
	generator   ports.TextGenerator
	extractor   *timeexpr.Engine
	model       string
	maxTokens   int
	temperature float32
	parallelism int
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewRecommender constructs the orchestration component.
func NewRecommender(deps RecommenderDeps) (*Recommender, error) {
	if deps.Calendar == nil || deps.PeakTimes == nil {
		return nil, errors.New("recommender requires calendar and peak time tables")
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = timeexpr.NewEngine()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Recommender{
		calendar:    deps.Calendar,
		peakTimes:   deps.PeakTimes,
		generator:   deps.Generator,
		extractor:   extractor,
		model:       deps.Model,
		maxTokens:   deps.MaxTokens,
		temperature: deps.Temperature,
		parallelism: deps.Parallelism,
		logger:      logger.With("component", "recommender"),
		metrics:     deps.Metrics,
	}, nil
}

// RecommendForDate classifies the date, asks the generator for a one-line
// recommendation and extracts the suggested time from it.
func (r *Recommender) RecommendForDate(ctx context.Context, date domain.Date, category domain.Category) (domain.DailyRecommendation, error) {
	if category == "" {
		category = domain.DefaultCategory
	}

	dayType, holiday := r.calendar.Classify(date)
	bands := r.peakTimes.Bands(category, dayType)

	r.logger.Debug("classified date",
		"date", date.String(),
		"day_type", dayType,
		"holiday", holidayName(holiday),
		"category", category)

	prompt := buildDailyPrompt(date, category, dayType, holiday, bands)
	completion, err := r.generate(ctx, operationDaily, prompt)
	if err != nil {
		r.logger.Error("daily recommendation failed", "date", date.String(), "category", category, "error", err)
		return domain.DailyRecommendation{}, &domain.CollaboratorError{
			Operation: operationDaily,
			Date:      date.String(),
			Category:  category,
			Err:       err,
		}
	}

	return domain.DailyRecommendation{
		Date:          date,
		DayName:       date.KoreanLabel(),
		DayType:       dayType,
		Holiday:       holiday,
		Category:      category,
		Bands:         bands,
		GeneratedText: completion.Text,
		ExtractedTime: r.extract(completion.Text),
	}, nil
}

// RecommendForWeek builds seven consecutive daily recommendations starting at
// start, then asks for one whole-week analysis. Any failure discards the week.
func (r *Recommender) RecommendForWeek(ctx context.Context, start domain.Date, category domain.Category) (domain.WeeklyRecommendation, error) {
	if category == "" {
		category = domain.DefaultCategory
	}

	days, err := r.recommendDays(ctx, start, category)
	if err != nil {
		return domain.WeeklyRecommendation{}, err
	}

	prompt := buildWeeklyPrompt(days, category)
	completion, err := r.generate(ctx, operationWeekly, prompt)
	if err != nil {
		r.logger.Error("weekly analysis failed", "week_start", start.String(), "category", category, "error", err)
		return domain.WeeklyRecommendation{}, &domain.CollaboratorError{
			Operation: operationWeekly,
			Date:      start.String(),
			Category:  category,
			Err:       err,
		}
	}

	return domain.WeeklyRecommendation{
		WeekStart: start,
		Category:  category,
		Days:      days,
		Analysis: domain.WeeklyAnalysis{
			GeneratedText: completion.Text,
			ExtractedTime: r.extract(completion.Text),
		},
		Summary: summarize(days),
	}, nil
}

// StatsForCategory returns the static table data. No generator call is made.
func (r *Recommender) StatsForCategory(category domain.Category) domain.CategoryStats {
	if category == "" {
		category = domain.DefaultCategory
	}
	return r.peakTimes.Stats(category)
}

// Generate forwards a free-form request to the text generator, filling in
// configured defaults for unset fields.
func (r *Recommender) Generate(ctx context.Context, req domain.GenerationRequest) (domain.Completion, error) {
	if req.Model == "" {
		req.Model = r.model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = r.maxTokens
	}
	return r.call(ctx, "chat", req)
}

func (r *Recommender) recommendDays(ctx context.Context, start domain.Date, category domain.Category) ([]domain.DailyRecommendation, error) {
	days := make([]domain.DailyRecommendation, daysPerWeek)

	if r.parallelism <= 1 {
		for i := range days {
			day, err := r.RecommendForDate(ctx, start.AddDays(i), category)
			if err != nil {
				return nil, err
			}
			days[i] = day
		}
		return days, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i := range days {
		i := i // per-iteration copy; module builds with go 1.21 loop semantics
		g.Go(func() error {
			day, err := r.RecommendForDate(gctx, start.AddDays(i), category)
			if err != nil {
				return err
			}
			days[i] = day
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *Recommender) generate(ctx context.Context, operation, prompt string) (domain.Completion, error) {
	return r.call(ctx, operation, domain.GenerationRequest{
		Prompt:      prompt,
		Model:       r.model,
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	})
}

func (r *Recommender) call(ctx context.Context, operation string, req domain.GenerationRequest) (domain.Completion, error) {
	if r.generator == nil {
		return domain.Completion{}, errors.New("text generator is not configured")
	}

	started := time.Now()
	completion, err := r.generator.Generate(ctx, req)
	r.metrics.RecordGeneration(operation, err, time.Since(started), completion.Usage)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("generate %s: %w", operation, err)
	}
	return completion, nil
}

func (r *Recommender) extract(text string) *string {
	m, ok := r.extractor.Match(text)
	r.metrics.RecordExtraction(ok)
	if !ok {
		r.logger.Debug("no time found in generated text")
		return nil
	}
	r.logger.Debug("extracted time", "rule", m.Rule, "value", m.Value)
	value := m.Value
	return &value
}

func summarize(days []domain.DailyRecommendation) domain.WeeklySummary {
	summary := domain.WeeklySummary{TotalDays: len(days)}
	for _, day := range days {
		switch day.DayType {
		case domain.DayTypeHoliday:
			summary.HolidayDays++
		case domain.DayTypeWeekend:
			summary.WeekendDays++
		default:
			summary.WeekdayDays++
		}
	}
	return summary
}

func holidayName(h *domain.HolidayEntry) string {
	if h == nil {
		return ""
	}
	return h.Name
}
