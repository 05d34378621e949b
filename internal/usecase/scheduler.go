package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/ports"
)

// DigestDeps configures the scheduled recommendation digest.
type DigestDeps struct {
	Driver      ports.Scheduler
	Recommender *Recommender
	Notifier    ports.Notifier
	Category    domain.Category
	Weekly      bool
	Location    *time.Location
	Logger      *slog.Logger
}

// Scheduler wires the cron driver with the digest job.
type Scheduler struct {
	driver      ports.Scheduler
	recommender *Recommender
	notifier    ports.Notifier
	category    domain.Category
	weekly      bool
	location    *time.Location
	logger      *slog.Logger
}

// NewScheduler returns a helper to start/stop the recurring digest.
func NewScheduler(deps DigestDeps) *Scheduler {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		driver:      deps.Driver,
		recommender: deps.Recommender,
		notifier:    deps.Notifier,
		category:    deps.Category,
		weekly:      deps.Weekly,
		location:    loc,
		logger:      logger.With("component", "digest"),
	}
}

// Start registers the digest job with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.recommender == nil || s.notifier == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if err := s.RunOnce(ctx, trigger); err != nil {
			s.logger.Error("digest job failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}

// RunOnce builds the digest for the trigger's local day and publishes it.
func (s *Scheduler) RunOnce(ctx context.Context, trigger time.Time) error {
	today := domain.DateOf(trigger.In(s.location))

	var message string
	if s.weekly {
		week, err := s.recommender.RecommendForWeek(ctx, today, s.category)
		if err != nil {
			return fmt.Errorf("weekly digest: %w", err)
		}
		message = buildWeeklyDigest(week)
	} else {
		day, err := s.recommender.RecommendForDate(ctx, today, s.category)
		if err != nil {
			return fmt.Errorf("daily digest: %w", err)
		}
		message = buildDailyDigest(day)
	}

	if err := s.notifier.PublishDigest(ctx, message); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}
	s.logger.Info("digest published", "date", today.String(), "weekly", s.weekly)
	return nil
}

func buildDailyDigest(day domain.DailyRecommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", day.DayName)
	if day.Holiday != nil {
		fmt.Fprintf(&b, " (%s)", day.Holiday.Name)
	}
	fmt.Fprintf(&b, "\n%s\n", day.GeneratedText)
	if day.ExtractedTime != nil {
		fmt.Fprintf(&b, "추천 시간: %s\n", *day.ExtractedTime)
	}
	fmt.Fprintf(&b, "피크 %s / 보조 %s / 심야 %s",
		day.Bands.Primary.Window,
		day.Bands.Secondary.Window,
		day.Bands.Late.Window)
	return b.String()
}

func buildWeeklyDigest(week domain.WeeklyRecommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 주간 업로드 추천 (%s)\n", week.WeekStart, week.Category)
	for _, day := range week.Days {
		line := day.DayName
		if day.ExtractedTime != nil {
			line += ": " + *day.ExtractedTime
		}
		if day.Holiday != nil {
			line += " [" + day.Holiday.Name + "]"
		}
		b.WriteString("- " + line + "\n")
	}
	b.WriteString("\n" + week.Analysis.GeneratedText)
	return b.String()
}
