package ports

import (
	"context"
	"time"

	"UploadTimeAdvisor/internal/domain"
)

// TextGenerator is the external text-generation collaborator (e.g., ChatGPT).
type TextGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.Completion, error)
}

// HolidaySource pulls holiday entries from an upstream calendar.
type HolidaySource interface {
	Name() string
	Load(ctx context.Context) ([]domain.HolidayEntry, error)
}

// HolidayRepository stores imported holidays so every instance shares them.
type HolidayRepository interface {
	ListHolidays(ctx context.Context) ([]domain.HolidayEntry, error)
	SaveHolidays(ctx context.Context, entries []domain.HolidayEntry) error
}

// Notifier streams recommendation digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
