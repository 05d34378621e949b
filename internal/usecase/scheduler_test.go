package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/domain"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (n *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	n.messages = append(n.messages, digest)
	return n.err
}

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (d *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	d.job = job
	return nil
}

func (d *manualDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestScheduler_DailyDigest(t *testing.T) {
	t.Parallel()

	seoul := time.FixedZone("KST", 9*60*60)
	driver := &manualDriver{}
	notifier := &recordingNotifier{}
	s := NewScheduler(DigestDeps{
		Driver:      driver,
		Recommender: newRecommender(t, &fakeGenerator{}, 1),
		Notifier:    notifier,
		Category:    domain.CategoryGeneral,
		Location:    seoul,
	})

	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	// 2024-02-09 16:00 UTC is already 2024-02-10 in Seoul.
	driver.job(time.Date(2024, time.February, 9, 16, 0, 0, 0, time.UTC))

	require.Len(t, notifier.messages, 1)
	msg := notifier.messages[0]
	assert.Contains(t, msg, "2024년 02월 10일 토요일")
	assert.Contains(t, msg, "(설날)")
	assert.Contains(t, msg, "추천 시간: 오후 8시")
	assert.Contains(t, msg, "피크 15:00-17:00")

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestScheduler_WeeklyDigest(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{}
	s := NewScheduler(DigestDeps{
		Recommender: newRecommender(t, &fakeGenerator{}, 1),
		Notifier:    notifier,
		Weekly:      true,
	})

	err := s.RunOnce(context.Background(), time.Date(2024, time.February, 8, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "2024-02-08 주간 업로드 추천 (general)")
	assert.Contains(t, notifier.messages[0], "[설날]")
}

func TestScheduler_RunOnceReportsFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("telegram down")
	notifier := &recordingNotifier{err: boom}
	s := NewScheduler(DigestDeps{
		Recommender: newRecommender(t, &fakeGenerator{}, 1),
		Notifier:    notifier,
	})

	err := s.RunOnce(context.Background(), time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, boom)
}

func TestScheduler_StartWithoutNotifierIsNoop(t *testing.T) {
	t.Parallel()

	driver := &manualDriver{}
	s := NewScheduler(DigestDeps{Driver: driver})
	require.NoError(t, s.Start(context.Background()))
	assert.Nil(t, driver.job)
}
