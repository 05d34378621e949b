package holidays

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
)

const icsFixture = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//holidays//KO\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:seollal-2026@test\r\n" +
	"DTSTART;VALUE=DATE:20260216\r\n" +
	"DTEND;VALUE=DATE:20260219\r\n" +
	"SUMMARY:설날 연휴\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:election-2026@test\r\n" +
	"DTSTART;VALUE=DATE:20260603\r\n" +
	"SUMMARY:전국동시지방선거\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:timed@test\r\n" +
	"DTSTART:20261225T090000Z\r\n" +
	"SUMMARY:크리스마스\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:nosummary@test\r\n" +
	"DTSTART;VALUE=DATE:20260101\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

const htmlFixture = `
<html><body>
<table class="holidays">
  <tr><th>날짜</th><th>이름</th></tr>
  <tr><td>2026-03-02</td><td>삼일절 대체공휴일</td></tr>
  <tr><td>2026.05.25(월)</td><td>부처님오신날 대체공휴일</td></tr>
  <tr><td>2026년 6월 3일</td><td> 지방선거 </td></tr>
  <tr><td>미정</td><td>임시공휴일</td></tr>
  <tr><td>2026-10-09</td></tr>
</table>
<table class="other"><tr><td>2026-12-31</td><td>종무식</td></tr></table>
</body></html>`

func TestParseICS(t *testing.T) {
	t.Parallel()

	entries, err := ParseICS(strings.NewReader(icsFixture))
	require.NoError(t, err)

	require.Len(t, entries, 5)
	assert.Equal(t, domain.HolidayEntry{Date: domain.NewDate(2026, time.February, 16), Name: "설날 연휴", Kind: domain.HolidayKindHoliday}, entries[0])
	assert.Equal(t, domain.NewDate(2026, time.February, 18), entries[2].Date)
	assert.Equal(t, domain.HolidayEntry{Date: domain.NewDate(2026, time.June, 3), Name: "전국동시지방선거", Kind: domain.HolidayKindElection}, entries[3])
	assert.Equal(t, domain.NewDate(2026, time.December, 25), entries[4].Date)
}

func TestICSLoader_OverHTTP(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(icsFixture))
	}))
	defer srv.Close()

	entries, err := NewICSLoader(srv.Client()).Load(context.Background(), Request{SourceName: "gov", URL: srv.URL})
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestHTMLLoader_DefaultSelector(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(htmlFixture))
	}))
	defer srv.Close()

	entries, err := NewHTMLLoader(srv.Client()).Load(context.Background(), Request{URL: srv.URL})
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.Equal(t, domain.NewDate(2026, time.March, 2), entries[0].Date)
	assert.Equal(t, "삼일절 대체공휴일", entries[0].Name)
	assert.Equal(t, domain.NewDate(2026, time.May, 25), entries[1].Date)
	assert.Equal(t, domain.HolidayEntry{Date: domain.NewDate(2026, time.June, 3), Name: "지방선거", Kind: domain.HolidayKindElection}, entries[2])
	assert.Equal(t, "종무식", entries[3].Name)
}

func TestHTMLLoader_RowSelectorFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holidays.html")
	require.NoError(t, os.WriteFile(path, []byte(htmlFixture), 0o600))

	entries, err := NewHTMLLoader(nil).Load(context.Background(), Request{
		URL:     path,
		Options: map[string]string{"rowSelector": "table.holidays tr"},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestLoader_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewICSLoader(srv.Client()).Load(context.Background(), Request{URL: srv.URL})
	assert.ErrorContains(t, err, "410")
}

type stubLoader struct {
	name    string
	entries []domain.HolidayEntry
	err     error
}

func (s stubLoader) Name() string { return s.name }

func (s stubLoader) Load(context.Context, Request) ([]domain.HolidayEntry, error) {
	return s.entries, s.err
}

func TestStrategySource(t *testing.T) {
	t.Parallel()

	boom := errors.New("unreachable")
	reg := NewRegistry(
		stubLoader{name: "ok", entries: []domain.HolidayEntry{{Date: domain.NewDate(2026, time.May, 1), Name: "근로자의 날"}}},
		stubLoader{name: "broken", err: boom},
	)
	sources := []config.SourceConfig{
		{Name: "labor", Kind: "ok"},
		{Name: "flaky", Kind: "broken"},
	}

	_, err := NewStrategySource(reg, sources, false, nil).Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "flaky")

	entries, err := NewStrategySource(reg, sources, true, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HolidayKindHoliday, entries[0].Kind)

	_, err = NewStrategySource(reg, []config.SourceConfig{{Name: "x", Kind: "missing"}}, false, nil).Load(context.Background())
	assert.ErrorContains(t, err, "not registered")

	_, err = NewStrategySource(reg, sources[1:], true, nil).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

type memoryRepo struct {
	entries []domain.HolidayEntry
}

func (m *memoryRepo) ListHolidays(context.Context) ([]domain.HolidayEntry, error) {
	return m.entries, nil
}

func (m *memoryRepo) SaveHolidays(_ context.Context, entries []domain.HolidayEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func TestRepositoryLoader(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{entries: []domain.HolidayEntry{{Date: domain.NewDate(2026, time.June, 3), Name: "지방선거", Kind: domain.HolidayKindElection}}}
	reg := NewRegistry(NewRepositoryLoader(repo))

	entries, err := NewStrategySource(reg, []config.SourceConfig{{Name: "db", Kind: "postgres"}}, false, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.entries, entries)
}
