package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/domain"
)

func TestListQuery(t *testing.T) {
	t.Parallel()

	query, args, err := listQuery().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT date, name, kind FROM holidays ORDER BY date", query)
	assert.Empty(t, args)
}

func TestUpsertQuery(t *testing.T) {
	t.Parallel()

	entries := []domain.HolidayEntry{
		{Date: domain.NewDate(2026, time.June, 3), Name: "선거일", Kind: domain.HolidayKindElection},
		{Date: domain.NewDate(2026, time.March, 2), Name: "대체공휴일"},
		{Date: domain.NewDate(2026, time.June, 3), Name: "전국동시지방선거", Kind: domain.HolidayKindElection},
	}

	query, args, err := upsertQuery(entries).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO holidays (date,name,kind) VALUES ($1,$2,$3),($4,$5,$6) "+
			"ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name, kind = EXCLUDED.kind, updated_at = NOW()",
		query)
	assert.Equal(t, []any{
		"2026-06-03", "전국동시지방선거", "election",
		"2026-03-02", "대체공휴일", "holiday",
	}, args)
}

func TestNilDBIsNoop(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)
	entries, err := repo.ListHolidays(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, repo.SaveHolidays(context.Background(), []domain.HolidayEntry{{Name: "x"}}))
	assert.NoError(t, repo.EnsureSchema(context.Background()))
}
