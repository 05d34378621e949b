package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/domain"
)

func TestExpandRecurring(t *testing.T) {
	t.Parallel()

	rules := []RecurringHoliday{
		{Name: "신정", Rule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		{Name: "한글날", Kind: domain.HolidayKindHoliday, Rule: "FREQ=YEARLY;BYMONTH=10;BYMONTHDAY=9"},
	}

	got, err := ExpandRecurring(rules, 2026, 2027)
	require.NoError(t, err)
	require.Len(t, got, 4)

	dates := make([]string, 0, len(got))
	for _, entry := range got {
		dates = append(dates, entry.Date.String())
		assert.Equal(t, domain.HolidayKindHoliday, entry.Kind)
	}
	assert.ElementsMatch(t, []string{"2026-01-01", "2027-01-01", "2026-10-09", "2027-10-09"}, dates)
}

func TestExpandRecurring_DisabledRange(t *testing.T) {
	t.Parallel()

	rules := []RecurringHoliday{{Name: "신정", Rule: "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"}}

	got, err := ExpandRecurring(rules, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ExpandRecurring(rules, 2027, 2026)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExpandRecurring_InvalidRule(t *testing.T) {
	t.Parallel()

	_, err := ExpandRecurring([]RecurringHoliday{{Name: "broken", Rule: "FREQ=SOMETIMES"}}, 2026, 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestExpandRecurring_BuiltinRulesFeedCalendar(t *testing.T) {
	t.Parallel()

	entries, rules, err := Builtin()
	require.NoError(t, err)

	generated, err := ExpandRecurring(rules, 2026, 2026)
	require.NoError(t, err)

	cal := New(generated, entries)
	entry, ok := cal.IsHoliday(domain.NewDate(2026, time.March, 1))
	require.True(t, ok)
	assert.Equal(t, "삼일절", entry.Name)
	assert.Equal(t, domain.DayTypeHoliday, cal.DayType(domain.NewDate(2026, time.December, 25)))
}
