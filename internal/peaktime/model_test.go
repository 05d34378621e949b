package peaktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"UploadTimeAdvisor/internal/domain"
)

func loadModel(t *testing.T) *Model {
	t.Helper()
	m, err := Load()
	require.NoError(t, err)
	return m
}

func TestBands_EveryCombinationHasThreeBands(t *testing.T) {
	t.Parallel()

	m := loadModel(t)
	require.Len(t, m.Categories(), 4)

	for _, category := range m.Categories() {
		for _, dayType := range domain.DayTypes {
			b := m.Bands(category, dayType)
			assert.Equal(t, domain.BandPrimary, b.Primary.Label)
			assert.Equal(t, domain.BandSecondary, b.Secondary.Label)
			assert.Equal(t, domain.BandLate, b.Late.Label)
			assert.NotEmpty(t, b.Primary.Window, "%s/%s", category, dayType)
			assert.NotEmpty(t, b.Secondary.Window, "%s/%s", category, dayType)
			assert.NotEmpty(t, b.Late.Window, "%s/%s", category, dayType)
		}
	}
}

func TestBands_Values(t *testing.T) {
	t.Parallel()

	m := loadModel(t)

	tests := []struct {
		category domain.Category
		dayType  domain.DayType
		primary  string
		late     string
	}{
		{domain.CategoryGeneral, domain.DayTypeWeekday, "20:00-22:00", "22:00-24:00"},
		{domain.CategoryGeneral, domain.DayTypeHoliday, "15:00-17:00", "22:00-24:00"},
		{domain.CategoryEducation, domain.DayTypeWeekend, "10:00-12:00", "20:00-22:00"},
		{domain.CategoryGaming, domain.DayTypeWeekday, "21:00-23:00", "23:00-01:00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+string(tt.dayType), func(t *testing.T) {
			b := m.Bands(tt.category, tt.dayType)
			assert.Equal(t, tt.primary, b.Primary.Window)
			assert.Equal(t, tt.late, b.Late.Window)
		})
	}
}

func TestBands_UnknownCategoryFallsBack(t *testing.T) {
	t.Parallel()

	m := loadModel(t)

	for _, dayType := range domain.DayTypes {
		assert.Equal(t,
			m.Bands(domain.CategoryGeneral, dayType),
			m.Bands("unknown_category", dayType))
	}

	resolved, known := m.Resolve("unknown_category")
	assert.Equal(t, domain.CategoryGeneral, resolved)
	assert.False(t, known)

	resolved, known = m.Resolve(domain.CategoryGaming)
	assert.Equal(t, domain.CategoryGaming, resolved)
	assert.True(t, known)
}

func TestStats(t *testing.T) {
	t.Parallel()

	m := loadModel(t)

	stats := m.Stats("vlog")
	assert.Equal(t, domain.Category("vlog"), stats.Category)
	assert.Len(t, stats.PeakTimes, 3)
	assert.Equal(t, m.Bands(domain.CategoryGeneral, domain.DayTypeWeekend), stats.PeakTimes[domain.DayTypeWeekend])
	assert.Equal(t, "20:00-22:00", stats.GeneralStats.AveragePeakTime)
	assert.Equal(t, "15:00-17:00", stats.GeneralStats.HolidayShift)
	assert.Equal(t, []string{"화요일", "수요일", "목요일"}, stats.Recommendations.BestUploadDays)

	stats.Recommendations.AvoidDays[0] = "changed"
	assert.Equal(t, "월요일", m.Stats(domain.CategoryGeneral).Recommendations.AvoidDays[0])
}

func TestParse_RejectsIncompleteTable(t *testing.T) {
	t.Parallel()

	_, err := parse([]byte(`
categories:
  general:
    weekday: {peak: "20:00-22:00", secondary: "12:00-14:00", late: "22:00-24:00"}
`))
	require.Error(t, err)

	_, err = parse([]byte(`
categories:
  gaming:
    weekday: {peak: "20:00-22:00", secondary: "12:00-14:00", late: "22:00-24:00"}
`))
	require.Error(t, err)
}
