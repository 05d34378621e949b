package domain

// DayType classifies a calendar day for scheduling purposes.
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
)

// DayTypes lists every classification in table order.
var DayTypes = []DayType{DayTypeWeekday, DayTypeWeekend, DayTypeHoliday}

// HolidayKind distinguishes public holidays from election days.
type HolidayKind string

const (
	HolidayKindHoliday  HolidayKind = "holiday"
	HolidayKindElection HolidayKind = "election"
)

// HolidayEntry is a named special day from the holiday table.
type HolidayEntry struct {
	Date Date        `json:"date" yaml:"date"`
	Name string      `json:"name" yaml:"name"`
	Kind HolidayKind `json:"type" yaml:"type"`
}

// Category selects which peak-time table applies.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryEntertainment Category = "entertainment"
	CategoryEducation     Category = "education"
	CategoryGaming        Category = "gaming"
)

// DefaultCategory is used for unknown categories.
const DefaultCategory = CategoryGeneral

// BandLabel names a peak band.
type BandLabel string

const (
	BandPrimary   BandLabel = "primary"
	BandSecondary BandLabel = "secondary"
	BandLate      BandLabel = "late"
)

// PeakBand is a named "HH:MM-HH:MM" window.
type PeakBand struct {
	Label  BandLabel `json:"label"`
	Window string    `json:"window"`
}

// PeakBands holds the three bands of a category/day-type pair.
type PeakBands struct {
	Primary   PeakBand `json:"peak"`
	Secondary PeakBand `json:"secondary"`
	Late      PeakBand `json:"late"`
}

// DailyRecommendation is the per-day result of the orchestrator.
type DailyRecommendation struct {
	Date          Date          `json:"date"`
	DayName       string        `json:"dayName"`
	DayType       DayType       `json:"dayType"`
	Holiday       *HolidayEntry `json:"holiday"`
	Category      Category      `json:"contentType"`
	Bands         PeakBands     `json:"peakTimes"`
	GeneratedText string        `json:"recommendation"`
	ExtractedTime *string       `json:"extractedTime"`
}

// WeeklyAnalysis is the whole-week collaborator answer.
type WeeklyAnalysis struct {
	GeneratedText string  `json:"text"`
	ExtractedTime *string `json:"extractedTime"`
}

// WeeklySummary counts day types over the seven days.
type WeeklySummary struct {
	TotalDays   int `json:"totalDays"`
	HolidayDays int `json:"holidayDays"`
	WeekendDays int `json:"weekendDays"`
	WeekdayDays int `json:"weekdayDays"`
}

// WeeklyRecommendation aggregates seven consecutive days.
type WeeklyRecommendation struct {
	WeekStart Date                  `json:"weekStart"`
	Category  Category              `json:"contentType"`
	Days      []DailyRecommendation `json:"dailyRecommendations"`
	Analysis  WeeklyAnalysis        `json:"weeklyAnalysis"`
	Summary   WeeklySummary         `json:"summary"`
}

// GeneralStats are the category-independent reference windows.
type GeneralStats struct {
	AveragePeakTime   string `json:"averagePeakTime" yaml:"averagePeakTime"`
	SecondaryPeakTime string `json:"secondaryPeakTime" yaml:"secondaryPeakTime"`
	LateNightTime     string `json:"lateNightTime" yaml:"lateNightTime"`
	WeekendShift      string `json:"weekendShift" yaml:"weekendShift"`
	HolidayShift      string `json:"holidayShift" yaml:"holidayShift"`
}

// TextualRecommendations are canned upload strategies.
type TextualRecommendations struct {
	BestUploadDays  []string `json:"bestUploadDays" yaml:"bestUploadDays"`
	AvoidDays       []string `json:"avoidDays" yaml:"avoidDays"`
	HolidayStrategy string   `json:"holidayStrategy" yaml:"holidayStrategy"`
	WeekendStrategy string   `json:"weekendStrategy" yaml:"weekendStrategy"`
}

// CategoryStats is the static lookup returned by the stats operation.
type CategoryStats struct {
	Category        Category               `json:"contentType"`
	PeakTimes       map[DayType]PeakBands  `json:"peakTimes"`
	GeneralStats    GeneralStats           `json:"generalStats"`
	Recommendations TextualRecommendations `json:"recommendations"`
}
