// Package calendar classifies calendar days into weekday, weekend or holiday.
package calendar

import (
	"time"

	"UploadTimeAdvisor/internal/domain"
)

// Calendar is an immutable holiday table. Build it once at start-up and share
// it freely; nothing mutates it afterwards.
type Calendar struct {
	holidays map[string]domain.HolidayEntry
}

// New indexes entries by ISO date. Later entries for the same date replace
// earlier ones.
func New(entries ...[]domain.HolidayEntry) *Calendar {
	table := make(map[string]domain.HolidayEntry)
	for _, group := range entries {
		for _, entry := range group {
			if entry.Kind == "" {
				entry.Kind = domain.HolidayKindHoliday
			}
			table[entry.Date.String()] = entry
		}
	}
	return &Calendar{holidays: table}
}

// IsHoliday returns the table entry for the date, if any.
func (c *Calendar) IsHoliday(date domain.Date) (domain.HolidayEntry, bool) {
	entry, ok := c.holidays[date.String()]
	return entry, ok
}

// DayType classifies the date. A holiday always wins over weekday/weekend.
func (c *Calendar) DayType(date domain.Date) domain.DayType {
	if _, ok := c.IsHoliday(date); ok {
		return domain.DayTypeHoliday
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.DayTypeWeekend
	default:
		return domain.DayTypeWeekday
	}
}

// Classify resolves day type and holiday entry in one lookup.
func (c *Calendar) Classify(date domain.Date) (domain.DayType, *domain.HolidayEntry) {
	if entry, ok := c.IsHoliday(date); ok {
		return domain.DayTypeHoliday, &entry
	}
	return c.DayType(date), nil
}

// Len reports the number of special days in the table.
func (c *Calendar) Len() int {
	return len(c.holidays)
}
