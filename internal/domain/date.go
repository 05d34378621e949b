package domain

import (
	"fmt"
	"time"
)

const isoLayout = "2006-01-02"

// Date is a calendar day without time or zone. Values are comparable and
// safe to use as map keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes the given components (e.g. Feb 30 becomes Mar 1/2).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf takes the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(isoLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday of the day.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays moves by whole calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// String renders the ISO-8601 form used as holiday table key.
func (d Date) String() string {
	return d.Time().Format(isoLayout)
}

// KoreanLabel renders "2024년 02월 10일 토요일".
func (d Date) KoreanLabel() string {
	return fmt.Sprintf("%d년 %02d월 %02d일 %s", d.Year, int(d.Month), d.Day, KoreanWeekday(d.Weekday()))
}

// MarshalText keeps JSON/YAML output in ISO form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the ISO form.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var koreanWeekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// KoreanWeekday names a weekday in Korean.
func KoreanWeekday(w time.Weekday) string {
	return koreanWeekdays[w]
}
