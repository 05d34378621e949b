package holidays

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"UploadTimeAdvisor/internal/domain"
)

const icsDateLayout = "20060102"

// ICSLoader reads all-day VEVENTs from an iCalendar feed.
type ICSLoader struct {
	client *http.Client
}

// NewICSLoader wires an HTTP client; a nil client gets a 20s timeout.
func NewICSLoader(client *http.Client) *ICSLoader {
	return &ICSLoader{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (l *ICSLoader) Name() string {
	return "ics"
}

// Load fetches and parses the feed.
func (l *ICSLoader) Load(ctx context.Context, req Request) ([]domain.HolidayEntry, error) {
	body, err := open(ctx, l.client, req.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParseICS(body)
}

// ParseICS converts VEVENTs into holiday entries named by their SUMMARY.
// Multi-day all-day events produce one entry per day (DTEND is exclusive).
// Events without a usable DTSTART are skipped.
func ParseICS(r io.Reader) ([]domain.HolidayEntry, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var entries []domain.HolidayEntry
	for _, ve := range cal.Events() {
		summary := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = strings.TrimSpace(p.Value)
		}
		if summary == "" {
			continue
		}

		start, ok := propertyDate(ve, ical.ComponentPropertyDtStart)
		if !ok {
			continue
		}
		days := 1
		if end, ok := propertyDate(ve, ical.ComponentPropertyDtEnd); ok {
			if n := int(end.Sub(start).Hours() / 24); n > 1 {
				days = n
			}
		}

		kind := kindForName(summary)
		for i := 0; i < days; i++ {
			entries = append(entries, domain.HolidayEntry{
				Date: domain.DateOf(start.AddDate(0, 0, i)),
				Name: summary,
				Kind: kind,
			})
		}
	}

	return entries, nil
}

// propertyDate reads the calendar day of a DATE or DATE-TIME property.
func propertyDate(ve *ical.VEvent, prop ical.ComponentProperty) (time.Time, bool) {
	p := ve.GetProperty(prop)
	if p == nil || len(p.Value) < len(icsDateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(icsDateLayout, p.Value[:len(icsDateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
