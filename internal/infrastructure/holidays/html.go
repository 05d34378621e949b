package holidays

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"UploadTimeAdvisor/internal/domain"
)

const defaultRowSelector = "table tr"

var htmlDateLayouts = []string{
	"2006-1-2",
	"2006.1.2",
	"2006/1/2",
	"2006년 1월 2일",
}

// HTMLLoader scrapes a holiday table: first cell date, second cell name.
type HTMLLoader struct {
	client *http.Client
}

// NewHTMLLoader wires an HTTP client; a nil client gets a 20s timeout.
func NewHTMLLoader(client *http.Client) *HTMLLoader {
	return &HTMLLoader{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (l *HTMLLoader) Name() string {
	return "html"
}

// Load fetches the page and extracts table rows. options.rowSelector
// overrides the default "table tr".
func (l *HTMLLoader) Load(ctx context.Context, req Request) ([]domain.HolidayEntry, error) {
	body, err := open(ctx, l.client, req.URL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return extractRows(doc, req.Options["rowSelector"]), nil
}

func extractRows(doc *goquery.Document, rowSelector string) []domain.HolidayEntry {
	if rowSelector == "" {
		rowSelector = defaultRowSelector
	}

	var entries []domain.HolidayEntry
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		date, ok := parseLooseDate(cells.Eq(0).Text())
		if !ok {
			return
		}
		name := strings.Join(strings.Fields(cells.Eq(1).Text()), " ")
		if name == "" {
			return
		}

		entries = append(entries, domain.HolidayEntry{
			Date: date,
			Name: name,
			Kind: kindForName(name),
		})
	})

	return entries
}

// parseLooseDate accepts the common Korean table notations, optionally
// followed by a parenthesized weekday such as "2024.02.10(토)".
func parseLooseDate(raw string) (domain.Date, bool) {
	value := strings.TrimSpace(raw)
	if i := strings.IndexAny(value, "(（"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	value = strings.TrimSuffix(value, ".")

	for _, layout := range htmlDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return domain.DateOf(t), true
		}
	}
	return domain.Date{}, false
}
