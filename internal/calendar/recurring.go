package calendar

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"UploadTimeAdvisor/internal/domain"
)

// ExpandRecurring materializes the rules for every year in [fromYear, toYear].
// A zero or inverted range yields nothing.
func ExpandRecurring(rules []RecurringHoliday, fromYear, toYear int) ([]domain.HolidayEntry, error) {
	if fromYear <= 0 || toYear < fromYear {
		return nil, nil
	}

	rangeStart := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(toYear, time.December, 31, 23, 59, 59, 0, time.UTC)

	var out []domain.HolidayEntry
	for _, rule := range rules {
		r, err := rrule.StrToRRule(rule.Rule)
		if err != nil {
			return nil, fmt.Errorf("holiday %s: parse rule %q: %w", rule.Name, rule.Rule, err)
		}
		r.DTStart(rangeStart)

		kind := rule.Kind
		if kind == "" {
			kind = domain.HolidayKindHoliday
		}
		for _, occ := range r.Between(rangeStart, rangeEnd, true) {
			out = append(out, domain.HolidayEntry{
				Date: domain.DateOf(occ),
				Name: rule.Name,
				Kind: kind,
			})
		}
	}
	return out, nil
}
