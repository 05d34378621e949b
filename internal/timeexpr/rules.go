package timeexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule recognizes one surface form and renders it canonically.
type Rule interface {
	Name() string
	TryMatch(text string) (string, bool)
}

// Patterns in priority order. Period-marked forms come first.
var (
	periodHourPattern   = regexp.MustCompile(`(오전|오후)\s*(\d{1,2})시`)
	periodRangePattern  = regexp.MustCompile(`(오전|오후)\s*(\d{1,2})-(\d{1,2})시`)
	periodApproxPattern = regexp.MustCompile(`(오전|오후)\s*(\d{1,2})시경`)
	periodTildePattern  = regexp.MustCompile(`(오전|오후)\s*(\d{1,2})시~(\d{1,2})시`)
	clockPattern        = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	hourPattern         = regexp.MustCompile(`(\d{1,2})시`)
	rangePattern        = regexp.MustCompile(`(\d{1,2})-(\d{1,2})시`)
	approxPattern       = regexp.MustCompile(`(\d{1,2})시경`)
	tildePattern        = regexp.MustCompile(`(\d{1,2})시~(\d{1,2})시`)

	tildeTailPattern = regexp.MustCompile(`^~\d`)
)

// patternRule pairs a regular expression with a context guard and a renderer.
// The first match that passes the guard and renders wins.
type patternRule struct {
	name   string
	re     *regexp.Regexp
	guard  func(text string, start, end int) bool
	render func(groups []string) (string, bool)
}

func (r patternRule) Name() string {
	return r.name
}

func (r patternRule) TryMatch(text string) (string, bool) {
	for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if r.guard != nil && !r.guard(text, start, end) {
			continue
		}

		groups := make([]string, 0, len(loc)/2-1)
		for i := 2; i+1 < len(loc); i += 2 {
			if loc[i] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, text[loc[i]:loc[i+1]])
		}

		if out, ok := r.render(groups); ok {
			return out, true
		}
	}
	return "", false
}

// DefaultRules returns the extraction rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		patternRule{
			name:  "period-hour",
			re:    periodHourPattern,
			guard: not(followedByApprox, followedByTildeRange),
			render: func(g []string) (string, bool) {
				return fmt.Sprintf("%s %s시", g[0], g[1]), true
			},
		},
		patternRule{
			name: "period-range",
			re:   periodRangePattern,
			render: func(g []string) (string, bool) {
				return fmt.Sprintf("%s %s-%s시", g[0], g[1], g[2]), true
			},
		},
		patternRule{
			name: "period-approx",
			re:   periodApproxPattern,
			render: func(g []string) (string, bool) {
				return fmt.Sprintf("%s %s시경", g[0], g[1]), true
			},
		},
		patternRule{
			name: "period-tilde",
			re:   periodTildePattern,
			render: func(g []string) (string, bool) {
				return fmt.Sprintf("%s %s시~%s시", g[0], g[1], g[2]), true
			},
		},
		patternRule{
			name:   "clock",
			re:     clockPattern,
			guard:  not(precededByDigit, followedByDigit),
			render: renderClock,
		},
		patternRule{
			name:   "hour",
			re:     hourPattern,
			guard:  not(precededByDigit, precededByRangeMark, followedByApprox, followedByTildeRange),
			render: renderHour(""),
		},
		patternRule{
			name:   "range",
			re:     rangePattern,
			guard:  not(precededByDigit),
			render: renderRange("-"),
		},
		patternRule{
			name:   "approx",
			re:     approxPattern,
			guard:  not(precededByDigit, precededByRangeMark),
			render: renderHour("경"),
		},
		patternRule{
			name:   "tilde",
			re:     tildePattern,
			guard:  not(precededByDigit),
			render: renderRange("~"),
		},
	}
}

func renderClock(g []string) (string, bool) {
	hour, ok := parseHour(g[0])
	if !ok {
		return "", false
	}
	minute, err := strconv.Atoi(g[1])
	if err != nil || minute > 59 {
		return "", false
	}
	period, hour12 := ConvertHourTo12(hour)
	return fmt.Sprintf("%s %d시%s분", period, hour12, g[1]), true
}

func renderHour(suffix string) func([]string) (string, bool) {
	return func(g []string) (string, bool) {
		hour, ok := parseHour(g[0])
		if !ok {
			return "", false
		}
		period, hour12 := ConvertHourTo12(hour)
		return fmt.Sprintf("%s %d시%s", period, hour12, suffix), true
	}
}

func renderRange(sep string) func([]string) (string, bool) {
	return func(g []string) (string, bool) {
		startHour, ok := parseHour(g[0])
		if !ok {
			return "", false
		}
		endHour, ok := parseHour(g[1])
		if !ok {
			return "", false
		}

		startPeriod, start12 := ConvertHourTo12(startHour)
		endPeriod, end12 := ConvertHourTo12(endHour)
		if startPeriod == endPeriod {
			return fmt.Sprintf("%s %d%s%d시", startPeriod, start12, sep, end12), true
		}
		return fmt.Sprintf("%s %d시%s%s %d시", startPeriod, start12, sep, endPeriod, end12), true
	}
}

// parseHour accepts 24-hour clock values only.
func parseHour(s string) (int, bool) {
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

type contextCheck func(text string, start, end int) bool

// not passes when none of the checks hold.
func not(checks ...contextCheck) func(string, int, int) bool {
	return func(text string, start, end int) bool {
		for _, check := range checks {
			if check(text, start, end) {
				return false
			}
		}
		return true
	}
}

func precededByDigit(text string, start, _ int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return r != utf8.RuneError && unicode.IsDigit(r)
}

// precededByRangeMark catches the second hour of "6-8시" and "6시~8시".
func precededByRangeMark(text string, start, _ int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return r == '-' || r == '~'
}

func followedByDigit(text string, _, end int) bool {
	r, _ := utf8.DecodeRuneInString(text[end:])
	return r != utf8.RuneError && unicode.IsDigit(r)
}

func followedByApprox(text string, _, end int) bool {
	return strings.HasPrefix(text[end:], "경")
}

func followedByTildeRange(text string, _, end int) bool {
	return tildeTailPattern.MatchString(text[end:])
}
