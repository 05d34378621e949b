// Package timeexpr finds clock-time mentions in generated Korean sentences
// and rewrites them into the canonical "오전/오후 H시" form.
package timeexpr

// Period is the Korean half-day marker.
type Period string

const (
	Morning   Period = "오전"
	Afternoon Period = "오후"
)

// ConvertHourTo12 maps a 24-hour clock hour to its half-day period and
// 12-hour value. Midnight is 오전 12, noon is 오후 12.
func ConvertHourTo12(hour int) (Period, int) {
	switch {
	case hour == 0:
		return Morning, 12
	case hour < 12:
		return Morning, hour
	case hour == 12:
		return Afternoon, 12
	default:
		return Afternoon, hour - 12
	}
}

// ConvertHourTo24 is the inverse of ConvertHourTo12.
func ConvertHourTo24(period Period, hour12 int) int {
	if period == Morning {
		if hour12 == 12 {
			return 0
		}
		return hour12
	}
	if hour12 == 12 {
		return 12
	}
	return hour12 + 12
}
