package usecase

import (
	"fmt"
	"strings"

	"UploadTimeAdvisor/internal/domain"
)

const oneLineInstruction = "반드시 한 줄로만 답변해주세요."

func buildDailyPrompt(date domain.Date, category domain.Category, dayType domain.DayType, holiday *domain.HolidayEntry, bands domain.PeakBands) string {
	var b strings.Builder

	fmt.Fprintf(&b, "현재 날짜: %s (%s)\n", date.KoreanLabel(), date)
	fmt.Fprintf(&b, "콘텐츠 타입: %s\n", category)
	fmt.Fprintf(&b, "요일 타입: %s\n", dayType)
	if holiday != nil {
		fmt.Fprintf(&b, "특별한 날: %s\n", holiday.Name)
	}

	b.WriteString("\n이 날의 시청 피크 시간대:\n")
	fmt.Fprintf(&b, "- 피크: %s\n", bands.Primary.Window)
	fmt.Fprintf(&b, "- 보조 피크: %s\n", bands.Secondary.Window)
	fmt.Fprintf(&b, "- 심야: %s\n", bands.Late.Window)

	b.WriteString("\n한국의 일반적인 동영상 시청 패턴:\n")
	b.WriteString("- 평일: 저녁 8-10시가 피크, 점심 12-2시가 보조 피크\n")
	b.WriteString("- 주말: 오후 2-4시가 피크, 저녁 8-10시가 보조 피크\n")
	b.WriteString("- 명절/휴일: 오후 3-5시가 피크, 저녁 8-10시가 보조 피크\n")

	b.WriteString("\n위 정보를 바탕으로 한 줄로 간결하게 업로드 시간을 추천해주세요.\n\n")
	b.WriteString(`예시 형식: "보통 한국은 저녁 8~10시가 피크지만, 이번주는 명절이라 오후 3시에도 조회수가 급증할것으로 보입니다. 따라서 이번 주는 오후 3~5시 업로드를 추천드립니다."`)
	b.WriteString("\n\n")
	b.WriteString(oneLineInstruction)

	return b.String()
}

func buildWeeklyPrompt(days []domain.DailyRecommendation, category domain.Category) string {
	dates := make([]string, 0, len(days))
	var holidays []string
	for _, day := range days {
		dates = append(dates, day.Date.String())
		if day.Holiday != nil {
			holidays = append(holidays, day.Holiday.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "분석 기간: %s\n", strings.Join(dates, ", "))
	fmt.Fprintf(&b, "콘텐츠 타입: %s\n", category)
	if len(holidays) > 0 {
		fmt.Fprintf(&b, "포함된 명절/특별한 날: %s\n", strings.Join(holidays, ", "))
	}

	b.WriteString("\n이 주간의 동영상 업로드 전략을 한 줄로 간결하게 추천해주세요.\n\n")
	b.WriteString(`예시 형식: "이번 주는 명절 연휴가 포함되어 있어 평소보다 오후 시간대 시청이 증가할 것으로 예상됩니다. 따라서 오후 3~5시 업로드를 추천드립니다."`)
	b.WriteString("\n\n")
	b.WriteString(oneLineInstruction)

	return b.String()
}
