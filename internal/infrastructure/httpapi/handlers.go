package httpapi

import (
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
)

const (
	maxMessageLength = 4000
	maxChatTokens    = 8000
)

type handlers struct {
	service            Service
	server             config.ServerConfig
	defaultTemperature float32
	location           *time.Location
	now                func() time.Time
	logger             *slog.Logger
}

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type recommendationText struct {
	Text          string  `json:"text"`
	ExtractedTime *string `json:"extractedTime"`
}

type recommendData struct {
	Date           domain.Date          `json:"date"`
	DayName        string               `json:"dayName"`
	DayType        domain.DayType       `json:"dayType"`
	Holiday        *domain.HolidayEntry `json:"holiday"`
	ContentType    domain.Category      `json:"contentType"`
	PeakTimes      domain.PeakBands     `json:"peakTimes"`
	Recommendation recommendationText   `json:"recommendation"`
	Timestamp      string               `json:"timestamp"`
}

type weeklyData struct {
	WeekStart            domain.Date                 `json:"weekStart"`
	WeekStartName        string                      `json:"weekStartName"`
	ContentType          domain.Category             `json:"contentType"`
	WeeklyRecommendation domain.WeeklyRecommendation `json:"weeklyRecommendation"`
	Timestamp            string                      `json:"timestamp"`
}

type statsData struct {
	ContentType domain.Category      `json:"contentType"`
	Stats       domain.CategoryStats `json:"stats"`
	Timestamp   string               `json:"timestamp"`
}

type chatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model"`
	MaxTokens   *int     `json:"max_tokens"`
	Temperature *float32 `json:"temperature"`
}

type chatData struct {
	Message   string            `json:"message"`
	Model     string            `json:"model"`
	Usage     domain.TokenUsage `json:"usage"`
	Timestamp string            `json:"timestamp"`
}

func (h *handlers) timestamp() string {
	return h.now().In(h.location).Format(time.RFC3339)
}

func (h *handlers) today() domain.Date {
	return domain.DateOf(h.now().In(h.location))
}

func (h *handlers) ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Timestamp: h.timestamp()})
}

func contentType(c echo.Context) domain.Category {
	if v := c.QueryParam("content_type"); v != "" {
		return domain.Category(v)
	}
	return domain.DefaultCategory
}

func (h *handlers) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "업로드 시간 추천 API 서버가 실행 중입니다!",
		"endpoints": map[string]string{
			"chat":             "/api/chat/message",
			"uploadTime":       "/api/upload-time/recommend",
			"weeklyUploadTime": "/api/upload-time/weekly-recommend",
			"uploadStats":      "/api/upload-time/stats",
			"health":           "/health",
			"metrics":          "/metrics",
		},
		"timestamp": h.timestamp(),
	})
}

func (h *handlers) health(c echo.Context) error {
	environment := h.server.Environment
	if environment == "" {
		environment = "production"
		if h.server.Debug {
			environment = "development"
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "OK",
		"timestamp":   h.timestamp(),
		"version":     h.server.Version,
		"environment": environment,
	})
}

func (h *handlers) recommend(c echo.Context) error {
	category := contentType(c)
	date := h.today()

	rec, err := h.service.RecommendForDate(c.Request().Context(), date, category)
	if err != nil {
		return apiError(err, "업로드 시간 추천 중 오류가 발생했습니다")
	}

	return h.ok(c, recommendData{
		Date:        rec.Date,
		DayName:     rec.DayName,
		DayType:     rec.DayType,
		Holiday:     rec.Holiday,
		ContentType: rec.Category,
		PeakTimes:   rec.Bands,
		Recommendation: recommendationText{
			Text:          rec.GeneratedText,
			ExtractedTime: rec.ExtractedTime,
		},
		Timestamp: h.timestamp(),
	})
}

func (h *handlers) weeklyRecommend(c echo.Context) error {
	category := contentType(c)
	start := h.today()

	week, err := h.service.RecommendForWeek(c.Request().Context(), start, category)
	if err != nil {
		return apiError(err, "주간 업로드 시간 추천 중 오류가 발생했습니다")
	}

	return h.ok(c, weeklyData{
		WeekStart:            start,
		WeekStartName:        start.KoreanLabel(),
		ContentType:          category,
		WeeklyRecommendation: week,
		Timestamp:            h.timestamp(),
	})
}

func (h *handlers) stats(c echo.Context) error {
	category := contentType(c)
	return h.ok(c, statsData{
		ContentType: category,
		Stats:       h.service.StatsForCategory(category),
		Timestamp:   h.timestamp(),
	})
}

func (h *handlers) chatMessage(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "요청 본문을 해석할 수 없습니다.")
	}

	if n := utf8.RuneCountInString(req.Message); n < 1 || n > maxMessageLength {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "message는 1자 이상 4000자 이하여야 합니다.")
	}

	gen := domain.GenerationRequest{
		Prompt:      req.Message,
		Model:       req.Model,
		Temperature: h.defaultTemperature,
	}
	if req.MaxTokens != nil {
		if *req.MaxTokens < 1 || *req.MaxTokens > maxChatTokens {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "max_tokens는 1 이상 8000 이하여야 합니다.")
		}
		gen.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		if *req.Temperature < 0 || *req.Temperature > 2 {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "temperature는 0 이상 2 이하여야 합니다.")
		}
		gen.Temperature = *req.Temperature
	}

	completion, err := h.service.Generate(c.Request().Context(), gen)
	if err != nil {
		return apiError(err, "ChatGPT API 호출 중 오류가 발생했습니다")
	}

	return h.ok(c, chatData{
		Message:   completion.Text,
		Model:     completion.Model,
		Usage:     completion.Usage,
		Timestamp: h.timestamp(),
	})
}
