package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"UploadTimeAdvisor/internal/infrastructure/llm"
)

type errorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}

// apiError converts a use-case error into an echo.HTTPError.
func apiError(err error, operation string) *echo.HTTPError {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, llm.ErrQuotaExceeded):
		return echo.NewHTTPError(http.StatusPaymentRequired, "API 할당량이 부족합니다. OpenAI API 할당량을 확인해주세요.").SetInternal(err)
	case errors.Is(err, llm.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "유효하지 않은 API 키입니다. OpenAI API 키를 확인해주세요.").SetInternal(err)
	case errors.Is(err, llm.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "API 요청 한도를 초과했습니다. 잠시 후 다시 시도해주세요.").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("%s: %v", operation, err)).SetInternal(err)
	}
}

func (h *handlers) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "서버 내부 오류가 발생했습니다."

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request error", "path", c.Path(), "status", status, "error", err)
	}

	body := errorBody{Error: message, StatusCode: status, Timestamp: h.timestamp()}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		h.logger.Error("write error response", "error", writeErr)
	}
}
