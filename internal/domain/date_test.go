package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_KoreanLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024년 02월 10일 토요일", NewDate(2024, time.February, 10).KoreanLabel())
	assert.Equal(t, "2025년 12월 01일 월요일", NewDate(2025, time.December, 1).KoreanLabel())
}

func TestDate_AddDaysCrossesMonthAndYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewDate(2024, time.March, 1), NewDate(2024, time.February, 28).AddDays(2))
	assert.Equal(t, NewDate(2025, time.January, 3), NewDate(2024, time.December, 28).AddDays(6))
}

func TestDate_JSONUsesISOForm(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(HolidayEntry{Date: NewDate(2024, time.April, 10), Name: "국회의원선거", Kind: HolidayKindElection})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-04-10","name":"국회의원선거","type":"election"}`, string(raw))

	var back HolidayEntry
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, NewDate(2024, time.April, 10), back.Date)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestCollaboratorError_Unwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := &CollaboratorError{Operation: "daily", Date: "2024-02-10", Category: CategoryGaming, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "daily 2024-02-10 (category gaming): text generation failed: timeout", err.Error())
}
