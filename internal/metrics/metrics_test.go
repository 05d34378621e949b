package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"UploadTimeAdvisor/internal/domain"
)

func TestRecordGeneration(t *testing.T) {
	m := New()

	m.RecordGeneration("daily", nil, 150*time.Millisecond, domain.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	m.RecordGeneration("daily", errors.New("boom"), time.Second, domain.TokenUsage{PromptTokens: 99})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationTotal.WithLabelValues("daily", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationTotal.WithLabelValues("daily", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.TokensTotal.WithLabelValues("prompt")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.TokensTotal.WithLabelValues("completion")))
}

func TestRecordExtraction(t *testing.T) {
	m := New()

	m.RecordExtraction(true)
	m.RecordExtraction(true)
	m.RecordExtraction(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExtractionTotal.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionTotal.WithLabelValues("none")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordGeneration("daily", nil, time.Second, domain.TokenUsage{})
		m.RecordExtraction(false)
	})
}
