package observ_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "2 files")
	tm.Record("sort", 3*time.Millisecond, "")
	tm.End(42, "ignored")

	report := tm.Report()
	require.Len(t, report.Phases, 2)
	assert.Equal(t, "lex", report.Phases[0].Name)
	assert.Equal(t, "2 files", report.Phases[0].Note)
	assert.InDelta(t, 3.0, report.Phases[1].DurationMS, 0.001)
	assert.GreaterOrEqual(t, report.TotalMS, 3.0)

	summary := tm.Summary()
	assert.True(t, strings.HasPrefix(summary, "timings:\n"))
	assert.Contains(t, summary, "// 2 files")
	assert.Contains(t, summary, "total")
}

func TestEmptyTimer(t *testing.T) {
	assert.Equal(t, observ.Report{}, observ.NewTimer().Report())
}
