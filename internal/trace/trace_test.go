package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/trace"
)

func streamCtx(level trace.Level, format trace.Format) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, level, format)
	return trace.WithTracer(context.Background(), tr), &buf
}

func TestLevelScopes(t *testing.T) {
	tests := []struct {
		level trace.Level
		want  []string
	}{
		{trace.LevelError, nil},
		{trace.LevelPhase, []string{"cmd", "parse"}},
		{trace.LevelDetail, []string{"cmd", "parse", "file"}},
		{trace.LevelDebug, []string{"cmd", "parse", "file", "skip"}},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			ctx, buf := streamCtx(tt.level, trace.FormatNDJSON)
			ctx, root := trace.Start(ctx, trace.ScopeDriver, "cmd")
			ctx, pass := trace.Start(ctx, trace.ScopePass, "parse")
			_, file := trace.StartFile(ctx, "file", "a.trace")
			file.Line(3, "skip", "")
			file.End("")
			pass.End("")
			root.End("")

			var names []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var ev map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &ev))
				if ev["kind"] != "end" {
					names = append(names, ev["name"].(string))
				}
			}
			assert.Equal(t, tt.want, names)
		})
	}

	lvl, err := trace.ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, trace.LevelDetail, lvl)
	_, err = trace.ParseLevel("loud")
	assert.Error(t, err)
}

func TestFileSpanCarriesPathAndCounts(t *testing.T) {
	ctx, buf := streamCtx(trace.LevelDebug, trace.FormatNDJSON)
	ctx, pass := trace.Start(ctx, trace.ScopePass, "parse")
	_, span := trace.StartFile(ctx, "parse", "a.trace")
	span.Count("lines", 4).Count("skipped", 1).Count("skipped", 1)
	span.Line(4, "skip", "no match")
	span.WithExtra("cached", "false").End("ok")
	span.End("twice")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var begin, point, end map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &begin))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &point))
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &end))

	assert.Equal(t, float64(pass.ID()), begin["parent_id"])
	assert.Equal(t, "a.trace", begin["file"])
	assert.Equal(t, "a.trace", point["file"])
	assert.Equal(t, float64(4), point["line"])
	assert.Equal(t, begin["span_id"], point["parent_id"])
	assert.Equal(t, "file", end["scope"])
	assert.Equal(t, "ok", end["detail"])
	assert.Equal(t, map[string]any{"lines": "4", "skipped": "2", "cached": "false"}, end["extra"])
}

func TestTextFormat(t *testing.T) {
	ctx, buf := streamCtx(trace.LevelDebug, trace.FormatText)
	ctx, root := trace.Start(ctx, trace.ScopeDriver, "parse")
	root.WithExtra("run", "r1").WithExtra("files", "2")
	_, file := trace.StartFile(ctx, "parse", "a.trace")
	file.Line(12, "skip", "")
	file.End("")
	root.End("")

	out := buf.String()
	assert.Contains(t, out, "→ parse\n")
	assert.Contains(t, out, "→ parse a.trace\n")
	assert.Contains(t, out, "• skip a.trace:12\n")
	assert.Contains(t, out, "← parse {files=2, run=r1}")
}

func TestInertSpans(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, trace.Nop, trace.FromContext(ctx))

	inner, span := trace.StartFile(ctx, "parse", "a.trace")
	assert.Equal(t, ctx, inner)
	assert.Zero(t, span.ID())
	span.Count("lines", 1).WithExtra("k", "v").Line(1, "skip", "")
	assert.Zero(t, span.End(""))
}

func TestRingDumpGroupsByFile(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	ctx, pass := trace.Start(ctx, trace.ScopePass, "parse")
	_, a := trace.StartFile(ctx, "read", "a.trace")
	_, b := trace.StartFile(ctx, "read", "b.trace")
	a.End("")
	b.End("read b.trace: no such file")
	pass.End("")

	assert.Equal(t, 6, ring.Len())
	last, ok := ring.LastFile()
	require.True(t, ok)
	assert.Equal(t, "b.trace", last)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, trace.FormatText))
	out := buf.String()
	run := strings.Index(out, "-- run\n")
	fileA := strings.Index(out, "-- a.trace\n")
	fileB := strings.Index(out, "-- b.trace\n")
	require.True(t, run >= 0 && fileA > run && fileB > fileA, out)
	assert.Contains(t, out[fileB:], "(read b.trace: no such file)")
	assert.Equal(t, 2, strings.Count(out[run:fileA], "parse"))
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := trace.NewRingTracer(2, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c"} {
		_, span := trace.Start(ctx, trace.ScopePass, name)
		span.End("")
	}
	assert.Equal(t, 2, ring.Len())

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, trace.FormatNDJSON))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"kind":"begin"`)
	assert.Contains(t, lines[1], `"name":"c"`)
	_, ok := ring.LastFile()
	assert.False(t, ok)
}

func TestNewModes(t *testing.T) {
	off, err := trace.New(trace.Config{Level: trace.LevelOff})
	require.NoError(t, err)
	assert.False(t, off.Enabled())

	var buf bytes.Buffer
	both, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf})
	require.NoError(t, err)
	_, span := trace.Start(trace.WithTracer(context.Background(), both), trace.ScopePass, "sort")
	span.End("")
	ring, ok := trace.FindRing(both)
	require.True(t, ok)
	assert.Equal(t, 2, ring.Len())
	assert.Contains(t, buf.String(), "sort")
	require.NoError(t, both.Close())
}

func TestMulti(t *testing.T) {
	assert.Equal(t, trace.Nop, trace.Multi(nil, trace.Nop))

	ring := trace.NewRingTracer(4, trace.LevelDetail)
	assert.Same(t, ring, trace.Multi(trace.Nop, ring))

	var buf bytes.Buffer
	stream := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	multi := trace.Multi(stream, ring)
	assert.Equal(t, trace.LevelDetail, multi.Level())
	_, span := trace.StartFile(trace.WithTracer(context.Background(), multi), "parse", "a.trace")
	span.End("")
	assert.Equal(t, 2, ring.Len())
	assert.Empty(t, buf.String())
}

func TestHeartbeatNamesOpenFiles(t *testing.T) {
	var buf syncBuffer
	tr := trace.NewStreamTracer(&buf, trace.LevelError, trace.FormatText)
	_, span := trace.StartFile(trace.WithTracer(context.Background(), trace.NewRingTracer(4, trace.LevelDetail)), "parse", "stuck.trace")
	defer span.End("")

	hb := trace.StartHeartbeat(tr, 5*time.Millisecond)
	require.NotNil(t, hb)
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "stuck.trace")
	}, time.Second, 5*time.Millisecond)
	hb.Stop()
	hb.Stop()
	assert.Contains(t, buf.String(), "♡ heartbeat (#1")

	assert.Nil(t, trace.StartHeartbeat(trace.Nop, time.Millisecond))
	var nilBeat *trace.Heartbeat
	nilBeat.Stop()
}

func TestRunID(t *testing.T) {
	id, err := uuid.Parse(trace.NewRunID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}
