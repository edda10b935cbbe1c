package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/diag"
	"arttrace/internal/driver"
	"arttrace/internal/fact"
	"arttrace/internal/observ"
	"arttrace/internal/pipeline"
	"arttrace/internal/source"
)

const sampleTrace = `// {
// "trace": {"application":"Pinger"}
// }
instance 0x1 application: Top
instance 0x2 pinger: Pinger {"thread":"main"}
0x2 pinger.p -> 0x2 pinger.p: ping(1){"time2_receive":300,"time3_handle":310}
0x2 pinger.p -> 0x2 pinger.p: ping(2){"time2_receive":100,"time3_handle":400}
note "halfway" {"time": 350}
garbage line
0x2 pinger.p -> 0x2 pinger.p: ping(3){"time2_receive":200,"time3_handle":210}
`

func writeTrace(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "a.trace", sampleTrace)
	res, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, driver.Options{})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Lines)
	require.Len(t, res.Facts, 6)
	assert.IsType(t, &fact.InstanceDecl{}, res.Facts[0])
	assert.IsType(t, &fact.Note{}, res.Facts[4])
	assert.Equal(t, uint32(10), res.Facts[5].Line())

	app, ok := res.Config.Application()
	require.True(t, ok)
	assert.Equal(t, "Pinger", app)

	assert.Equal(t, 2, res.Instances.Len())
	pinger, ok := res.Instances.Lookup("0x2")
	require.True(t, ok)
	thread, _ := pinger.Thread()
	assert.Equal(t, "main", thread)
	assert.Zero(t, res.Bag.Len())
}

func TestParseFileStrict(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "a.trace", sampleTrace)
	res, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, driver.Options{Strict: true})
	require.NoError(t, err)
	items := res.Bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.SynNoMatch, items[0].Code)
	assert.Equal(t, uint32(9), items[0].Primary.Line)
}

func TestParseFileMissing(t *testing.T) {
	res, err := driver.ParseFile(context.Background(), source.NewFileSet(), filepath.Join(t.TempDir(), "nope.trace"), driver.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NotNil(t, res)
	assert.True(t, res.Bag.HasErrors())
}

func TestParseFilesParallel(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTrace(t, dir, "a.trace", sampleTrace),
		filepath.Join(dir, "missing.trace"),
		writeTrace(t, dir, "b.trace", "// {\n// \"trace\": {\"application\":\"Other\"}\n// }\nnote \"x\"\n"),
	}

	events := make(chan pipeline.Event, 64)
	timings := &pipeline.Timings{}
	_, results, err := driver.ParseFiles(context.Background(), paths, driver.Options{
		Jobs:     2,
		Progress: pipeline.ChannelSink{Ch: events},
		Timings:  timings,
	})
	require.NoError(t, err)
	close(events)
	require.Len(t, results, 3)

	assert.Len(t, results[0].Facts, 6)
	assert.Error(t, results[1].Err)
	app, _ := results[2].Config.Application()
	assert.Equal(t, "Other", app, "each file keeps its own configuration")
	app, _ = results[0].Config.Application()
	assert.Equal(t, "Pinger", app)

	var done, failed int
	for ev := range events {
		switch ev.Status {
		case pipeline.StatusDone:
			done++
		case pipeline.StatusError:
			failed++
		}
	}
	assert.Equal(t, 2, done)
	assert.Equal(t, 1, failed)
	assert.True(t, timings.Has(pipeline.StageParse))
}

func TestSortFile(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "a.trace", sampleTrace)
	res, err := driver.SortFile(context.Background(), source.NewFileSet(), path, driver.Options{Field: fact.TimeReceive})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Timed)

	text := res.Text()
	require.Len(t, text, 10)
	assert.Contains(t, text[5], "ping(2)")
	assert.Contains(t, text[6], "ping(3)")
	assert.Equal(t, `note "halfway" {"time": 350}`, text[7])
	assert.Equal(t, "garbage line", text[8])
	assert.Contains(t, text[9], "ping(1)")
	assert.Equal(t, uint32(7), res.Lines[5].LineNo)
}

func TestSortFilesByHandle(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "a.trace", sampleTrace)
	_, results, err := driver.SortFiles(context.Background(), []string{path}, driver.Options{Field: fact.TimeHandle})
	require.NoError(t, err)
	text := results[0].Text()
	assert.Contains(t, text[5], "ping(3)")
	assert.Contains(t, text[6], "ping(1)")
	assert.Contains(t, text[9], "ping(2)")
}

func TestFactCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeTrace(t, dir, "a.trace", sampleTrace)
	cache, err := driver.OpenFactCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	opts := driver.Options{Cache: cache, Strict: true}

	first, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)

	require.Len(t, second.Facts, len(first.Facts))
	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, first.Bag.Len(), second.Bag.Len())
	for i := range first.Facts {
		assert.Equal(t, first.Facts[i].Line(), second.Facts[i].Line())
		assert.IsType(t, first.Facts[i], second.Facts[i])
	}

	msg := second.Facts[2].(*fact.MessageOccurrence)
	recv, ok := msg.ReceiveTime()
	require.True(t, ok)
	assert.Equal(t, int64(300), recv)
	assert.Equal(t, "p", msg.Sender.Port)
	assert.Equal(t, "ping", msg.EventName())

	decl := second.Facts[1].(*fact.InstanceDecl)
	assert.Equal(t, "pinger", decl.Path())
	assert.Equal(t, "Pinger", decl.TypeName())

	app, _ := second.Config.Application()
	assert.Equal(t, "Pinger", app)

	// non-strict runs use a different key
	third, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, driver.Options{Cache: cache})
	require.NoError(t, err)
	assert.False(t, third.Cached)

	require.NoError(t, cache.DropAll())
	fourth, err := driver.ParseFile(context.Background(), source.NewFileSet(), path, opts)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
}

func TestTokenize(t *testing.T) {
	path := writeTrace(t, t.TempDir(), "a.trace", "instance 0x1 app\n\n0x1 a -> 0x1 a: e()\n@\n")
	res, err := driver.Tokenize(path, 10)
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, uint32(3), res.Lines[1].Line)
	assert.Equal(t, diag.LexUnmatchedInput, res.Bag.Items()[0].Code)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	b := writeTrace(t, dir, "sub/b.trace", "")
	a := writeTrace(t, dir, "a.trace", "")
	writeTrace(t, dir, "notes.txt", "")
	single := writeTrace(t, t.TempDir(), "x.log", "")

	got, err := driver.ExpandInputs([]string{dir, single})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, single}, got)

	_, err = driver.ExpandInputs([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestTimingDiagnostic(t *testing.T) {
	timer := observ.NewTimer()
	timer.Record("parse", 2*time.Millisecond, "")
	d, err := driver.TimingDiagnostic("parse", "a.trace", timer.Report())
	require.NoError(t, err)
	assert.Equal(t, diag.ObsTimings, d.Code)
	assert.True(t, strings.HasPrefix(d.Message, "timings (parse): total 2.00 ms"))
	require.Len(t, d.Notes, 1)
	assert.Contains(t, d.Notes[0].Msg, `"kind":"parse"`)
}
