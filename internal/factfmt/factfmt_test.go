package factfmt

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"arttrace/internal/fact"
	"arttrace/internal/parser"
	"arttrace/internal/sorter"
)

func loadFixture(t *testing.T) FileRecord {
	t.Helper()
	data, err := os.ReadFile("testdata/facts.trace")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	p := parser.New(parser.Options{})
	var facts []fact.Fact
	for i, line := range lines {
		if f := p.ParseLine(line, uint32(i+1)); f != nil {
			facts = append(facts, f)
		}
	}
	p.Finish()
	return FileRecord{
		Path:   "facts.trace",
		Lines:  len(lines),
		Config: FromConfig(p.Configuration()),
		Facts:  FromFacts(facts),
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":        FormatPretty,
		"JSON":    FormatJSON,
		"yml":     FormatYAML,
		"msgpack": FormatMsgpack,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
	assert.True(t, FormatMsgpack.Binary())
	assert.False(t, FormatYAML.Binary())
}

func TestFromFact(t *testing.T) {
	file := loadFixture(t)
	require.Len(t, file.Facts, 6)

	top := file.Facts[0]
	assert.Equal(t, KindInstance, top.Kind)
	assert.Equal(t, "top", top.Role)

	sys := file.Facts[1]
	assert.Equal(t, "system", sys.Role)
	assert.Equal(t, "main", sys.Thread)

	msg := file.Facts[3]
	assert.Equal(t, KindMessage, msg.Kind)
	require.NotNil(t, msg.Sender)
	assert.Equal(t, "p", msg.Sender.Port)
	require.NotNil(t, msg.Sender.PortIndex)
	assert.Equal(t, 1, *msg.Sender.PortIndex)
	require.NotNil(t, msg.Receive)
	assert.Equal(t, int64(10), *msg.Receive)
	require.NotNil(t, msg.SyncInvoke)
	assert.Equal(t, "0x9", *msg.SyncInvoke)

	raw := file.Facts[4]
	assert.Equal(t, `{"x":`, raw.Raw)
	assert.Nil(t, raw.Receive)

	note := file.Facts[5]
	assert.Equal(t, "checkpoint", note.Text)
	require.NotNil(t, note.Time)
	assert.Equal(t, int64(20), *note.Time)

	_, ok := FromFact(nil)
	assert.False(t, ok)
	assert.Nil(t, FromConfig(nil))
}

func TestPrettyGolden(t *testing.T) {
	file := loadFixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteFiles(&buf, []FileRecord{file}, Options{Format: FormatPretty}))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "facts_pretty", buf.Bytes())
}

func TestPrettyColor(t *testing.T) {
	file := loadFixture(t)
	var buf bytes.Buffer
	require.NoError(t, WriteFiles(&buf, []FileRecord{file, file}, Options{Format: FormatPretty, Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Equal(t, 2, strings.Count(buf.String(), "== "))
}

func TestStructuredFormats(t *testing.T) {
	file := loadFixture(t)

	var js bytes.Buffer
	require.NoError(t, WriteFiles(&js, []FileRecord{file}, Options{Format: FormatJSON}))
	var decoded FileRecord
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "Demo", decoded.Config.Application)
	assert.Len(t, decoded.Facts, 6)

	var many bytes.Buffer
	require.NoError(t, WriteFiles(&many, []FileRecord{file, file}, Options{Format: FormatJSON}))
	var list []FileRecord
	require.NoError(t, json.Unmarshal(many.Bytes(), &list))
	assert.Len(t, list, 2)

	var y bytes.Buffer
	require.NoError(t, WriteFiles(&y, []FileRecord{file}, Options{Format: FormatYAML}))
	assert.Contains(t, y.String(), "kind: instance")
	assert.Contains(t, y.String(), "receive: 10")

	var mp bytes.Buffer
	require.NoError(t, WriteFiles(&mp, []FileRecord{file}, Options{Format: FormatMsgpack}))
	var unpacked FileRecord
	require.NoError(t, msgpack.Unmarshal(mp.Bytes(), &unpacked))
	require.Len(t, unpacked.Facts, 6)
	require.NotNil(t, unpacked.Facts[3].Handle)
	assert.Equal(t, int64(12), *unpacked.Facts[3].Handle)
}

func TestWriteSorted(t *testing.T) {
	s := sorter.New(fact.TimeReceive, parser.Options{})
	s.Record(`0x1 A -> 0x2 B: late(){"time2_receive":9}`, 1)
	s.Record(`note "n"`, 2)
	s.Record(`0x1 A -> 0x2 B: early(){"time2_receive":1}`, 3)
	records := FromSorted(s.MaterializeLines())

	var plain bytes.Buffer
	require.NoError(t, WriteSorted(&plain, "x.trace", records, Options{}))
	assert.Equal(t, "0x1 A -> 0x2 B: early(){\"time2_receive\":1}\nnote \"n\"\n0x1 A -> 0x2 B: late(){\"time2_receive\":9}\n", plain.String())

	var js bytes.Buffer
	require.NoError(t, WriteSorted(&js, "x.trace", records, Options{Format: FormatJSON}))
	var out FileRecord
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	require.Len(t, out.Sorted, 3)
	assert.Equal(t, uint32(3), out.Sorted[0].Line)
	assert.Nil(t, out.Sorted[1].Time)
	require.NotNil(t, out.Sorted[2].Time)
	assert.Equal(t, int64(9), *out.Sorted[2].Time)
}

func TestWriteConfig(t *testing.T) {
	file := loadFixture(t)

	var js bytes.Buffer
	require.NoError(t, WriteConfig(&js, file.Config, Options{}))
	var values map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &values))
	assert.Contains(t, values, "trace")

	var y bytes.Buffer
	require.NoError(t, WriteConfig(&y, file.Config, Options{Format: FormatYAML}))
	assert.Contains(t, y.String(), "application: Demo")

	var none bytes.Buffer
	require.NoError(t, WriteConfig(&none, nil, Options{}))
	assert.Equal(t, "null\n", none.String())
}
