package sorter_test

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/fact"
	"arttrace/internal/parser"
	"arttrace/internal/sorter"
)

func record(field fact.TimeField, lines []string) *sorter.Sorter {
	s := sorter.New(field, parser.Options{})
	for i, line := range lines {
		s.Record(line, uint32(i+1))
	}
	return s
}

func msg(event string, receive int) string {
	return "0x1 A -> 0x2 B: " + event + `(){"time2_receive":` + strconv.Itoa(receive) + "}"
}

func TestEmptyBufferReturnsInput(t *testing.T) {
	lines := []string{
		"instance 0x1 application: Top",
		"0x1 A -> 0x2 B: e(plain)",
		`note "n"`,
		"",
	}
	s := record(fact.TimeReceive, lines)
	assert.Zero(t, s.Timed())
	assert.Equal(t, lines, s.Materialize())
	assert.Empty(t, record(fact.TimeReceive, nil).Materialize())
}

func TestSortWithinRun(t *testing.T) {
	s := record(fact.TimeReceive, []string{msg("a", 3), msg("b", 1), msg("c", 2)})
	assert.Equal(t, []string{msg("b", 1), msg("c", 2), msg("a", 3)}, s.Materialize())
}

func TestSortObjectParameters(t *testing.T) {
	late := `0x1 A -> 0x2 B: x({"time2_receive":8})`
	early := `0x1 A -> 0x2 B: y({"time2_receive":4})`
	s := record(fact.TimeReceive, []string{late, early})
	assert.Equal(t, 2, s.Timed())
	assert.Equal(t, []string{early, late}, s.Materialize())
}

func TestIdempotent(t *testing.T) {
	input := []string{
		msg("a", 5),
		`note "x"`,
		msg("b", 1),
		msg("c", 9),
		"instance 0x2 b: B",
		msg("d", 2),
	}
	once := record(fact.TimeReceive, input).Materialize()
	twice := record(fact.TimeReceive, once).Materialize()
	assert.Equal(t, once, twice)

	s := record(fact.TimeReceive, input)
	assert.Equal(t, s.Materialize(), s.Materialize())
}

func TestStable(t *testing.T) {
	s := record(fact.TimeReceive, []string{msg("first", 7), msg("second", 7), msg("early", 1), msg("third", 7)})
	assert.Equal(t, []string{msg("early", 1), msg("first", 7), msg("second", 7), msg("third", 7)}, s.Materialize())
}

func TestDuplicateLines(t *testing.T) {
	dup := msg("same", 4)
	s := record(fact.TimeReceive, []string{dup, msg("x", 1), `note "split"`, dup})
	lines := s.MaterializeLines()
	require.Len(t, lines, 4)
	assert.Equal(t, msg("x", 1), lines[0].Text)
	assert.Equal(t, uint32(2), lines[0].LineNo)
	assert.Equal(t, uint32(1), lines[1].LineNo)
	assert.Equal(t, uint32(3), lines[2].LineNo)
	assert.Equal(t, uint32(4), lines[3].LineNo)
}

func TestNonMessagesStayInPlace(t *testing.T) {
	input := []string{
		msg("late", 100),
		"instance 0x1 application: Top",
		msg("mid", 50),
		msg("early", 1),
		`note "between" {"time": 0}`,
		"",
		"// comment",
		msg("last", 75),
	}
	out := record(fact.TimeReceive, input).Materialize()
	require.Len(t, out, len(input))
	for i, line := range input {
		if !strings.HasPrefix(line, "0x1 A") {
			assert.Equal(t, line, out[i], "line %d moved", i+1)
		}
	}
	assert.Equal(t, msg("early", 1), out[0])
	assert.Equal(t, msg("late", 100), out[7])
}

func TestFieldSelection(t *testing.T) {
	lines := []string{
		`0x1 A -> 0x2 B: a(){"time2_receive":1,"time3_handle":9}`,
		`0x1 A -> 0x2 B: b(){"time2_receive":2}`,
		`0x1 A -> 0x2 B: c(){"time2_receive":3,"time3_handle":4}`,
	}
	s := record(fact.TimeHandle, lines)
	assert.Equal(t, 2, s.Timed())
	// b has no handle time and keeps its place
	assert.Equal(t, []string{lines[2], lines[1], lines[0]}, s.Materialize())
}

func TestGoldenMixed(t *testing.T) {
	data, err := os.ReadFile("testdata/mixed.trace")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, field := range []fact.TimeField{fact.TimeReceive, fact.TimeHandle} {
		s := record(field, lines)
		app, ok := s.Parser().Configuration().Application()
		require.True(t, ok)
		assert.Equal(t, "Demo", app)

		out := strings.Join(s.Materialize(), "\n") + "\n"
		g.Assert(t, "mixed_"+field.String(), []byte(out))
	}
}
