package fact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arttrace/internal/fact"
	"arttrace/internal/token"
)

func name(s string) token.Token { return token.Token{Kind: token.Name, Text: s} }
func index(n uint64) token.Token {
	return token.Token{Kind: token.Number, Num: n}
}

func TestStructureString(t *testing.T) {
	tests := []struct {
		name string
		expr []token.Token
		want string
	}{
		{"single", []token.Token{name("application")}, "application"},
		{"dotted", []token.Token{name("a"), name("b"), name("c")}, "a.b.c"},
		{"indexed", []token.Token{name("a"), name("b"), index(2), name("c")}, "a.b[2].c"},
		{"trailing index", []token.Token{name("x"), index(0)}, "x[0]"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fact.StructureString(tt.expr))
		})
	}
}

func TestInstanceClassification(t *testing.T) {
	typ := func(s string) *token.Token { tok := name(s); return &tok }

	top := &fact.InstanceDecl{Structure: []token.Token{name("application")}, DynamicType: typ("Top")}
	assert.True(t, top.IsTopCapsule())
	assert.False(t, top.IsSystem())

	nested := &fact.InstanceDecl{Structure: []token.Token{name("application"), name("pinger")}}
	assert.False(t, nested.IsTopCapsule())

	system := &fact.InstanceDecl{Structure: []token.Token{name("Top")}, DynamicType: typ(fact.SystemTypeName)}
	assert.True(t, system.IsSystem())
	assert.False(t, system.IsTimer())

	untypedTop := &fact.InstanceDecl{Structure: []token.Token{name("Top")}}
	assert.False(t, untypedTop.IsSystem())

	timer := &fact.InstanceDecl{Structure: []token.Token{name("specials")}, DynamicType: typ(fact.TimerTypeName)}
	assert.True(t, timer.IsTimer())
	assert.Equal(t, "specials", timer.DisplayName())
}

func TestDecodePayload(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		p, err := fact.DecodePayload("payload", "")
		require.NoError(t, err)
		text, ok := p.(*fact.TextPayload)
		require.True(t, ok)
		assert.Equal(t, "payload", text.Params)
		assert.Empty(t, text.Raw)
	})

	t.Run("record", func(t *testing.T) {
		p, err := fact.DecodePayload("", `{"time2_receive":100,"time3_handle":150,"sync_invoke":"0x9","extra":true}`)
		require.NoError(t, err)
		rec, ok := p.(*fact.RecordPayload)
		require.True(t, ok)
		require.NotNil(t, rec.Receive)
		require.NotNil(t, rec.Handle)
		assert.Equal(t, int64(100), *rec.Receive)
		assert.Equal(t, int64(150), *rec.Handle)
		require.NotNil(t, rec.SyncInvoke)
		assert.Equal(t, "0x9", *rec.SyncInvoke)
		assert.Nil(t, rec.SyncReply)
		assert.Equal(t, true, rec.Fields["extra"])
	})

	t.Run("large timestamp keeps precision", func(t *testing.T) {
		p, err := fact.DecodePayload("", `{"time2_receive":1700000000123456789}`)
		require.NoError(t, err)
		rec := p.(*fact.RecordPayload)
		assert.Equal(t, int64(1700000000123456789), *rec.Receive)
	})

	t.Run("malformed data kept raw", func(t *testing.T) {
		p, err := fact.DecodePayload("x", `{not json`)
		require.Error(t, err)
		text, ok := p.(*fact.TextPayload)
		require.True(t, ok)
		assert.Equal(t, "x", text.ParamText())
		assert.Equal(t, `{not json`, text.Raw)
	})

	t.Run("array is not a record", func(t *testing.T) {
		p, err := fact.DecodePayload("", `[1,2]`)
		require.Error(t, err)
		assert.IsType(t, &fact.TextPayload{}, p)
	})

	t.Run("object parameters", func(t *testing.T) {
		p, err := fact.DecodePayload(`{"time2_receive":5}`, "")
		require.NoError(t, err)
		rec, ok := p.(*fact.RecordPayload)
		require.True(t, ok)
		assert.Equal(t, `{"time2_receive":5}`, rec.ParamText())
		require.NotNil(t, rec.Receive)
		assert.Equal(t, int64(5), *rec.Receive)
	})

	t.Run("broken object parameters stay text", func(t *testing.T) {
		p, err := fact.DecodePayload(`{oops`, "")
		require.NoError(t, err)
		text, ok := p.(*fact.TextPayload)
		require.True(t, ok)
		assert.Equal(t, `{oops`, text.Params)
		assert.Empty(t, text.Raw)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := fact.DecodePayload("", `{"a":1} tail`)
		assert.EqualError(t, err, "decode payload: trailing data after object")
	})
}

func TestMessageTimestamps(t *testing.T) {
	recv := int64(10)
	m := &fact.MessageOccurrence{Payload: &fact.RecordPayload{Receive: &recv}}
	ts, ok := m.Timestamp(fact.TimeReceive)
	assert.True(t, ok)
	assert.Equal(t, int64(10), ts)
	_, ok = m.HandleTime()
	assert.False(t, ok)

	raw := &fact.MessageOccurrence{Payload: &fact.TextPayload{Params: "p"}}
	_, ok = raw.ReceiveTime()
	assert.False(t, ok)
}

func TestParseTimeField(t *testing.T) {
	f, err := fact.ParseTimeField("Handle")
	require.NoError(t, err)
	assert.Equal(t, fact.TimeHandle, f)
	f, err = fact.ParseTimeField("time2_receive")
	require.NoError(t, err)
	assert.Equal(t, fact.TimeReceive, f)
	_, err = fact.ParseTimeField("send")
	require.Error(t, err)
}

func TestConfiguration(t *testing.T) {
	cfg, err := fact.ParseConfiguration(`{"trace": {"application":"App"}}`, 3)
	require.NoError(t, err)
	app, ok := cfg.Application()
	require.True(t, ok)
	assert.Equal(t, "App", app)

	_, ok = cfg.Lookup("trace", "missing")
	assert.False(t, ok)
	_, ok = cfg.Lookup("trace", "application", "deeper")
	assert.False(t, ok)

	_, err = fact.ParseConfiguration(`{"trace": }`, 3)
	require.Error(t, err)

	var nilCfg *fact.TraceConfiguration
	_, ok = nilCfg.Application()
	assert.False(t, ok)
}

func TestRegistry(t *testing.T) {
	reg := fact.NewRegistry()
	a := &fact.InstanceDecl{Address: token.Token{Kind: token.Address, Text: "0x1"}, Structure: []token.Token{name("application")}}
	b := &fact.InstanceDecl{Address: token.Token{Kind: token.Address, Text: "0x2"}, Structure: []token.Token{name("application"), name("pinger")}}
	reg.Observe(a)
	reg.Observe(&fact.Note{Text: "ignored"})
	reg.Add(b)
	reg.Add(nil)

	assert.Equal(t, 2, reg.Len())
	got, ok := reg.Lookup("0x2")
	require.True(t, ok)
	assert.Equal(t, "pinger", got.DisplayName())
	top, ok := reg.TopCapsule()
	require.True(t, ok)
	assert.Same(t, a, top)
	assert.Equal(t, []*fact.InstanceDecl{a, b}, reg.All())
}
