package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"arttrace/internal/diag"
	"arttrace/internal/fact"
	"arttrace/internal/source"
	"arttrace/internal/token"
)

// Increment when cachedFile changes shape.
const factCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// FactCache stores parse results on disk, keyed by file content and the
// options that influence parsing. Safe for concurrent use.
type FactCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedFile struct {
	Schema      uint16
	Lines       int
	Facts       []cachedFact
	HasConfig   bool
	ConfigRaw   string
	ConfigLine  uint32
	Diagnostics []diag.Diagnostic
}

// cachedFact holds exactly one non-nil member.
type cachedFact struct {
	Instance *fact.InstanceDecl `msgpack:",omitempty"`
	Message  *cachedMessage     `msgpack:",omitempty"`
	Note     *fact.Note         `msgpack:",omitempty"`
}

type cachedMessage struct {
	Sender   fact.Endpoint
	Receiver fact.Endpoint
	Event    token.Token
	Record   *fact.RecordPayload `msgpack:",omitempty"`
	Text     *fact.TextPayload   `msgpack:",omitempty"`
	LineNo   uint32
}

// OpenFactCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to ~/.cache/<app>.
func OpenFactCache(app string) (*FactCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenFactCacheAt(filepath.Join(base, app))
}

// OpenFactCacheAt opens a cache rooted at dir.
func OpenFactCacheAt(dir string) (*FactCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FactCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FactCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey is H(content hash || schema || strict).
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte{byte(factCacheSchemaVersion >> 8), byte(factCacheSchemaVersion)})
	if opts.Strict {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *FactCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "facts", hex.EncodeToString(key[:])+".mp")
}

func (c *FactCache) put(key Digest, payload *cachedFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // gone after a successful rename

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

func (c *FactCache) get(key Digest, out *cachedFile) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == factCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *FactCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// load fills res from the cache. Read failures are reported into the
// result's bag and treated as a miss.
func (c *FactCache) load(file *source.File, opts Options, res *ParseResult) bool {
	if c == nil {
		return false
	}
	var payload cachedFile
	ok, err := c.get(cacheKey(file, opts), &payload)
	if err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID},
			fmt.Sprintf("parse cache unreadable, reparsing: %v", err)).Emit()
		return false
	}
	if !ok {
		return false
	}

	res.Lines = payload.Lines
	res.Facts = make([]fact.Fact, 0, len(payload.Facts))
	for _, cf := range payload.Facts {
		if f := cf.fact(); f != nil {
			res.Facts = append(res.Facts, f)
		}
	}
	if payload.HasConfig {
		if cfg, err := fact.ParseConfiguration(payload.ConfigRaw, payload.ConfigLine); err == nil {
			res.Config = cfg
		}
	}
	for _, d := range payload.Diagnostics {
		d.Primary.File = file.ID
		for i := range d.Notes {
			d.Notes[i].Span.File = file.ID
		}
		res.Bag.Add(d)
	}
	res.Cached = true
	return true
}

// store writes res to the cache. Failures only cost a reparse next time
// and are reported as a warning.
func (c *FactCache) store(file *source.File, opts Options, res *ParseResult) {
	if c == nil {
		return
	}
	payload := &cachedFile{
		Schema:      factCacheSchemaVersion,
		Lines:       res.Lines,
		Facts:       make([]cachedFact, 0, len(res.Facts)),
		Diagnostics: res.Bag.Items(),
	}
	for _, f := range res.Facts {
		payload.Facts = append(payload.Facts, toCachedFact(f))
	}
	if res.Config != nil {
		payload.HasConfig = true
		payload.ConfigRaw = res.Config.Raw
		payload.ConfigLine = res.Config.LineNo
	}
	if err := c.put(cacheKey(file, opts), payload); err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID},
			fmt.Sprintf("parse cache not written: %v", err)).Emit()
	}
}

func toCachedFact(f fact.Fact) cachedFact {
	switch x := f.(type) {
	case *fact.InstanceDecl:
		return cachedFact{Instance: x}
	case *fact.Note:
		return cachedFact{Note: x}
	case *fact.MessageOccurrence:
		m := &cachedMessage{Sender: x.Sender, Receiver: x.Receiver, Event: x.Event, LineNo: x.LineNo}
		switch p := x.Payload.(type) {
		case *fact.RecordPayload:
			m.Record = p
		case *fact.TextPayload:
			m.Text = p
		}
		return cachedFact{Message: m}
	default:
		return cachedFact{}
	}
}

func (cf cachedFact) fact() fact.Fact {
	switch {
	case cf.Instance != nil:
		return cf.Instance
	case cf.Note != nil:
		return cf.Note
	case cf.Message != nil:
		m := &fact.MessageOccurrence{
			Sender:   cf.Message.Sender,
			Receiver: cf.Message.Receiver,
			Event:    cf.Message.Event,
			LineNo:   cf.Message.LineNo,
		}
		if cf.Message.Record != nil {
			m.Payload = cf.Message.Record
		} else if cf.Message.Text != nil {
			m.Payload = cf.Message.Text
		} else {
			m.Payload = &fact.TextPayload{}
		}
		return m
	default:
		return nil
	}
}
