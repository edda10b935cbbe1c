package factfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const (
	lineColWidth = 5
	kindColWidth = 9
)

type palette struct {
	header, kind, dim, ts func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		header: mk(color.Bold),
		kind:   mk(color.FgMagenta),
		dim:    mk(color.Faint),
		ts:     mk(color.FgCyan),
	}
}

func writeFilesPretty(w io.Writer, files []FileRecord, colored bool) error {
	p := newPalette(colored)
	for i, file := range files {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeFilePretty(w, &file, p); err != nil {
			return err
		}
	}
	return nil
}

func writeFilePretty(w io.Writer, file *FileRecord, p palette) error {
	header := fmt.Sprintf("== %s (%d lines, %d facts)", file.Path, file.Lines, len(file.Facts))
	if _, err := fmt.Fprintln(w, p.header(header)); err != nil {
		return err
	}
	if cfg := file.Config; cfg != nil {
		line := fmt.Sprintf("config (line %d)", cfg.Line)
		if cfg.Application != "" {
			line += ": application=" + cfg.Application
		}
		if _, err := fmt.Fprintln(w, p.dim(line)); err != nil {
			return err
		}
	}
	for i := range file.Facts {
		if _, err := fmt.Fprintln(w, prettyFact(&file.Facts[i], p)); err != nil {
			return err
		}
	}
	return nil
}

// PrettyFact renders a single record on one line without colors.
func PrettyFact(rec FactRecord) string {
	return prettyFact(&rec, newPalette(false))
}

func prettyFact(rec *FactRecord, p palette) string {
	var sb strings.Builder
	sb.WriteString(runewidth.FillLeft(strconv.FormatUint(uint64(rec.Line), 10), lineColWidth))
	sb.WriteString("  ")
	sb.WriteString(p.kind(runewidth.FillRight(rec.Kind, kindColWidth)))
	sb.WriteString(" ")

	var extras []string
	switch rec.Kind {
	case KindInstance:
		sb.WriteString(rec.Address)
		sb.WriteString(" ")
		sb.WriteString(rec.Path)
		if rec.Type != "" {
			sb.WriteString(" : ")
			sb.WriteString(rec.Type)
		}
		if rec.Role != "" {
			extras = append(extras, "["+rec.Role+"]")
		}
		if rec.Thread != "" {
			extras = append(extras, "thread="+rec.Thread)
		}
	case KindMessage:
		sb.WriteString(endpointText(rec.Sender))
		sb.WriteString(" -> ")
		sb.WriteString(endpointText(rec.Receiver))
		sb.WriteString(" : ")
		sb.WriteString(rec.Event)
		sb.WriteString("(")
		sb.WriteString(rec.Params)
		sb.WriteString(")")
		if rec.Receive != nil {
			extras = append(extras, p.ts("receive="+strconv.FormatInt(*rec.Receive, 10)))
		}
		if rec.Handle != nil {
			extras = append(extras, p.ts("handle="+strconv.FormatInt(*rec.Handle, 10)))
		}
		if rec.SyncInvoke != nil {
			extras = append(extras, "sync_invoke="+*rec.SyncInvoke)
		}
		if rec.SyncReply != nil {
			extras = append(extras, "sync_reply="+*rec.SyncReply)
		}
		if rec.Raw != "" {
			extras = append(extras, p.dim("raw="+strconv.Quote(rec.Raw)))
		}
	case KindNote:
		sb.WriteString(strconv.Quote(rec.Text))
		if rec.Time != nil {
			extras = append(extras, p.ts("time="+strconv.FormatInt(*rec.Time, 10)))
		}
	}
	if len(extras) > 0 {
		sb.WriteString("  ")
		sb.WriteString(strings.Join(extras, " "))
	}
	return sb.String()
}

func endpointText(e *EndpointRecord) string {
	if e == nil {
		return "?"
	}
	var sb strings.Builder
	sb.WriteString(e.Name)
	if e.Port != "" {
		sb.WriteByte('.')
		sb.WriteString(e.Port)
	}
	if e.PortIndex != nil {
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(*e.PortIndex))
		sb.WriteByte(']')
	}
	return sb.String()
}
