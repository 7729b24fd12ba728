// Package printer renders heap objects for debugging and reports collector
// activity. Printing is read-only: it never touches mark bits or payloads.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/gcvm/heap"
	"github.com/joshuapare/gcvm/walker"
)

const (
	// DefaultMaxDepth disables depth truncation.
	DefaultMaxDepth = 0

	// DefaultIndent is the per-level indent for JSON output.
	DefaultIndent = "  "
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs scalars as numbers and pairs as (head, tail).
	FormatText Format = "text"

	// FormatJSON outputs a nested JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// MaxDepth limits how many pair edges are followed (0 = unlimited).
	// Deeper structure prints as "...".
	// Default: 0 (unlimited)
	MaxDepth int

	// Indent is the per-level indent for JSON output.
	// Default: two spaces
	Indent string
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		MaxDepth: DefaultMaxDepth,
		Indent:   DefaultIndent,
	}
}

// Printer writes object graphs to a writer.
type Printer struct {
	h      *heap.Heap
	writer io.Writer
	opts   Options

	// Objects on the path from the current root, for cycle detection.
	onPath *walker.Bitmap
}

// New creates a Printer over h.
//
// Example:
//
//	p := printer.New(v.Heap(), os.Stdout, printer.DefaultOptions())
//	p.Print(ref) // ((1, 2), (3, 4))
func New(h *heap.Heap, w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return &Printer{
		h:      h,
		writer: w,
		opts:   opts,
		onPath: walker.NewBitmap(h.Stats().ArenaSlots),
	}
}

// Print writes the subgraph reachable from ref followed by a newline.
func (p *Printer) Print(ref heap.Ref) error {
	p.onPath.Reset()
	switch p.opts.Format {
	case FormatText:
		var sb strings.Builder
		if err := p.text(&sb, ref, 0); err != nil {
			return err
		}
		_, err := fmt.Fprintln(p.writer, sb.String())
		return err
	case FormatJSON:
		return p.printJSON(ref)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// text renders ref. A pair already on the current path is a back edge and
// prints as <cycle #ref> instead of recursing.
func (p *Printer) text(sb *strings.Builder, ref heap.Ref, depth int) error {
	obj, err := p.h.Get(ref)
	if err != nil {
		return err
	}
	switch v := obj.Payload.(type) {
	case heap.Scalar:
		fmt.Fprintf(sb, "%d", v.Value)
	case heap.Pair:
		if p.onPath.IsSet(ref.Index()) {
			fmt.Fprintf(sb, "<cycle %s>", ref)
			return nil
		}
		if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
			sb.WriteString("...")
			return nil
		}
		p.onPath.Set(ref.Index())
		sb.WriteByte('(')
		if err := p.text(sb, v.Head, depth+1); err != nil {
			return err
		}
		sb.WriteString(", ")
		if err := p.text(sb, v.Tail, depth+1); err != nil {
			return err
		}
		sb.WriteByte(')')
		p.onPath.Clear(ref.Index())
	}
	return nil
}

// Sprint renders ref in text format.
func Sprint(h *heap.Heap, ref heap.Ref) (string, error) {
	var sb strings.Builder
	p := New(h, &sb, DefaultOptions())
	if err := p.Print(ref); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
