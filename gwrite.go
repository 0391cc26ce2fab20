package gwrite

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bjaus/gwrite/vector"
)

// Sentinel errors for programmatic error handling.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrGeometry       = errors.New("geometry error")
	ErrTemplateKey    = errors.New("template key not found")
	ErrTemplateSyntax = errors.New("invalid template")
	ErrTemplateFormat = errors.New("invalid format specifier")
)

// KeyError reports a template field that no context source defines.
// errors.Is(err, ErrTemplateKey) reports true for it.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q not found in context variables or properties", e.Key)
}

// Is matches ErrTemplateKey.
func (e *KeyError) Is(target error) bool { return target == ErrTemplateKey }

// Options tune a single write.
type Options struct {
	// Filename is exposed to templates as {filename}. When empty, the name
	// of the output is used if it has one (as *os.File does).
	Filename string

	// Defaults are user-supplied fallback values, consulted after document
	// and layer metadata but before the profile's default values.
	Defaults map[string]string

	// Info receives the profile's info text after a successful write.
	// Nil discards it.
	Info io.Writer

	// Logger receives debug records. Nil disables logging.
	Logger *slog.Logger
}

type namer interface {
	Name() string
}

// Write renders doc with profile p and writes the result to w.
//
// doc is never modified; transforms are applied to a private copy. Template
// syntax, unit and geometry problems are reported before anything is
// written. A missing template key stops the write at the failing hook;
// output produced by earlier hooks has already been written to w.
func Write(w io.Writer, doc *vector.Document, p Profile, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	templates, err := p.Compile()
	if err != nil {
		return err
	}

	work, err := Transform(doc, p.Placement)
	if err != nil {
		return err
	}
	log.Debug("Document transformed",
		"profile", p.Name,
		"unit", p.Unit,
		"scale_x", p.ScaleX, "scale_y", p.ScaleY,
		"offset_x", p.OffsetX, "offset_y", p.OffsetY,
		"invert_x", p.InvertX, "invert_y", p.InvertY)

	filename := opts.Filename
	if filename == "" {
		if n, ok := w.(namer); ok {
			filename = n.Name()
		}
	}

	cw := &countingWriter{w: w}
	buf := bufio.NewWriter(cw)
	tr := &traversal{
		out:       buf,
		doc:       work,
		templates: templates,
		defaults:  opts.Defaults,
		values:    p.DefaultValues,
		filename:  filename,
	}
	runErr := tr.run()
	if err := buf.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		log.Debug("Write aborted", "profile", p.Name, "bytes", cw.n, "error", runErr)
		return runErr
	}
	log.Debug("Write complete",
		"profile", p.Name,
		"layers", tr.stats.layers,
		"lines", tr.stats.lines,
		"segments", tr.stats.segments,
		"bytes", cw.n)

	if p.Info != "" && opts.Info != nil {
		if _, err := fmt.Fprintln(opts.Info, p.Info); err != nil {
			return err
		}
	}
	return nil
}

// Marshal renders doc with profile p and returns the bytes.
func Marshal(doc *vector.Document, p Profile, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, p, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
