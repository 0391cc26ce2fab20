package gwrite

import (
	"fmt"
	"io"
	"strings"
)

// Template is a compiled placeholder template. Literal text is copied
// through; each {name}, {name:spec} or {name!conv:spec} field is replaced by
// the value of name looked up in a [Context]. Doubled braces produce literal
// braces. A spec may itself contain fields, e.g. {x:.{digits}f}.
type Template struct {
	src   string
	parts []part
}

type part struct {
	literal string
	field   *field
}

type field struct {
	name    string
	conv    byte
	spec    formatSpec
	dynamic *Template // spec source when it contains nested fields
}

// String returns the template source.
func (t *Template) String() string { return t.src }

// Fields returns the field names referenced by the template, in order of
// appearance, including names used inside nested specs.
func (t *Template) Fields() []string {
	var names []string
	for _, p := range t.parts {
		if p.field == nil {
			continue
		}
		names = append(names, p.field.name)
		if p.field.dynamic != nil {
			names = append(names, p.field.dynamic.Fields()...)
		}
	}
	return names
}

// Parse compiles src. Errors wrap [ErrTemplateSyntax] or, for a malformed
// static format specifier, [ErrTemplateFormat].
func Parse(src string) (*Template, error) {
	return parse(src, 0)
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Template {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

func parse(src string, depth int) (*Template, error) {
	t := &Template{src: src}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '{' && i+1 < len(src) && src[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(src) && src[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '}':
			return nil, fmt.Errorf("%w: single '}' encountered at offset %d", ErrTemplateSyntax, i)
		case c == '{':
			end, err := matchBrace(src, i)
			if err != nil {
				return nil, err
			}
			f, err := parseField(src[i+1:end], depth)
			if err != nil {
				return nil, err
			}
			flush()
			t.parts = append(t.parts, part{field: f})
			i = end + 1
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return t, nil
}

// matchBrace returns the index of the '}' closing the '{' at start.
func matchBrace(src string, start int) (int, error) {
	depth := 0
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: expected '}' before end of template", ErrTemplateSyntax)
}

func parseField(body string, depth int) (*field, error) {
	name, rest := body, ""
	if i := strings.IndexAny(body, "!:"); i >= 0 {
		name, rest = body[:i], body[i:]
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty field name", ErrTemplateSyntax)
	}
	if strings.ContainsAny(name, "{}") {
		return nil, fmt.Errorf("%w: unexpected '{' in field name %q", ErrTemplateSyntax, name)
	}
	f := &field{name: name, spec: formatSpec{fill: ' ', precision: -1}}

	if strings.HasPrefix(rest, "!") {
		if len(rest) < 2 || (len(rest) > 2 && rest[2] != ':') {
			return nil, fmt.Errorf("%w: expected ':' after conversion specifier in %q", ErrTemplateSyntax, body)
		}
		switch rest[1] {
		case 's', 'r', 'a':
			f.conv = rest[1]
		default:
			return nil, fmt.Errorf("%w: unknown conversion specifier %q", ErrTemplateSyntax, rest[1:2])
		}
		rest = rest[2:]
	}
	if !strings.HasPrefix(rest, ":") {
		return f, nil
	}
	specSrc := rest[1:]
	if strings.ContainsAny(specSrc, "{}") {
		if depth >= 1 {
			return nil, fmt.Errorf("%w: format specifier nested too deeply in %q", ErrTemplateSyntax, body)
		}
		dyn, err := parse(specSrc, depth+1)
		if err != nil {
			return nil, err
		}
		f.dynamic = dyn
		return f, nil
	}
	spec, err := parseSpec(specSrc)
	if err != nil {
		return nil, err
	}
	f.spec = spec
	return f, nil
}

// Execute renders the template against ctx into w. A field whose name no
// source defines fails with a *[KeyError] and nothing is written.
func (t *Template) Execute(w io.Writer, ctx Context) error {
	s, err := t.render(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func (t *Template) render(ctx Context) (string, error) {
	var sb strings.Builder
	for _, p := range t.parts {
		if p.field == nil {
			sb.WriteString(p.literal)
			continue
		}
		s, err := p.field.render(ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (f *field) render(ctx Context) (string, error) {
	v, ok := ctx.Lookup(f.name)
	if !ok {
		return "", &KeyError{Key: f.name}
	}
	switch f.conv {
	case 's':
		v = strValue(v)
	case 'r', 'a':
		v = reprValue(v)
	}
	spec := f.spec
	if f.dynamic != nil {
		src, err := f.dynamic.render(ctx)
		if err != nil {
			return "", err
		}
		if spec, err = parseSpec(src); err != nil {
			return "", err
		}
	}
	s, err := formatValue(v, spec)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", f.name, err)
	}
	return s, nil
}

// Render expands t against ctx. A nil template renders to the empty string.
func Render(t *Template, ctx Context) (string, error) {
	if t == nil {
		return "", nil
	}
	return t.render(ctx)
}
