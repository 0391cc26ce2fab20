package gwrite

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// formatSpec is a parsed [[fill]align][sign][#][0][width][grouping][.precision][type].
type formatSpec struct {
	fill      rune
	align     byte
	zero      bool
	sign      byte
	alternate bool
	width     int
	grouping  byte
	precision int // -1 when absent
	verb      byte
}

func parseSpec(s string) (formatSpec, error) {
	spec := formatSpec{fill: ' ', precision: -1}
	if s == "" {
		return spec, nil
	}
	orig := s

	explicitFill := false
	if r, size := utf8.DecodeRuneInString(s); len(s) > size && isAlign(s[size]) {
		spec.fill, spec.align = r, s[size]
		explicitFill = true
		s = s[size+1:]
	} else if isAlign(s[0]) {
		spec.align = s[0]
		s = s[1:]
	}
	if s != "" && (s[0] == '+' || s[0] == '-' || s[0] == ' ') {
		spec.sign = s[0]
		s = s[1:]
	}
	if s != "" && s[0] == '#' {
		spec.alternate = true
		s = s[1:]
	}
	if s != "" && s[0] == '0' {
		spec.zero = true
		if !explicitFill {
			spec.fill = '0'
		}
		s = s[1:]
	}
	n, s := leadingInt(s)
	spec.width = n
	if s != "" && (s[0] == ',' || s[0] == '_') {
		spec.grouping = s[0]
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		p, rest := leadingInt(s[1:])
		if len(rest) == len(s)-1 {
			return spec, fmt.Errorf("%w: format specifier missing precision in %q", ErrTemplateFormat, orig)
		}
		spec.precision, s = p, rest
	}
	if len(s) > 1 {
		return spec, fmt.Errorf("%w: invalid format specifier %q", ErrTemplateFormat, orig)
	}
	if s != "" {
		if !strings.ContainsRune("bcdoxXneEfFgG%s", rune(s[0])) {
			return spec, fmt.Errorf("%w: unknown format code %q", ErrTemplateFormat, s)
		}
		spec.verb = s[0]
	}
	return spec, nil
}

func isAlign(c byte) bool { return c == '<' || c == '>' || c == '^' || c == '=' }

func leadingInt(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}

// formatValue renders v according to spec, following the semantics of the
// Python format mini-language for int, float, string, bool and nil values.
func formatValue(v any, spec formatSpec) (string, error) {
	switch x := v.(type) {
	case nil:
		return formatString("None", spec)
	case bool:
		if spec == (formatSpec{fill: ' ', precision: -1}) {
			return boolString(x), nil
		}
		if x {
			return formatInt(1, spec)
		}
		return formatInt(0, spec)
	case int:
		return formatInt(int64(x), spec)
	case int8:
		return formatInt(int64(x), spec)
	case int16:
		return formatInt(int64(x), spec)
	case int32:
		return formatInt(int64(x), spec)
	case int64:
		return formatInt(x, spec)
	case uint:
		return formatInt(int64(x), spec)
	case uint8:
		return formatInt(int64(x), spec)
	case uint16:
		return formatInt(int64(x), spec)
	case uint32:
		return formatInt(int64(x), spec)
	case uint64:
		return formatInt(int64(x), spec)
	case float32:
		return formatFloat(float64(x), spec)
	case float64:
		return formatFloat(x, spec)
	case string:
		return formatString(x, spec)
	case fmt.Stringer:
		return formatString(x.String(), spec)
	default:
		return formatString(fmt.Sprint(x), spec)
	}
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatString(s string, spec formatSpec) (string, error) {
	if spec.verb != 0 && spec.verb != 's' {
		return "", fmt.Errorf("%w: unknown format code %q for string value", ErrTemplateFormat, spec.verb)
	}
	if spec.sign != 0 || spec.alternate || spec.grouping != 0 || spec.align == '=' {
		return "", fmt.Errorf("%w: numeric option not allowed for string value", ErrTemplateFormat)
	}
	if spec.precision >= 0 && utf8.RuneCountInString(s) > spec.precision {
		s = string([]rune(s)[:spec.precision])
	}
	return pad("", s, spec, '<'), nil
}

func formatInt(n int64, spec formatSpec) (string, error) {
	switch spec.verb {
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		return formatFloat(float64(n), spec)
	case 's':
		return "", fmt.Errorf("%w: unknown format code 's' for integer value", ErrTemplateFormat)
	}
	if spec.precision >= 0 {
		return "", fmt.Errorf("%w: precision not allowed in integer format specifier", ErrTemplateFormat)
	}

	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	var body, prefix string
	switch spec.verb {
	case 'b':
		body, prefix = strconv.FormatUint(u, 2), "0b"
	case 'o':
		body, prefix = strconv.FormatUint(u, 8), "0o"
	case 'x':
		body, prefix = strconv.FormatUint(u, 16), "0x"
	case 'X':
		body, prefix = strings.ToUpper(strconv.FormatUint(u, 16)), "0X"
	case 'c':
		body = string(rune(u))
	default:
		body = strconv.FormatUint(u, 10)
		if spec.grouping != 0 {
			body = group(body, spec.grouping)
		}
	}
	if !spec.alternate {
		prefix = ""
	}
	return pad(signOf(neg, spec.sign)+prefix, body, spec, numericAlign(spec)), nil
}

func formatFloat(f float64, spec formatSpec) (string, error) {
	switch spec.verb {
	case 'b', 'c', 'd', 'o', 'x', 'X', 's':
		return "", fmt.Errorf("%w: unknown format code %q for float value", ErrTemplateFormat, spec.verb)
	}
	neg := math.Signbit(f) && !math.IsNaN(f)
	a := math.Abs(f)

	var body string
	switch {
	case math.IsInf(a, 0):
		body = "inf"
	case math.IsNaN(a):
		body = "nan"
	default:
		body = floatBody(a, spec)
	}
	switch spec.verb {
	case 'E', 'F', 'G':
		body = strings.ToUpper(body)
	}
	if spec.grouping != 0 && !math.IsInf(a, 0) && !math.IsNaN(a) {
		intPart, rest := body, ""
		if i := strings.IndexAny(body, ".e%"); i >= 0 {
			intPart, rest = body[:i], body[i:]
		}
		body = group(intPart, spec.grouping) + rest
	}
	return pad(signOf(neg, spec.sign), body, spec, numericAlign(spec)), nil
}

// numericAlign is the alignment used for numbers when none is given: a
// leading 0 in the width pads after the sign.
func numericAlign(spec formatSpec) byte {
	if spec.zero {
		return '='
	}
	return '>'
}

func floatBody(a float64, spec formatSpec) string {
	prec := spec.precision
	switch spec.verb {
	case 'e', 'E':
		if prec < 0 {
			prec = 6
		}
		s := strconv.FormatFloat(a, 'e', prec, 64)
		if spec.alternate && prec == 0 {
			i := strings.IndexByte(s, 'e')
			s = s[:i] + "." + s[i:]
		}
		return s
	case 'f', 'F':
		if prec < 0 {
			prec = 6
		}
		s := strconv.FormatFloat(a, 'f', prec, 64)
		if spec.alternate && prec == 0 {
			s += "."
		}
		return s
	case '%':
		if prec < 0 {
			prec = 6
		}
		s := strconv.FormatFloat(a*100, 'f', prec, 64)
		if spec.alternate && prec == 0 {
			s += "."
		}
		return s + "%"
	case 'g', 'G', 'n':
		if prec < 0 {
			prec = 6
		}
		if prec == 0 {
			prec = 1
		}
		return generalFloat(a, prec, prec, spec.alternate)
	default:
		if prec >= 0 {
			if prec == 0 {
				prec = 1
			}
			s := generalFloat(a, prec, prec-1, spec.alternate)
			if !strings.ContainsAny(s, ".e") {
				s += ".0"
			}
			return s
		}
		return reprFloat(a)
	}
}

// generalFloat formats a with prec significant digits, in exponent form when
// the decimal exponent is below -4 or at least sciAt. Trailing zeros and a
// bare decimal point are removed unless alt is set.
func generalFloat(a float64, prec, sciAt int, alt bool) string {
	e := strconv.FormatFloat(a, 'e', prec-1, 64)
	i := strings.IndexByte(e, 'e')
	exp, _ := strconv.Atoi(e[i+1:])
	mant, suffix := e[:i], e[i:]
	if exp >= -4 && exp < sciAt {
		mant, suffix = strconv.FormatFloat(a, 'f', prec-1-exp, 64), ""
	}
	switch {
	case alt && !strings.Contains(mant, "."):
		mant += "."
	case !alt && strings.Contains(mant, "."):
		mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
	}
	return mant + suffix
}

// reprFloat returns the shortest round-trip form of a non-negative finite
// float, using exponent notation outside [1e-4, 1e16) and always keeping a
// fractional part in fixed notation.
func reprFloat(a float64) string {
	e := strconv.FormatFloat(a, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if a != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(a, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func signOf(neg bool, sign byte) string {
	switch {
	case neg:
		return "-"
	case sign == '+':
		return "+"
	case sign == ' ':
		return " "
	}
	return ""
}

func group(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

func pad(prefix, body string, spec formatSpec, defaultAlign byte) string {
	n := spec.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(body)
	if n <= 0 {
		return prefix + body
	}
	fill := strings.Repeat(string(spec.fill), n)
	align := spec.align
	if align == 0 {
		align = defaultAlign
	}
	switch align {
	case '<':
		return prefix + body + fill
	case '^':
		left := strings.Repeat(string(spec.fill), n/2)
		right := strings.Repeat(string(spec.fill), n-n/2)
		return left + prefix + body + right
	case '=':
		return prefix + fill + body
	default:
		return fill + prefix + body
	}
}

// reprValue renders v the way the !r conversion does: strings are quoted,
// everything else uses its plain form.
func reprValue(v any) string {
	switch x := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(strings.ReplaceAll(x, `\`, `\\`), "'", `\'`) + "'"
	default:
		return strValue(v)
	}
}

// strValue renders v the way the !s conversion does.
func strValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		return boolString(x)
	case float32:
		return strValue(float64(x))
	case float64:
		switch {
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		case math.IsNaN(x):
			return "nan"
		case math.Signbit(x):
			return "-" + reprFloat(-x)
		}
		return reprFloat(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}
