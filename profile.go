package gwrite

import (
	"fmt"
	"slices"
	"strings"
)

// Hook names a point in the traversal where a template may render.
type Hook string

const (
	DocumentStart Hook = "document_start"
	DocumentEnd   Hook = "document_end"
	LayerStart    Hook = "layer_start"
	LayerEnd      Hook = "layer_end"
	LayerJoin     Hook = "layer_join"
	LineStart     Hook = "line_start"
	LineEnd       Hook = "line_end"
	LineJoin      Hook = "line_join"
	Segment       Hook = "segment"
	SegmentFirst  Hook = "segment_first"
	SegmentLast   Hook = "segment_last"
)

var hooks = []Hook{
	DocumentStart, DocumentEnd,
	LayerStart, LayerEnd, LayerJoin,
	LineStart, LineEnd, LineJoin,
	Segment, SegmentFirst, SegmentLast,
}

// String returns the hook name.
func (h Hook) String() string { return string(h) }

// Hooks returns all hook names in configuration order.
func Hooks() []Hook {
	out := make([]Hook, len(hooks))
	copy(out, hooks)
	return out
}

// ParseHook parses a hook name.
func ParseHook(s string) (Hook, error) {
	for _, h := range hooks {
		if string(h) == s {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: unknown hook %q", ErrConfiguration, s)
}

// Placement describes how the drawing is mapped to output coordinates.
type Placement struct {
	Unit    string
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64
	InvertX bool
	InvertY bool
}

// DefaultPlacement is millimeters, unit scale, no offset, no inversion.
func DefaultPlacement() Placement {
	return Placement{Unit: "mm", ScaleX: 1, ScaleY: 1}
}

// Profile is a named bundle of templates and placement parameters.
type Profile struct {
	Name string
	Placement

	// Templates holds the template source per hook. A hook without an
	// entry renders nothing.
	Templates map[Hook]string

	// DefaultValues are the lowest-priority template variables.
	DefaultValues map[string]any

	// Info is printed to the diagnostic stream after a successful write.
	Info string
}

// NewProfile returns an empty profile with default placement.
func NewProfile(name string) Profile {
	return Profile{
		Name:      name,
		Placement: DefaultPlacement(),
		Templates: make(map[Hook]string),
	}
}

// Template returns the template source for h.
func (p Profile) Template(h Hook) (string, bool) {
	s, ok := p.Templates[h]
	return s, ok
}

// Compile parses every configured template. Errors wrap ErrConfiguration
// and name the offending hook.
func (p Profile) Compile() (map[Hook]*Template, error) {
	out := make(map[Hook]*Template, len(p.Templates))
	for _, h := range hooks {
		src, ok := p.Template(h)
		if !ok {
			continue
		}
		t, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: profile %q, %s: %w", ErrConfiguration, p.Name, h, err)
		}
		out[h] = t
	}
	return out, nil
}

// Config is the set of available profiles. It is built once by the caller
// and passed to [Resolve].
type Config struct {
	DefaultProfile string
	Profiles       map[string]Profile
}

// Merge returns a new Config holding c's profiles overlaid with other's.
// Profiles in other replace same-named profiles in c; a non-empty
// other.DefaultProfile replaces c's.
func (c *Config) Merge(other *Config) *Config {
	out := &Config{Profiles: make(map[string]Profile)}
	for _, src := range []*Config{c, other} {
		if src == nil {
			continue
		}
		if src.DefaultProfile != "" {
			out.DefaultProfile = src.DefaultProfile
		}
		for name, p := range src.Profiles {
			out.Profiles[name] = p
		}
	}
	return out
}

// ProfileNames returns the configured profile names in sorted order.
func ProfileNames(cfg *Config) []string {
	if cfg == nil {
		return nil
	}
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve selects the profile called name, or the configured default when
// name is empty.
func Resolve(name string, cfg *Config) (Profile, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if name == "" {
		if cfg.DefaultProfile == "" {
			return Profile{}, fmt.Errorf("%w: no profile provided and no default profile configured; "+
				"pass a profile or set the \"default_profile\" key in the \"gwrite\" section", ErrConfiguration)
		}
		name = cfg.DefaultProfile
	}
	p, ok := cfg.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: profile %q not found; available profiles: %s",
			ErrConfiguration, name, strings.Join(ProfileNames(cfg), ", "))
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
