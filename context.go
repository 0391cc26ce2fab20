package gwrite

import "github.com/bjaus/gwrite/vector"

// Source is one layer of variables in a [Context].
type Source interface {
	Lookup(name string) (any, bool)
}

// Vars is a Source backed by a map.
type Vars map[string]any

// Lookup implements Source.
func (v Vars) Lookup(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}

// StringVars is a Source backed by string values, such as key/value pairs
// given on the command line.
type StringVars map[string]string

// Lookup implements Source.
func (v StringVars) Lookup(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}

// Context is an ordered chain of sources. Lookups return the value from the
// first source that defines the name; values are never merged.
type Context []Source

// Lookup implements Source.
func (c Context) Lookup(name string) (any, bool) {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// BuildContext assembles the lookup chain for one hook, highest priority
// first: explicit hook variables, document metadata, layer metadata,
// user-supplied defaults, profile default values. layer is nil outside a
// layer, in which case its source is left out of the chain.
func BuildContext(explicit Vars, document vector.Metadata, layer *vector.Layer, user map[string]string, profile map[string]any) Context {
	ctx := make(Context, 0, 5)
	ctx = append(ctx, explicit, Vars(document))
	if layer != nil {
		ctx = append(ctx, Vars(layer.Metadata))
	}
	return append(ctx, StringVars(user), Vars(profile))
}
