// Package gwrite renders vector drawings as G-code or any other line-based
// text dialect, driven by user-supplied templates.
//
// A [vector.Document] is walked layer by layer, line by line and point by
// point. At each step of the walk a [Hook] fires and the matching template
// of the selected [Profile], if any, is rendered and written out:
//
//	document_start
//	  layer_start
//	    line_start
//	      segment_first | segment | segment_last   (one per point)
//	    line_end
//	    line_join                                  (between lines)
//	  layer_end
//	  layer_join                                   (between layers)
//	document_end
//
// The central entry points are [Write] and [Marshal]:
//
//	cfg, _ := gwrite.DefaultConfig()
//	p, err := gwrite.Resolve("gcode", cfg)
//	if err != nil { ... }
//	err = gwrite.Write(os.Stdout, doc, p, gwrite.Options{})
//
// # Templates
//
// Templates use brace placeholders with an optional format specifier:
//
//	G01 X{x:.4f} Y{y:.4f}
//
// The specifier grammar is [[fill]align][sign][#][0][width][,|_][.precision][type]
// with types b c d o x X n e E f F g G % s. Doubled braces produce literal
// braces. See [Parse].
//
// # Variables
//
// Placeholders resolve through a [Context]: hook variables first, then
// document metadata, layer metadata, user defaults ([Options.Defaults]) and
// finally the profile's default values. The first source that defines a
// name wins.
//
// Segment hooks expose x, y, dx, dy, _x, _y, _dx, _dy (negated), ix, iy
// (integer cursor) and idx, idy (integer steps). Layer and line hooks expose
// the last position as x, y, ix, iy. Every hook below the document exposes
// index and index1 for its own level, <level>_index and <level>_index1 for
// enclosing levels (layer, lines/line, segment), layer_id and filename.
//
// # Coordinates
//
// Before the walk, a copy of the document is scaled from working units into
// the profile's unit, multiplied by scale_x/scale_y, offset, and optionally
// mirrored around its center. See [Transform]. The integer cursor ix, iy
// always equals the current point rounded to the nearest integer (ties
// toward positive infinity); idx, idy are the steps that get it there, so
// relative integer output never accumulates rounding drift.
//
// # Configuration
//
// Profiles are read from TOML with [LoadConfig]; [DefaultConfig] holds the
// bundled profiles. [Resolve] picks a profile by name or falls back to
// default_profile.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrConfiguration] — unknown or missing profile, unknown unit, bad config
//   - [ErrGeometry] — axis inversion requested on an empty document
//   - [ErrTemplateSyntax] — malformed template, reported before any output
//   - [ErrTemplateKey] — placeholder not defined by any source; see [KeyError]
//   - [ErrTemplateFormat] — specifier does not apply to the value
package gwrite
