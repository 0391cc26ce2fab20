// Package vector holds the in-memory drawing consumed by gwrite: an ordered
// set of layers, each made of polylines, each made of points.
//
// Coordinates are expressed in CSS pixels (1/96 inch), the working unit of
// the upstream geometry pipeline. Use [ConvertLength] to obtain the factor
// between a named unit and the working unit:
//
//	f, err := vector.ConvertLength("mm") // 96 / 25.4
//
// Documents are built with [NewDocument] and [Document.AddLayer], or decoded
// from YAML with [Decode]:
//
//	metadata:
//	  vp_source: drawing.svg
//	layers:
//	  - id: 1
//	    metadata: {vp_color: "#0000ff"}
//	    lines:
//	      - [[0, 0], [10, 0], [10, 10]]
//
// [Document.Scale] and [Document.Translate] mutate in place; call
// [Document.Clone] first when the caller's document must stay untouched.
package vector
