package gwrite

import (
	"bufio"
	"fmt"

	"github.com/bjaus/gwrite/vector"
)

// traversal walks document → layer → line → segment, rendering the hook
// templates in order. It owns the cursor and is used for a single write.
type traversal struct {
	out       *bufio.Writer
	doc       *vector.Document
	templates map[Hook]*Template
	defaults  map[string]string
	values    map[string]any
	filename  string

	cursor Cursor
	layer  *vector.Layer
	stats  struct{ layers, lines, segments int }
}

func (t *traversal) run() error {
	if err := t.emit(DocumentStart, Vars{"filename": t.filename}); err != nil {
		return err
	}

	last := t.doc.Len() - 1
	layerIndex := 0
	for id, layer := range t.doc.Layers() {
		t.layer = layer
		if err := t.walkLayer(layerIndex, id, layer); err != nil {
			return err
		}
		t.stats.layers++

		vars := t.layerVars(layerIndex, id)
		if err := t.emit(LayerEnd, vars); err != nil {
			return err
		}
		if layerIndex != last {
			if err := t.emit(LayerJoin, vars); err != nil {
				return err
			}
		}
		t.layer = nil
		layerIndex++
	}

	return t.emit(DocumentEnd, Vars{"filename": t.filename})
}

func (t *traversal) walkLayer(layerIndex, id int, layer *vector.Layer) error {
	if err := t.emit(LayerStart, t.layerVars(layerIndex, id)); err != nil {
		return err
	}
	last := len(layer.Lines) - 1
	for i, line := range layer.Lines {
		if err := t.emit(LineStart, t.lineVars(layerIndex, id, i)); err != nil {
			return err
		}
		if err := t.walkLine(layerIndex, id, i, line); err != nil {
			return err
		}
		t.stats.lines++

		vars := t.lineVars(layerIndex, id, i)
		if err := t.emit(LineEnd, vars); err != nil {
			return err
		}
		if i != last {
			if err := t.emit(LineJoin, vars); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *traversal) walkLine(layerIndex, id, lineIndex int, line vector.Line) error {
	last := len(line) - 1
	for i, p := range line {
		step := t.cursor.Advance(p)
		vars := step.vars(t.cursor)
		addIndex(vars, "", i)
		addIndex(vars, "segment_", i)
		addIndex(vars, "lines_", lineIndex)
		addIndex(vars, "line_", lineIndex)
		addIndex(vars, "layer_", layerIndex)
		vars["layer_id"] = id
		vars["filename"] = t.filename

		if err := t.emit(t.segmentHook(i, last), vars); err != nil {
			return err
		}
		t.stats.segments++
	}
	return nil
}

// segmentHook picks segment_first for the first point and segment_last for
// the last one when those are configured, segment otherwise.
func (t *traversal) segmentHook(i, last int) Hook {
	if _, ok := t.templates[SegmentFirst]; ok && i == 0 {
		return SegmentFirst
	}
	if _, ok := t.templates[SegmentLast]; ok && i == last {
		return SegmentLast
	}
	return Segment
}

func (t *traversal) layerVars(layerIndex, id int) Vars {
	vars := t.positionVars()
	addIndex(vars, "", layerIndex)
	addIndex(vars, "layer_", layerIndex)
	vars["layer_id"] = id
	return vars
}

func (t *traversal) lineVars(layerIndex, id, lineIndex int) Vars {
	vars := t.positionVars()
	addIndex(vars, "", lineIndex)
	addIndex(vars, "lines_", lineIndex)
	addIndex(vars, "line_", lineIndex)
	addIndex(vars, "layer_", layerIndex)
	vars["layer_id"] = id
	return vars
}

// positionVars exposes the last visited position to layer and line hooks.
func (t *traversal) positionVars() Vars {
	return Vars{
		"x":        t.cursor.LastX,
		"y":        t.cursor.LastY,
		"ix":       t.cursor.IX,
		"iy":       t.cursor.IY,
		"filename": t.filename,
	}
}

func addIndex(vars Vars, prefix string, i int) {
	vars[prefix+"index"] = i
	vars[prefix+"index1"] = i + 1
}

func (t *traversal) emit(h Hook, vars Vars) error {
	tmpl, ok := t.templates[h]
	if !ok {
		return nil
	}
	ctx := BuildContext(vars, t.doc.Metadata, t.layer, t.defaults, t.values)
	s, err := tmpl.render(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", h, err)
	}
	_, err = t.out.WriteString(s)
	return err
}
