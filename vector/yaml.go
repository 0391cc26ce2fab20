package vector

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned by [Decode] for malformed input.
var ErrInvalidDocument = errors.New("invalid document")

type yamlDocument struct {
	Metadata map[string]any `yaml:"metadata"`
	Layers   []yamlLayer    `yaml:"layers"`
}

type yamlLayer struct {
	ID       *int           `yaml:"id"`
	Metadata map[string]any `yaml:"metadata"`
	Lines    [][][]float64  `yaml:"lines"`
}

// Decode reads a YAML document description from r. Layers without an id are
// numbered after the highest id seen so far, starting at 1.
func Decode(r io.Reader) (*Document, error) {
	var raw yamlDocument
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}

	doc := NewDocument()
	for k, v := range raw.Metadata {
		doc.Metadata[k] = v
	}

	next := 1
	for i, rl := range raw.Layers {
		id := next
		if rl.ID != nil {
			id = *rl.ID
		}
		if _, dup := doc.Layer(id); dup {
			return nil, fmt.Errorf("%w: duplicate layer id %d", ErrInvalidDocument, id)
		}
		if id >= next {
			next = id + 1
		}

		layer := &Layer{Metadata: Metadata{}, Lines: make([]Line, 0, len(rl.Lines))}
		for k, v := range rl.Metadata {
			layer.Metadata[k] = v
		}
		for j, rawLine := range rl.Lines {
			line := make(Line, len(rawLine))
			for k, pt := range rawLine {
				if len(pt) != 2 {
					return nil, fmt.Errorf("%w: layer %d line %d point %d: want 2 coordinates, got %d",
						ErrInvalidDocument, i, j, k, len(pt))
				}
				line[k] = Point{X: pt[0], Y: pt[1]}
			}
			layer.Lines = append(layer.Lines, line)
		}
		doc.AddLayer(id, layer)
	}
	return doc, nil
}
