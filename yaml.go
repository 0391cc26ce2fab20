package gwrite

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WriteProfileYAML writes p to w as YAML, using the configuration key names.
// Hooks appear in traversal order; unset hooks are omitted.
func WriteProfileYAML(w io.Writer, p Profile) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content, scalar(key, "!!str"), value)
	}

	add("name", scalar(p.Name, "!!str"))
	add("unit", scalar(p.Unit, "!!str"))
	add("scale_x", floatNode(p.ScaleX))
	add("scale_y", floatNode(p.ScaleY))
	add("offset_x", floatNode(p.OffsetX))
	add("offset_y", floatNode(p.OffsetY))
	add("invert_x", scalar(strconv.FormatBool(p.InvertX), "!!bool"))
	add("invert_y", scalar(strconv.FormatBool(p.InvertY), "!!bool"))
	for _, h := range hooks {
		if src, ok := p.Template(h); ok {
			n := scalar(src, "!!str")
			if len(src) > 0 && src[len(src)-1] == '\n' {
				n.Style = yaml.LiteralStyle
			}
			add(string(h), n)
		}
	}
	if len(p.DefaultValues) > 0 {
		values := &yaml.Node{}
		if err := values.Encode(p.DefaultValues); err != nil {
			return err
		}
		add("default_values", values)
	}
	if p.Info != "" {
		add("info", scalar(p.Info, "!!str"))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func floatNode(f float64) *yaml.Node {
	return scalar(strValue(f), "!!float")
}
