package structgen

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodeYAML renders n as YAML preserving mapping insertion order and
// native scalar types. The document is lowered into a yaml.Node tree so
// the encoder quotes strings only where the syntax demands it. On the
// unlikely encode failure the JSON form is returned instead; it keeps the
// data shape and lets the strict validator reject the sample downstream.
func EncodeYAML(n Node) string {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlTree(n)); err != nil {
		return EncodeJSON(n)
	}
	if err := enc.Close(); err != nil {
		return EncodeJSON(n)
	}
	return buf.String()
}

func yamlTree(n Node) *yaml.Node {
	switch v := n.(type) {
	case *Mapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				yamlTree(e.Value))
		}
		return node
	case *Sequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v.Elems {
			node.Content = append(node.Content, yamlTree(el))
		}
		return node
	case Scalar:
		return yamlScalar(v)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlScalar(s Scalar) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch s.Kind() {
	case KindNull:
		node.Tag = "!!null"
		node.Value = "null"
	case KindBool:
		node.Tag = "!!bool"
		node.Value = strconv.FormatBool(s.BoolValue())
	case KindInt:
		node.Tag = "!!int"
		node.Value = strconv.FormatInt(s.IntValue(), 10)
	case KindFloat:
		node.Tag = "!!float"
		node.Value = formatFloat(s.FloatValue())
	default:
		node.Tag = "!!str"
		node.Value = s.StringValue()
	}
	return node
}
