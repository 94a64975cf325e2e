package structgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodeYAMLPreservesOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zeta", Int(1))
	m.Set("alpha", Int(2))

	out := EncodeYAML(m)
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
}

func TestEncodeYAMLScalarTypes(t *testing.T) {
	m := NewMapping()
	m.Set("name", String("Atlas"))
	m.Set("count", Int(3))
	m.Set("ratio", Float(2.5))
	m.Set("ok", Bool(true))
	m.Set("gone", Null())

	out := EncodeYAML(m)
	assert.Contains(t, out, "name: Atlas")
	assert.Contains(t, out, "count: 3")
	assert.Contains(t, out, "ratio: 2.5")
	assert.Contains(t, out, "ok: true")
	assert.Contains(t, out, "gone: null")
}

func TestEncodeYAMLRoundTripsTypes(t *testing.T) {
	item := NewMapping()
	item.Set("n", Int(7))
	item.Set("f", Float(1.5))
	m := NewMapping()
	m.Set("items", NewSequence(item))

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(EncodeYAML(m)), &parsed))

	items, ok := parsed["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, 7, first["n"])
	assert.Equal(t, 1.5, first["f"])
}

func TestEncodeYAMLAcceptedByValidator(t *testing.T) {
	g := NewGenerator(19)
	for i := 0; i < 10; i++ {
		out := EncodeYAML(g.HardObject())
		assert.True(t, DefaultValidators().YAML(out), "doc %d:\n%s", i, out)
	}
}
