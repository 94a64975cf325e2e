package structgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSample(t *testing.T) {
	s := NewSample(CategoryTOML, "json_to_toml", TaskTransform, "dummy", "convert this", "a = 1\n")

	assert.Len(t, s.ID, 12)
	assert.Equal(t, CategoryTOML, s.Category)
	assert.Equal(t, "json_to_toml", s.Subcategory)
	assert.Equal(t, TaskTransform, s.Task)
	assert.Equal(t, "dummy", s.Seed)
	require.Len(t, s.Messages, 2)
	assert.Equal(t, Message{Role: "user", Content: "convert this"}, s.Messages[0])
	assert.Equal(t, Message{Role: "assistant", Content: "a = 1\n"}, s.Messages[1])
	assert.Equal(t, "a = 1\n", s.Answer())
}

func TestSampleIDIsContentHash(t *testing.T) {
	a := NewSample(CategoryXML, "json_to_xml", TaskTransform, "dummy", "p", "a")
	b := NewSample(CategoryTOML, "json_to_toml", TaskExtract, "toml_aug", "p", "a")
	c := NewSample(CategoryXML, "json_to_xml", TaskTransform, "dummy", "p", "b")

	// only prompt and answer feed the hash
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestSampleIDSeparatorMatters(t *testing.T) {
	a := NewSample(CategoryXML, "s", TaskTransform, "dummy", "ab", "c")
	b := NewSample(CategoryXML, "s", TaskTransform, "dummy", "a", "bc")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSampleAnswerMalformed(t *testing.T) {
	assert.Empty(t, Sample{}.Answer())

	s := Sample{Messages: []Message{{Role: "user", Content: "hi"}}}
	assert.Empty(t, s.Answer())
}
