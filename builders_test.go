package structgen

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallDummyCounts() DummyCounts {
	return DummyCounts{
		JSONToXML:  3,
		YAMLToXML:  3,
		CSVToXML:   3,
		TextToXML:  3,
		XMLToYAML:  3,
		JSONToTOML: 3,
		YAMLToTOML: 3,
		TextToTOML: 3,
	}
}

func TestDummyPack(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.DummyPack(context.Background(), 1, smallDummyCounts())
	require.NoError(t, err)
	require.Len(t, samples, 24)

	v := DefaultValidators()
	for _, s := range samples {
		assert.Len(t, s.ID, 12)
		assert.Equal(t, seedDummy, s.Seed)
		assert.NotEmpty(t, s.Messages[0].Content)
		assert.True(t, v.Answer(s.Subcategory, s.Answer()), "sample %s/%s", s.Subcategory, s.ID)
	}
}

func TestDummyPackSubcategories(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.DummyPack(context.Background(), 1, smallDummyCounts())
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, s := range samples {
		seen[s.Subcategory]++
	}
	for _, sub := range []string{
		"json_to_xml", "yaml_to_xml", "csv_to_xml", "text_to_xml",
		"xml_to_yaml", "json_to_toml", "yaml_to_toml", "text_to_toml",
	} {
		assert.Equal(t, 3, seen[sub], "subcategory %s", sub)
	}
}

func TestHardPack(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.HardPack(context.Background(), 7, HardCounts{
		JSONToXML: 4, XMLToYAML: 4, TextToTOML: 4, TextToYAML: 4,
	})
	require.NoError(t, err)
	require.Len(t, samples, 16)

	v := DefaultValidators()
	for _, s := range samples {
		assert.Equal(t, seedHard, s.Seed)
		assert.True(t, v.Answer(s.Subcategory, s.Answer()), "sample %s/%s", s.Subcategory, s.ID)
	}
}

func TestHardPackExtractionAnswersAreProjected(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.HardPack(context.Background(), 3, HardCounts{TextToTOML: 5})
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	for _, s := range samples {
		assert.Equal(t, TaskExtract, s.Task)
		assert.True(t, strings.HasPrefix(s.Answer(), "[[items]]"), "answer:\n%s", s.Answer())
	}
}

func TestAugmentedPack(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.AugmentedPack(context.Background(), 11, AugmentedCounts{JSONToTOML: 3, YAMLToTOML: 3})
	require.NoError(t, err)
	require.Len(t, samples, 6)

	v := DefaultValidators()
	for _, s := range samples {
		assert.Equal(t, seedAug, s.Seed)
		assert.Equal(t, CategoryTOML, s.Category)
		assert.True(t, v.TOML(s.Answer()))
	}
}

func TestPackDeterministicPerSeed(t *testing.T) {
	b := NewBuilderForTesting()

	first, err := b.HardPack(context.Background(), 99, HardCounts{JSONToXML: 3, TextToYAML: 3})
	require.NoError(t, err)
	second, err := b.HardPack(context.Background(), 99, HardCounts{JSONToXML: 3, TextToYAML: 3})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPackStreamOrderIsStable(t *testing.T) {
	b := NewBuilderForTesting()

	samples, err := b.AugmentedPack(context.Background(), 5, AugmentedCounts{JSONToTOML: 2, YAMLToTOML: 2})
	require.NoError(t, err)
	require.Len(t, samples, 4)

	// streams land in declaration order regardless of scheduling
	subs := make([]string, len(samples))
	for i, s := range samples {
		subs[i] = s.Subcategory
	}
	assert.Equal(t, []string{"json_to_toml", "json_to_toml", "yaml_to_toml", "yaml_to_toml"}, subs)
}

func TestBuilderPromptRenderFailureSkipsStream(t *testing.T) {
	b := NewBuilder(
		WithPrompts(SimplePromptProvider{"json_to_toml_native": "convert"}),
		WithLogger(testLogger()),
	)

	samples, err := b.AugmentedPack(context.Background(), 1, AugmentedCounts{JSONToTOML: 2, YAMLToTOML: 2})
	require.NoError(t, err)

	// the yaml stream has no template and contributes nothing
	require.Len(t, samples, 2)
	for _, s := range samples {
		assert.Equal(t, "json_to_toml", s.Subcategory)
		assert.Equal(t, "convert", s.Messages[0].Content)
	}
}

func TestAttrText(t *testing.T) {
	m := pathFixture()
	got := attrText(m, []string{"a.name", "flag", "a.b[0]"})
	assert.Equal(t, "a.name: Atlas | flag: True | a.b[0]: 10", got)
}

func TestWrapItems(t *testing.T) {
	payload := NewMapping()
	payload.Set("x", Int(1))

	obj := wrapItems(payload)
	items := itemMappings(obj)
	require.Len(t, items, 1)
	assert.Same(t, payload, items[0])
}

func TestFirstItemFallback(t *testing.T) {
	assert.Equal(t, 0, firstItem(NewMapping()).Len())

	obj := NewMapping()
	obj.Set("items", NewSequence(String("not a mapping")))
	assert.Equal(t, 0, firstItem(obj).Len())
}

func TestItemKeys(t *testing.T) {
	m := NewMapping()
	m.Set("a", Int(1))
	m.Set("b", Int(2))
	m.Set("c", Int(3))

	assert.Equal(t, []string{"a", "b"}, itemKeys(m, 2))
	assert.Equal(t, []string{"a", "b", "c"}, itemKeys(m, 9))
	assert.Equal(t, []string{"name", "value"}, itemKeys(NewMapping(), 4))
}
