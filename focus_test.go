package structgen

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func writePool(t *testing.T, name string, samples []Sample) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, WriteJSONL(path, samples))
	return path
}

func tomlSample(sub, prompt string) Sample {
	return NewSample(CategoryTOML, sub, TaskTransform, "dummy", prompt, "a = 1\n")
}

func TestBuildFocusPack(t *testing.T) {
	var pool []Sample
	for i := 0; i < 10; i++ {
		pool = append(pool, tomlSample("json_to_toml", "jp"+string(rune('a'+i))))
		pool = append(pool, tomlSample("yaml_to_toml", "yp"+string(rune('a'+i))))
	}
	pool = append(pool,
		tomlSample("text_to_toml", "tp1"),
		NewSample(CategoryXML, "json_to_xml", TaskTransform, "dummy", "xp", "<root/>"),
	)
	path := writePool(t, "pool.jsonl", pool)

	out, err := BuildFocusPack([]string{path}, FocusCounts{JSONToTOML: 4, YAMLToTOML: 20, TextToTOML: 5}, 1, testLogger())
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, s := range out {
		counts[s.Subcategory]++
	}
	assert.Equal(t, 4, counts["json_to_toml"], "oversized bucket is sampled down")
	assert.Equal(t, 10, counts["yaml_to_toml"], "undersized bucket is taken whole")
	assert.Equal(t, 1, counts["text_to_toml"])
	assert.Zero(t, counts["json_to_xml"], "non-TOML subcategories are excluded")
}

func TestBuildFocusPackOutputOrder(t *testing.T) {
	pool := []Sample{
		tomlSample("text_to_toml", "t1"),
		tomlSample("json_to_toml", "j1"),
		tomlSample("yaml_to_toml", "y1"),
	}
	path := writePool(t, "pool.jsonl", pool)

	out, err := BuildFocusPack([]string{path}, FocusCounts{JSONToTOML: 5, YAMLToTOML: 5, TextToTOML: 5}, 1, testLogger())
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "json_to_toml", out[0].Subcategory)
	assert.Equal(t, "yaml_to_toml", out[1].Subcategory)
	assert.Equal(t, "text_to_toml", out[2].Subcategory)
}

func TestBuildFocusPackDeterministic(t *testing.T) {
	var pool []Sample
	for i := 0; i < 20; i++ {
		pool = append(pool, tomlSample("json_to_toml", "p"+string(rune('a'+i))))
	}
	path := writePool(t, "pool.jsonl", pool)
	counts := FocusCounts{JSONToTOML: 5}

	first, err := BuildFocusPack([]string{path}, counts, 7, testLogger())
	require.NoError(t, err)
	second, err := BuildFocusPack([]string{path}, counts, 7, testLogger())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildFocusPackSkipsMissingInput(t *testing.T) {
	path := writePool(t, "pool.jsonl", []Sample{tomlSample("json_to_toml", "p")})

	out, err := BuildFocusPack(
		[]string{filepath.Join(t.TempDir(), "absent.jsonl"), path},
		FocusCounts{JSONToTOML: 5}, 1, testLogger())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestBuildFocusPackSkipsBinaryInput(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(bin, []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00}, 0o644))

	out, err := BuildFocusPack([]string{bin}, FocusCounts{JSONToTOML: 5}, 1, testLogger())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSampleFrom(t *testing.T) {
	bucket := []Sample{
		tomlSample("json_to_toml", "a"),
		tomlSample("json_to_toml", "b"),
		tomlSample("json_to_toml", "c"),
	}
	rngSamples := func(seed int64, k int) []Sample {
		return sampleFrom(newTestRand(seed), bucket, k)
	}

	assert.Len(t, rngSamples(1, 2), 2)
	assert.Equal(t, bucket, rngSamples(1, 3))
	assert.Equal(t, bucket, rngSamples(1, 10))
	assert.Nil(t, rngSamples(1, 0))
	assert.Nil(t, sampleFrom(newTestRand(1), nil, 5))
}
