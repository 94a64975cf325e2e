package structgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack", "out.jsonl")
	samples := []Sample{
		NewSample(CategoryTOML, "json_to_toml", TaskTransform, "dummy", "p1", "a = 1\n"),
		NewSample(CategoryXML, "json_to_xml", TaskTransform, "dummy", "p2", "<root/>"),
	}

	require.NoError(t, WriteJSONL(path, samples))

	got, err := ReadJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestWriteJSONLOneLinePerSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	samples := []Sample{
		NewSample(CategoryYAML, "text_to_yaml", TaskExtract, "dummy_hard", "multi\nline prompt", "k: v\n"),
	}
	require.NoError(t, WriteJSONL(path, samples))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 1)
}

func TestReadJSONLSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.jsonl")
	s := NewSample(CategoryTOML, "yaml_to_toml", TaskTransform, "toml_aug", "p", "x = 1\n")
	require.NoError(t, WriteJSONL(path, []Sample{s}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("\n"+string(raw)+"\n\n"), 0o644))

	got, err := ReadJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, []Sample{s}, got)
}

func TestReadJSONLMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0o644))

	_, err := ReadJSONL(path)
	assert.Error(t, err)
}

func TestSmoke(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smoke.jsonl")
	samples := []Sample{
		NewSample(CategoryTOML, "json_to_toml", TaskTransform, "dummy", "p", "a = 1\n"),
		NewSample(CategoryTOML, "json_to_toml", TaskTransform, "dummy", "p", "not [ valid toml"),
		NewSample(CategoryXML, "json_to_xml", TaskTransform, "dummy", "p", "<root><x>1</x></root>"),
		{ID: "deadbeef0000", Subcategory: "json_to_xml", Messages: []Message{{Role: "user", Content: "p"}}},
	}
	require.NoError(t, WriteJSONL(path, samples))

	rep, err := Smoke(path, DefaultValidators())
	require.NoError(t, err)
	assert.Equal(t, SmokeReport{Checked: 4, OK: 2, Failed: 2}, rep)
	assert.InDelta(t, 0.5, rep.PassRate(), 1e-9)
}

func TestSmokeReportPassRateEmpty(t *testing.T) {
	assert.Zero(t, SmokeReport{}.PassRate())
}
