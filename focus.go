package structgen

import (
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FocusCounts sizes a TOML-focused pack resampled from existing packs.
type FocusCounts struct {
	JSONToTOML int
	YAMLToTOML int
	TextToTOML int
}

// DefaultFocusCounts mirrors the usual focus mix, weighted toward the
// extraction subtask.
func DefaultFocusCounts() FocusCounts {
	return FocusCounts{JSONToTOML: 300, YAMLToTOML: 300, TextToTOML: 600}
}

// focusSubcategories lists the buckets a focus pack draws from, in output
// order.
var focusSubcategories = []string{"json_to_toml", "yaml_to_toml", "text_to_toml"}

// BuildFocusPack pools samples from the input JSONL files, buckets them by
// TOML subcategory and samples each bucket down to its requested size.
// Missing inputs and files that do not look like line-delimited text are
// logged and skipped rather than failing the whole pack.
func BuildFocusPack(inputs []string, counts FocusCounts, seed int64, log *slog.Logger) ([]Sample, error) {
	if log == nil {
		log = slog.Default()
	}
	rng := rand.New(rand.NewSource(seed))

	buckets := make(map[string][]Sample, len(focusSubcategories))
	for _, p := range inputs {
		if _, err := os.Stat(p); err != nil {
			log.Warn("missing input", "path", p)
			continue
		}
		if !looksLikeJSONL(p) {
			log.Warn("input does not look like JSONL text, skipping", "path", p)
			continue
		}
		pool, err := ReadJSONL(p)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded pool", "path", p, "samples", len(pool))
		for _, s := range pool {
			for _, sub := range focusSubcategories {
				if s.Subcategory == sub {
					buckets[sub] = append(buckets[sub], s)
					break
				}
			}
		}
	}

	want := map[string]int{
		"json_to_toml": counts.JSONToTOML,
		"yaml_to_toml": counts.YAMLToTOML,
		"text_to_toml": counts.TextToTOML,
	}
	var out []Sample
	for _, sub := range focusSubcategories {
		picked := sampleFrom(rng, buckets[sub], want[sub])
		log.Debug("bucket sampled", "subcategory", sub, "available", len(buckets[sub]), "picked", len(picked))
		out = append(out, picked...)
	}
	return out, nil
}

// sampleFrom returns k samples drawn without replacement, or the whole
// bucket when it is not larger than k.
func sampleFrom(rng *rand.Rand, bucket []Sample, k int) []Sample {
	if len(bucket) == 0 || k <= 0 {
		return nil
	}
	if len(bucket) <= k {
		return append([]Sample{}, bucket...)
	}
	idx := rng.Perm(len(bucket))[:k]
	out := make([]Sample, 0, k)
	for _, i := range idx {
		out = append(out, bucket[i])
	}
	return out
}

// looksLikeJSONL sniffs the file's content type and accepts anything
// line-delimited-JSON or plain-text shaped. The sniff guards against
// accidentally pooling binary artifacts into a pack.
func looksLikeJSONL(path string) bool {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for ; mt != nil; mt = mt.Parent() {
		s := mt.String()
		if s == "application/x-ndjson" || s == "application/json" || strings.HasPrefix(s, "text/") {
			return true
		}
	}
	return false
}
