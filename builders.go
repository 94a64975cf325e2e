package structgen

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tyler-sommer/stick"
)

// Seed tags identify which pipeline produced a sample.
const (
	seedDummy = "dummy"
	seedHard  = "dummy_hard"
	seedAug   = "toml_aug"
)

const (
	rootTag          = "root"
	maxPromptPayload = 1800
	maxPickedAttrs   = 8
	maxTextAttrs     = 6
)

// Builder assembles prompt/answer samples from generated documents. Every
// answer is produced by deterministic serialization and re-checked with a
// strict parser before the sample is kept, so syntax validity is
// guaranteed by construction plus verification, not by trust.
type Builder struct {
	prompts PromptProvider
	checks  *Validators
	log     *slog.Logger
}

// NewBuilder returns a builder wired to the embedded prompt templates and
// the default validators unless options say otherwise.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		prompts: DefaultPrompts(),
		checks:  DefaultValidators(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DummyCounts sizes the plain pack: flat items, simple prompts.
type DummyCounts struct {
	JSONToXML  int
	YAMLToXML  int
	CSVToXML   int
	TextToXML  int
	XMLToYAML  int
	JSONToTOML int
	YAMLToTOML int
	TextToTOML int
}

// DefaultDummyCounts mirrors the usual plain-pack mix.
func DefaultDummyCounts() DummyCounts {
	return DummyCounts{
		JSONToXML:  300,
		YAMLToXML:  300,
		XMLToYAML:  150,
		JSONToTOML: 150,
		YAMLToTOML: 150,
		TextToTOML: 150,
	}
}

// HardCounts sizes the hard pack: deep nesting, mixed types, extraction
// over dot/bracket attribute paths.
type HardCounts struct {
	JSONToXML  int
	XMLToYAML  int
	TextToTOML int
	TextToYAML int
}

// DefaultHardCounts mirrors the usual hard-pack mix.
func DefaultHardCounts() HardCounts {
	return HardCounts{JSONToXML: 1000, XMLToYAML: 1000, TextToTOML: 1000, TextToYAML: 1000}
}

// AugmentedCounts sizes the TOML-augmented pack, which reuses the hard
// document shapes for richer json/yaml-to-TOML conversion.
type AugmentedCounts struct {
	JSONToTOML int
	YAMLToTOML int
}

// DefaultAugmentedCounts mirrors the usual augmented-pack mix.
func DefaultAugmentedCounts() AugmentedCounts {
	return AugmentedCounts{JSONToTOML: 500, YAMLToTOML: 500}
}

// stream is one independent sample pipeline within a pack. Each stream
// owns a generator derived from the pack seed, so streams can run
// concurrently while the pack as a whole stays reproducible.
type stream struct {
	n  int
	fn func(*Generator, int) []Sample
}

func (b *Builder) runStreams(ctx context.Context, seed int64, streams []stream) ([]Sample, error) {
	results := make([][]Sample, len(streams))
	r := DefaultRunner(ctx)
	for i, st := range streams {
		i, st := i, st
		g := NewGenerator(seed + int64(i))
		r.Go(func() error {
			results[i] = st.fn(g, st.n)
			return nil
		})
	}
	if err := r.Wait(); err != nil {
		return nil, err
	}
	var out []Sample
	for _, rs := range results {
		out = append(out, rs...)
	}
	return out, nil
}

// DummyPack builds the plain pack.
func (b *Builder) DummyPack(ctx context.Context, seed int64, c DummyCounts) ([]Sample, error) {
	b.log.Debug("building dummy pack", "seed", seed)
	return b.runStreams(ctx, seed, []stream{
		{c.JSONToXML, b.dummyJSONToXML},
		{c.YAMLToXML, b.dummyYAMLToXML},
		{c.CSVToXML, b.dummyCSVToXML},
		{c.TextToXML, b.dummyTextToXML},
		{c.XMLToYAML, b.dummyXMLToYAML},
		{c.JSONToTOML, b.dummyJSONToTOML},
		{c.YAMLToTOML, b.dummyYAMLToTOML},
		{c.TextToTOML, b.dummyTextToTOML},
	})
}

// HardPack builds the hard pack.
func (b *Builder) HardPack(ctx context.Context, seed int64, c HardCounts) ([]Sample, error) {
	b.log.Debug("building hard pack", "seed", seed)
	return b.runStreams(ctx, seed, []stream{
		{c.JSONToXML, b.hardJSONToXML},
		{c.XMLToYAML, b.hardXMLToYAML},
		{c.TextToTOML, b.hardTextToTOML},
		{c.TextToYAML, b.hardTextToYAML},
	})
}

// AugmentedPack builds the TOML-augmented pack.
func (b *Builder) AugmentedPack(ctx context.Context, seed int64, c AugmentedCounts) ([]Sample, error) {
	b.log.Debug("building augmented pack", "seed", seed)
	return b.runStreams(ctx, seed, []stream{
		{c.JSONToTOML, b.augJSONToTOML},
		{c.YAMLToTOML, b.augYAMLToTOML},
	})
}

// render wraps the prompt provider; a template failure drops the sample
// and is logged rather than propagated, keeping sibling streams alive.
func (b *Builder) render(task string, ctx map[string]stick.Value) (string, bool) {
	prompt, err := b.prompts.Prompt(task, ctx)
	if err != nil {
		b.log.Debug("prompt render failed", "task", task, "error", err)
		return "", false
	}
	return prompt, true
}

func payloadCtx(payload string) map[string]stick.Value {
	return map[string]stick.Value{"payload": payload}
}

func extractCtx(payload string, attrs []string) map[string]stick.Value {
	return map[string]stick.Value{
		"payload": payload,
		"attrs":   strings.Join(attrs, ", "),
	}
}

func (b *Builder) dummyJSONToXML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("json_to_xml", payloadCtx(EncodeJSONSized(obj, maxPromptPayload)))
		if !ok {
			break
		}
		answer := EncodeXML(obj, rootTag)
		if !b.checks.XML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "json_to_xml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyYAMLToXML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("yaml_to_xml", payloadCtx(EncodeYAML(obj)))
		if !ok {
			break
		}
		answer := EncodeXML(obj, rootTag)
		if !b.checks.XML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "yaml_to_xml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyCSVToXML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("csv_to_xml", payloadCtx(EncodeCSV(obj)))
		if !ok {
			break
		}
		answer := EncodeXML(obj, rootTag)
		if !b.checks.XML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "csv_to_xml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyTextToXML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		items := itemMappings(obj)
		attrs := itemKeys(firstItem(obj), maxTextAttrs)
		var lines []string
		for j, it := range items {
			if j >= 2 {
				break
			}
			lines = append(lines, attrText(it, attrs))
		}
		prompt, ok := b.render("text_to_xml", extractCtx(strings.Join(lines, "\n"), attrs))
		if !ok {
			break
		}
		answer := EncodeXML(obj, rootTag)
		if !b.checks.XML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "text_to_xml", TaskExtract, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyXMLToYAML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("xml_to_yaml", payloadCtx(EncodeXML(obj, rootTag)))
		if !ok {
			break
		}
		answer := EncodeYAML(obj)
		if !b.checks.YAML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "xml_to_yaml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyJSONToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("json_to_toml", payloadCtx(EncodeJSONSized(obj, maxPromptPayload)))
		if !ok {
			break
		}
		answer := EncodeTOML(obj)
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "json_to_toml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyYAMLToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		prompt, ok := b.render("yaml_to_toml", payloadCtx(EncodeYAML(obj)))
		if !ok {
			break
		}
		answer := EncodeTOML(obj)
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "yaml_to_toml", TaskTransform, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) dummyTextToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.DummyObject()
		first := firstItem(obj)
		attrs := itemKeys(first, maxTextAttrs)
		prompt, ok := b.render("text_to_toml", extractCtx(attrText(first, attrs), attrs))
		if !ok {
			break
		}
		answer := EncodeTOML(obj)
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "text_to_toml", TaskExtract, seedDummy, prompt, answer))
	}
	return out
}

func (b *Builder) hardJSONToXML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		prompt, ok := b.render("json_to_xml_strict", payloadCtx(EncodeJSON(obj)))
		if !ok {
			break
		}
		answer := EncodeXML(obj, rootTag)
		if !b.checks.XML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "json_to_xml", TaskTransform, seedHard, prompt, answer))
	}
	return out
}

func (b *Builder) hardXMLToYAML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		prompt, ok := b.render("xml_to_yaml_strict", payloadCtx(EncodeXML(obj, rootTag)))
		if !ok {
			break
		}
		answer := EncodeYAML(obj)
		if !b.checks.YAML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryXML, "xml_to_yaml", TaskTransform, seedHard, prompt, answer))
	}
	return out
}

func (b *Builder) hardTextToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		first := firstItem(obj)
		attrs := g.PickAttrs(first, maxPickedAttrs)
		prompt, ok := b.render("text_to_toml_strict", extractCtx(attrText(first, attrs), attrs))
		if !ok {
			break
		}
		answer := EncodeTOML(wrapItems(Project(first, attrs)))
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "text_to_toml", TaskExtract, seedHard, prompt, answer))
	}
	return out
}

func (b *Builder) hardTextToYAML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		first := firstItem(obj)
		attrs := g.PickAttrs(first, maxPickedAttrs)
		prompt, ok := b.render("text_to_yaml", extractCtx(attrText(first, attrs), attrs))
		if !ok {
			break
		}
		answer := EncodeYAML(wrapItems(Project(first, attrs)))
		if !b.checks.YAML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryYAML, "text_to_yaml", TaskExtract, seedHard, prompt, answer))
	}
	return out
}

func (b *Builder) augJSONToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		prompt, ok := b.render("json_to_toml_native", payloadCtx(EncodeJSON(obj)))
		if !ok {
			break
		}
		answer := EncodeTOML(obj)
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "json_to_toml", TaskTransform, seedAug, prompt, answer))
	}
	return out
}

func (b *Builder) augYAMLToTOML(g *Generator, n int) []Sample {
	var out []Sample
	for i := 0; i < n; i++ {
		obj := g.HardObject()
		prompt, ok := b.render("yaml_to_toml_native", payloadCtx(EncodeYAML(obj)))
		if !ok {
			break
		}
		answer := EncodeTOML(obj)
		if !b.checks.TOML(answer) {
			continue
		}
		out = append(out, NewSample(CategoryTOML, "yaml_to_toml", TaskTransform, seedAug, prompt, answer))
	}
	return out
}

// itemMappings returns the mapping elements of the document's items
// sequence, skipping anything else.
func itemMappings(obj *Mapping) []*Mapping {
	v, ok := obj.Get(itemsKey)
	if !ok {
		return nil
	}
	seq, ok := v.(*Sequence)
	if !ok {
		return nil
	}
	var items []*Mapping
	for _, el := range seq.Elems {
		if m, isMap := el.(*Mapping); isMap {
			items = append(items, m)
		}
	}
	return items
}

// firstItem returns the first item mapping, or an empty mapping so callers
// can proceed and produce a (validated, possibly trivial) sample.
func firstItem(obj *Mapping) *Mapping {
	if items := itemMappings(obj); len(items) > 0 {
		return items[0]
	}
	return NewMapping()
}

// itemKeys returns up to limit top-level keys, with a fixed fallback when
// the item is empty.
func itemKeys(m *Mapping, limit int) []string {
	keys := m.Keys()
	if len(keys) == 0 {
		return []string{"name", "value"}
	}
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// attrText renders "path: value | path: value" source text for an
// extraction prompt. Container values appear as compact JSON, scalars in
// their plain text form.
func attrText(m *Mapping, attrs []string) string {
	pairs := make([]string, 0, len(attrs))
	for _, a := range attrs {
		v := Resolve(m, a)
		pairs = append(pairs, a+": "+cellText(v))
	}
	return strings.Join(pairs, " | ")
}

// wrapItems puts a projected payload back under a one-element items
// array, matching the document shape of the conversion tasks.
func wrapItems(payload *Mapping) *Mapping {
	obj := NewMapping()
	obj.Set(itemsKey, NewSequence(payload))
	return obj
}
