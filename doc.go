// Package structgen generates supervised fine-tuning samples that teach a
// language model to convert between structured text formats (JSON, YAML,
// XML, TOML) and to extract requested attribute paths from free text into
// one of those formats.
//
// Assistant answers are produced by deterministic serialization of a
// randomly generated document tree, then gated by strict parsers, so
// every emitted sample is syntactically valid by construction plus
// verification.
//
// # Document Model
//
// Everything operates on a small value algebra: Scalar, ordered Mapping,
// and Sequence, closed under the Node interface. Serializers preserve
// mapping insertion order except where a format benefits from sorted keys
// (the TOML encoder sorts within each emission bucket for stable diffs).
//
//	obj := structgen.NewMapping()
//	obj.Set("name", structgen.String("Atlas"))
//	xml := structgen.EncodeXML(obj, "root")
//	toml := structgen.EncodeTOML(obj)
//
// # Attribute Paths
//
// Extraction tasks address leaves with dot/bracket paths such as
// "meta[0].value". TokenizePath, Resolve, LeafPaths and Project cover
// tokenizing, lookup, leaf enumeration and rebuilding a minimal document
// holding only the requested paths. Lookup misses resolve to the
// empty-string scalar; nothing in the path layer panics or errors.
//
// # Sample Packs
//
// Builder assembles three packs: a plain pack over flat items, a hard
// pack with deep nesting and path extraction, and a TOML-augmented pack.
// Streams run concurrently through a Runner, each with its own seeded
// generator, so packs are reproducible per seed.
//
//	b := structgen.NewBuilder()
//	samples, err := b.HardPack(ctx, 42, structgen.DefaultHardCounts())
//	if err != nil {
//	    return err
//	}
//	if err := structgen.WriteJSONL("outputs/pack.jsonl", samples); err != nil {
//	    return err
//	}
//	report, _ := structgen.Smoke("outputs/pack.jsonl", structgen.DefaultValidators())
//
// Prompts are rendered from embedded Twig templates via the
// StickPromptProvider; supply your own templates with WithFS or
// WithTemplates. BuildFocusPack resamples existing packs into a
// TOML-focused mix.
package structgen
