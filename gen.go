package structgen

import (
	"math"
	"math/rand"
	"strings"
)

// words is the vocabulary the generators draw keys and string values from.
var words = []string{
	"alpha", "beta", "gamma", "delta", "omega", "zephyr", "lumen",
	"nova", "aurora", "ember", "terra", "eon", "atlas", "velox",
}

// Generator produces random document trees with the mixed shapes the
// sample builders need: flat items for the plain pack, and deeply shaped
// items (sub-objects, scalar arrays, arrays-of-tables, sparse fields) for
// the hard pack. All randomness flows from the injected source, so a
// Generator is deterministic per seed and not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) word() string { return words[g.rng.Intn(len(words))] }

// key mixes snake_case and camelCase key spellings.
func (g *Generator) key() string {
	a, b := g.word(), g.word()
	if g.rng.Float64() < 0.5 {
		return a + "_" + b
	}
	return a + title(b)
}

// scalar draws from the hard-pack distribution: ints, two-decimal floats,
// booleans, occasionally-empty title-cased strings, and bare words.
func (g *Generator) scalar() Scalar {
	switch r := g.rng.Float64(); {
	case r < 0.20:
		return Int(int64(g.rng.Intn(10000)))
	case r < 0.40:
		return Float(round2(g.rng.Float64()*9999 + g.rng.Float64()))
	case r < 0.60:
		return Bool(g.rng.Intn(2) == 1)
	case r < 0.80:
		if g.rng.Float64() < 0.3 {
			return String("")
		}
		return String(title(g.word()))
	default:
		return String(g.word())
	}
}

// simpleScalar draws from the plain-pack distribution. Booleans come back
// as their text form so flat items stay XML-text friendly.
func (g *Generator) simpleScalar() Scalar {
	switch r := g.rng.Float64(); {
	case r < 0.25:
		return String(title(g.word()))
	case r < 0.50:
		return Int(int64(g.rng.Intn(10000)))
	case r < 0.75:
		return Bool(g.rng.Intn(2) == 1).asText()
	default:
		return String(g.word())
	}
}

// FlatItem returns a mapping of nKeys random scalar fields.
func (g *Generator) FlatItem(nKeys int) *Mapping {
	if nKeys < 2 {
		nKeys = 2
	}
	m := NewMapping()
	for m.Len() < nKeys {
		m.Set(g.key(), g.simpleScalar())
	}
	return m
}

// DummyObject returns {"items": [...]} with 2-5 flat items of 3-6 keys.
func (g *Generator) DummyObject() *Mapping {
	n := 2 + g.rng.Intn(4)
	seq := NewSequence()
	for i := 0; i < n; i++ {
		seq.Elems = append(seq.Elems, g.FlatItem(3+g.rng.Intn(4)))
	}
	obj := NewMapping()
	obj.Set(itemsKey, seq)
	return obj
}

// HardItem returns a mapping with 5-9 random scalar fields plus the
// structured sub-shapes that exercise nested serialization: a dimensions
// sub-object, a flags sub-object, a scalar tag array, and a meta
// array-of-tables. Each structured field appears with its own probability,
// so items in one document differ in shape.
func (g *Generator) HardItem() *Mapping {
	m := NewMapping()
	n := 5 + g.rng.Intn(5)
	for m.Len() < n {
		m.Set(g.key(), g.scalar())
	}
	if g.rng.Float64() < 0.9 {
		dims := NewMapping()
		dims.Set("height_cm", Float(round1(1+g.rng.Float64()*299)))
		dims.Set("width_cm", Float(round1(1+g.rng.Float64()*299)))
		dims.Set("depth_cm", Float(round1(0.5+g.rng.Float64()*99.5)))
		m.Set("dimensions", dims)
	}
	if g.rng.Float64() < 0.8 {
		flags := NewMapping()
		flags.Set("featured", Bool(g.rng.Intn(2) == 1))
		flags.Set("archived", Bool(g.rng.Intn(2) == 1))
		m.Set("flags", flags)
	}
	if g.rng.Float64() < 0.8 {
		tags := NewSequence()
		for i := 0; i < 1+g.rng.Intn(3); i++ {
			tags.Elems = append(tags.Elems, String(g.word()))
		}
		m.Set("tags", tags)
	}
	if g.rng.Float64() < 0.7 {
		origin := NewMapping()
		origin.Set("key", String("origin"))
		origin.Set("value", String(title(g.word())))
		year := NewMapping()
		year.Set("key", String("year"))
		year.Set("value", Int(int64(1900+g.rng.Intn(126))))
		m.Set("meta", NewSequence(origin, year))
	}
	return m
}

// HardObject returns {"items": [...]} with 3-6 hard items, occasionally
// augmented with a components array-of-tables and a sparse notes field.
func (g *Generator) HardObject() *Mapping {
	n := 3 + g.rng.Intn(4)
	seq := NewSequence()
	for i := 0; i < n; i++ {
		it := g.HardItem()
		if g.rng.Float64() < 0.5 {
			comps := NewSequence()
			for j := 0; j < 2; j++ {
				c := NewMapping()
				c.Set("name", String(title(g.word())))
				c.Set("qty", Int(int64(1+g.rng.Intn(5))))
				comps.Elems = append(comps.Elems, c)
			}
			it.Set("components", comps)
		}
		if g.rng.Float64() < 0.3 {
			if g.rng.Float64() < 0.5 {
				it.Set("notes", String(""))
			} else {
				it.Set("notes", String(title(g.word())))
			}
		}
		seq.Elems = append(seq.Elems, it)
	}
	obj := NewMapping()
	obj.Set(itemsKey, seq)
	return obj
}

// PickAttrs selects up to k leaf paths from m for an extraction task,
// preferring a mix of nested paths (containing '.' or '[') and top-level
// scalar keys. The selection is randomized but deterministic per seed.
func (g *Generator) PickAttrs(m *Mapping, k int) []string {
	cand := LeafPaths(m, 2)
	g.rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })

	var nested, flat []string
	for _, p := range cand {
		if strings.ContainsAny(p, ".[") {
			nested = append(nested, p)
		} else {
			flat = append(flat, p)
		}
	}
	out := append([]string{}, nested[:min(len(nested), k/2)]...)
	out = append(out, flat[:min(len(flat), k-len(out))]...)
	if len(out) == 0 {
		out = cand[:min(len(cand), k)]
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// asText converts a scalar to its textual form.
func (s Scalar) asText() Scalar { return String(s.Text()) }

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
func round2(f float64) float64 { return math.Round(f*100) / 100 }
