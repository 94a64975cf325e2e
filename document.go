package structgen

import (
	"strconv"
	"strings"
)

// Node is the generic value tree every serializer and path operation works
// on: a scalar leaf, an ordered key/value mapping, or a sequence. The three
// implementations form a closed set; consumers branch with a type switch.
type Node interface {
	isNode()
}

// ScalarKind discriminates the payload held by a Scalar.
type ScalarKind int

const (
	KindNull ScalarKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Scalar is a leaf value. The zero value is the null scalar.
type Scalar struct {
	kind ScalarKind
	str  string
	num  int64
	flt  float64
	flag bool
}

func (Scalar) isNode() {}

// String returns a string scalar.
func String(s string) Scalar { return Scalar{kind: KindString, str: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{kind: KindInt, num: i} }

// Float returns a floating-point scalar.
func Float(f float64) Scalar { return Scalar{kind: KindFloat, flt: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{kind: KindBool, flag: b} }

// Null returns the null scalar.
func Null() Scalar { return Scalar{kind: KindNull} }

// Empty returns the empty-string scalar. Path resolution hands it back for
// anything it cannot reach, and sequence projection uses it as padding.
func Empty() Scalar { return Scalar{kind: KindString} }

// Kind reports which payload the scalar carries.
func (s Scalar) Kind() ScalarKind { return s.kind }

// IsEmpty reports whether s is the empty-string scalar.
func (s Scalar) IsEmpty() bool { return s.kind == KindString && s.str == "" }

// StringValue returns the string payload ("" for non-string scalars).
func (s Scalar) StringValue() string { return s.str }

// IntValue returns the integer payload (0 for non-integer scalars).
func (s Scalar) IntValue() int64 { return s.num }

// FloatValue returns the float payload (0 for non-float scalars).
func (s Scalar) FloatValue() float64 { return s.flt }

// BoolValue returns the boolean payload (false for non-boolean scalars).
func (s Scalar) BoolValue() bool { return s.flag }

// Text renders the scalar the way it appears as XML text content or inside
// a generated text snippet: booleans as True/False, null as the empty
// string, floats in shortest decimal form with a forced decimal point.
func (s Scalar) Text() string {
	switch s.kind {
	case KindNull:
		return ""
	case KindBool:
		if s.flag {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(s.num, 10)
	case KindFloat:
		return formatFloat(s.flt)
	default:
		return s.str
	}
}

// formatFloat renders the shortest decimal form that round-trips, keeping a
// decimal point so the value stays float-typed in formats that care.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an ordered collection of unique string keys. Insertion order
// is significant: serializers that promise to preserve source ordering
// iterate Entries as inserted.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

func (*Mapping) isNode() {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Set inserts or replaces the value under key. A replaced key keeps its
// original position.
func (m *Mapping) Set(key string, v Node) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value under key.
func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.entries) }

// Entries returns the pairs in insertion order. The slice is shared; treat
// it as read-only.
func (m *Mapping) Entries() []Entry { return m.entries }

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Sequence is an ordered list of nodes, homogeneous or not.
type Sequence struct {
	Elems []Node
}

func (*Sequence) isNode() {}

// NewSequence returns a sequence over the given elements.
func NewSequence(elems ...Node) *Sequence {
	return &Sequence{Elems: elems}
}

// isMappingSeq reports whether s is non-empty and every element is a
// mapping. This is the shape that turns into a TOML array-of-tables.
func isMappingSeq(s *Sequence) bool {
	if len(s.Elems) == 0 {
		return false
	}
	for _, el := range s.Elems {
		if _, ok := el.(*Mapping); !ok {
			return false
		}
	}
	return true
}
