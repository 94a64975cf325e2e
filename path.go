package structgen

import (
	"strconv"
	"strings"
)

// Segment is one step of a dot/bracket path: either a mapping key or a
// sequence index.
type Segment struct {
	Key     string
	Index   int
	isIndex bool
}

// KeySegment returns a mapping-lookup segment.
func KeySegment(key string) Segment { return Segment{Key: key} }

// IndexSegment returns a sequence-lookup segment.
func IndexSegment(i int) Segment { return Segment{Index: i, isIndex: true} }

// IsIndex reports whether the segment addresses a sequence element.
func (s Segment) IsIndex() bool { return s.isIndex }

// TokenizePath splits a path expression such as "a.b[1].c" into segments:
// dots separate keys, bracketed integers become index segments. Bracketed
// content that is not an integer stays a key segment. An unterminated
// bracket is tolerated: the remainder of the string becomes one literal key
// rather than an error.
func TokenizePath(path string) []Segment {
	var segs []Segment
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, KeySegment(buf.String()))
			buf.Reset()
		}
	}
	for i := 0; i < len(path); {
		switch path[i] {
		case '.':
			flush()
			i++
		case '[':
			flush()
			j := strings.IndexByte(path[i+1:], ']')
			if j < 0 {
				segs = append(segs, KeySegment(path[i:]))
				return segs
			}
			raw := path[i+1 : i+1+j]
			if n, err := strconv.Atoi(raw); err == nil {
				segs = append(segs, IndexSegment(n))
			} else {
				segs = append(segs, KeySegment(raw))
			}
			i += j + 2
		default:
			buf.WriteByte(path[i])
			i++
		}
	}
	flush()
	return segs
}

// Resolve walks path against n and returns the addressed node. Any miss --
// key absent, index out of range, or a segment applied to the wrong node
// shape -- short-circuits to the empty-string scalar. Resolve never panics
// and never mutates n.
func Resolve(n Node, path string) Node {
	cur := n
	for _, seg := range TokenizePath(path) {
		if seg.IsIndex() {
			seq, ok := cur.(*Sequence)
			if !ok || seg.Index < 0 || seg.Index >= len(seq.Elems) {
				return Empty()
			}
			cur = seq.Elems[seg.Index]
			continue
		}
		m, ok := cur.(*Mapping)
		if !ok {
			return Empty()
		}
		v, ok := m.Get(seg.Key)
		if !ok {
			return Empty()
		}
		cur = v
	}
	return cur
}

// LeafPaths enumerates one path string per scalar leaf reachable within
// maxDepth mapping/sequence hops, depth-first in document order. Only the
// first two elements of each sequence are descended into, which keeps the
// set representative instead of exhaustive. Duplicates are dropped, first
// occurrence wins.
func LeafPaths(n Node, maxDepth int) []string {
	var paths []string
	var walk func(prefix []string, x Node, depth int)
	walk = func(prefix []string, x Node, depth int) {
		if depth > maxDepth {
			return
		}
		switch v := x.(type) {
		case *Mapping:
			for _, e := range v.Entries() {
				next := append(append([]string{}, prefix...), e.Key)
				walk(next, e.Value, depth+1)
			}
		case *Sequence:
			for i, el := range v.Elems {
				if i >= 2 {
					break
				}
				next := append(append([]string{}, prefix...), "["+strconv.Itoa(i)+"]")
				walk(next, el, depth+1)
			}
		case Scalar:
			paths = append(paths, joinPathTokens(prefix))
		}
	}
	walk(nil, n, 0)

	seen := make(map[string]struct{}, len(paths))
	uniq := paths[:0]
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	return uniq
}

// joinPathTokens glues bracket tokens onto the preceding key so that
// ["a", "[0]", "b"] renders as "a[0].b".
func joinPathTokens(tokens []string) string {
	var comp []string
	for _, t := range tokens {
		if strings.HasPrefix(t, "[") && len(comp) > 0 {
			comp[len(comp)-1] += t
			continue
		}
		comp = append(comp, t)
	}
	return strings.Join(comp, ".")
}

// Project builds a fresh mapping holding only the sub-trees addressed by
// paths, with the original nesting reconstructed: key segments materialize
// intermediate mappings, index segments materialize sequences padded with
// empty-string placeholders. A path that collides with a structurally
// incompatible node installed by an earlier path is skipped; the rest of
// the projection is unaffected.
func Project(n Node, paths []string) *Mapping {
	out := NewMapping()
	for _, p := range paths {
		writePath(out, p, Resolve(n, p))
	}
	return out
}

func writePath(root *Mapping, path string, value Node) {
	segs := TokenizePath(path)
	if len(segs) == 0 {
		return
	}
	var cur Node = root
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg.IsIndex() {
			seq, ok := cur.(*Sequence)
			if !ok || seg.Index < 0 {
				return
			}
			for len(seq.Elems) <= seg.Index {
				seq.Elems = append(seq.Elems, Empty())
			}
			if last {
				seq.Elems[seg.Index] = value
				return
			}
			child := ensureSlot(seq.Elems[seg.Index], segs[i+1].IsIndex())
			if child == nil {
				return
			}
			seq.Elems[seg.Index] = child
			cur = child
			continue
		}
		m, ok := cur.(*Mapping)
		if !ok {
			return
		}
		if last {
			m.Set(seg.Key, value)
			return
		}
		existing, found := m.Get(seg.Key)
		if !found {
			existing = nil
		}
		child := ensureSlot(existing, segs[i+1].IsIndex())
		if child == nil {
			return
		}
		m.Set(seg.Key, child)
		cur = child
	}
}

// ensureSlot returns a container suitable for the next segment: a sequence
// when wantSeq, a mapping otherwise. A missing node or an empty-string
// placeholder is replaced by a new container; a compatible container is
// reused; anything else reports a structural mismatch with nil.
func ensureSlot(existing Node, wantSeq bool) Node {
	switch v := existing.(type) {
	case nil:
	case Scalar:
		if !v.IsEmpty() {
			return nil
		}
	case *Sequence:
		if wantSeq {
			return v
		}
		return nil
	case *Mapping:
		if !wantSeq {
			return v
		}
		return nil
	}
	if wantSeq {
		return NewSequence()
	}
	return NewMapping()
}
