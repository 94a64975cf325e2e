package structgen

import (
	"sort"
	"strconv"
	"strings"
)

// Caps on array emission. Oversized scalar arrays are truncated and
// oversized arrays-of-tables stop emitting blocks; both keep the output
// readable for training purposes without changing its shape.
const (
	maxInlineArrayLen = 20
	maxTableArrayLen  = 10
	itemsKey          = "items"
	wrappedValueKey   = "value"
)

// EncodeTOML renders n as TOML text using scalar assignments, inline
// scalar arrays, dotted table headers and arrays-of-tables. Inline tables
// ({...}) are never produced. A top-level mapping whose "items" entry is a
// sequence of mappings is emitted as repeated [[items]] blocks, matching
// the document shape the generators produce; any other mapping is emitted
// as a single table, and a non-mapping root is wrapped under "value".
func EncodeTOML(n Node) string {
	var lines []string
	m, ok := n.(*Mapping)
	if !ok {
		m = NewMapping()
		m.Set(wrappedValueKey, n)
	}
	if items, found := m.Get(itemsKey); found {
		if seq, isSeq := items.(*Sequence); isSeq && isMappingSeq(seq) {
			for _, el := range seq.Elems {
				lines = append(lines, "", "[["+itemsKey+"]]")
				emitTable(&lines, []string{itemsKey}, el.(*Mapping))
			}
			return finishTOML(lines)
		}
	}
	emitTable(&lines, nil, m)
	return finishTOML(lines)
}

// emitTable writes one table body. Order matters: TOML requires every
// inline key of a table to appear before the first header that extends the
// table's path, so scalars and scalar arrays are flushed before any [a.b]
// or [[a.b]] header. Within each bucket keys are sorted so repeated
// encodes of the same logical content diff cleanly.
func emitTable(lines *[]string, prefix []string, m *Mapping) {
	var scalars, arrays, tables, tableArrays []Entry
	for _, e := range m.Entries() {
		switch v := e.Value.(type) {
		case *Mapping:
			tables = append(tables, e)
		case *Sequence:
			if isMappingSeq(v) {
				tableArrays = append(tableArrays, e)
			} else {
				arrays = append(arrays, e)
			}
		case Scalar:
			scalars = append(scalars, e)
		}
	}
	byKey := func(es []Entry) {
		sort.Slice(es, func(i, j int) bool { return es[i].Key < es[j].Key })
	}
	byKey(scalars)
	byKey(arrays)
	byKey(tables)
	byKey(tableArrays)

	for _, e := range scalars {
		*lines = append(*lines, e.Key+" = "+tomlLiteral(e.Value.(Scalar)))
	}
	for _, e := range arrays {
		seq := e.Value.(*Sequence)
		var vals []string
		for i, el := range seq.Elems {
			if i >= maxInlineArrayLen {
				break
			}
			sc, isScalar := el.(Scalar)
			if !isScalar {
				continue // nested structure inside a scalar array: dropped
			}
			vals = append(vals, tomlLiteral(sc))
		}
		*lines = append(*lines, e.Key+" = ["+strings.Join(vals, ", ")+"]")
	}
	for _, e := range tables {
		sect := append(append([]string{}, prefix...), e.Key)
		*lines = append(*lines, "", "["+strings.Join(sect, ".")+"]")
		emitTable(lines, sect, e.Value.(*Mapping))
	}
	for _, e := range tableArrays {
		sect := append(append([]string{}, prefix...), e.Key)
		header := "[[" + strings.Join(sect, ".") + "]]"
		seq := e.Value.(*Sequence)
		for i, el := range seq.Elems {
			if i >= maxTableArrayLen {
				break
			}
			*lines = append(*lines, "", header)
			emitTable(lines, sect, el.(*Mapping))
		}
	}
}

// tomlLiteral renders a scalar in its native TOML form: bare booleans and
// numerals, quoted-and-escaped strings. Null has no TOML spelling and is
// emitted as the empty string.
func tomlLiteral(s Scalar) string {
	switch s.Kind() {
	case KindBool:
		if s.BoolValue() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(s.IntValue(), 10)
	case KindFloat:
		return formatFloat(s.FloatValue())
	default:
		return quoteTOML(s.StringValue())
	}
}

// quoteTOML produces a basic string: backslash and double quote escaped,
// embedded line breaks flattened to spaces so the value stays on one line.
func quoteTOML(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n', '\r':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func finishTOML(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
