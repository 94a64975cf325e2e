package structgen

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// EncodeJSON renders n as compact JSON preserving mapping insertion order.
func EncodeJSON(n Node) string {
	b, err := json.Marshal(n)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// EncodeJSONSized renders n as JSON truncated to at most maxChars
// characters. The result is meant for prompt payloads, where a hard size
// cap matters more than parseability of the tail.
func EncodeJSONSized(n Node, maxChars int) string {
	s := EncodeJSON(n)
	if maxChars >= 0 && len(s) > maxChars {
		r := []rune(s)
		if len(r) > maxChars {
			return string(r[:maxChars])
		}
	}
	return s
}

// MarshalJSON writes the mapping's entries in insertion order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes the sequence as a JSON array.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, el := range s.Elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON writes the scalar in its native JSON form.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return []byte(strconv.FormatBool(s.flag)), nil
	case KindInt:
		return []byte(strconv.FormatInt(s.num, 10)), nil
	case KindFloat:
		return json.Marshal(s.flt)
	default:
		return json.Marshal(s.str)
	}
}

// EncodeCSV flattens the "items" table of a document into CSV: one column
// per key seen across the items (in first-seen order), one row per item.
// Container-valued cells are rendered as compact JSON; missing cells are
// empty. A document without item mappings yields a lone header row.
func EncodeCSV(m *Mapping) string {
	var items []*Mapping
	if v, ok := m.Get(itemsKey); ok {
		if seq, isSeq := v.(*Sequence); isSeq {
			for _, el := range seq.Elems {
				if im, isMap := el.(*Mapping); isMap {
					items = append(items, im)
				}
			}
		}
	}

	var cols []string
	seen := make(map[string]struct{})
	for _, it := range items {
		for _, k := range it.Keys() {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	_ = w.Write(cols)
	for _, it := range items {
		row := make([]string, len(cols))
		for i, k := range cols {
			v, ok := it.Get(k)
			if !ok {
				continue
			}
			row[i] = cellText(v)
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}

func cellText(n Node) string {
	if sc, ok := n.(Scalar); ok {
		return sc.Text()
	}
	return EncodeJSON(n)
}
