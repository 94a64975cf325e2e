package structgen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// itemTag is the constant element name used for sequence members. Sequences
// have no natural key, so array membership is recognized on decode by the
// repeated tag rather than by name.
const itemTag = "item"

// fallbackTag replaces any key that cannot serve as an XML element name.
const fallbackTag = "field"

// EncodeXML renders n as an XML element tree rooted at rootTag. Mappings
// become child elements in insertion order, sequences become repeated
// <item> siblings, and scalars become text content. Scalar typing is not
// preserved across the text boundary; consumers read leaf text as strings.
// If the tree cannot be serialized the encoder degrades to an empty root
// element instead of failing the caller.
func EncodeXML(n Node, rootTag string) string {
	doc := etree.NewDocument()
	root := doc.CreateElement(rootTag)
	buildElement(root, n)
	s, err := doc.WriteToString()
	if err != nil {
		return "<" + rootTag + "/>"
	}
	return s
}

func buildElement(parent *etree.Element, n Node) {
	switch v := n.(type) {
	case *Mapping:
		for _, e := range v.Entries() {
			child := parent.CreateElement(sanitizeTag(e.Key))
			buildElement(child, e.Value)
		}
	case *Sequence:
		for _, el := range v.Elems {
			child := parent.CreateElement(itemTag)
			buildElement(child, el)
		}
	case Scalar:
		if txt := v.Text(); txt != "" {
			parent.SetText(txt)
		}
	}
}

// sanitizeTag returns key trimmed of surrounding space when it is a legal
// element name, and the constant "field" otherwise. A legal name is
// non-empty, starts with a letter or underscore, and does not start with
// the reserved prefix "xml" in any letter case.
func sanitizeTag(key string) string {
	k := strings.TrimSpace(key)
	if k == "" {
		return fallbackTag
	}
	r, _ := utf8.DecodeRuneInString(k)
	if !unicode.IsLetter(r) && r != '_' {
		return fallbackTag
	}
	if len(k) >= 3 && strings.EqualFold(k[:3], "xml") {
		return fallbackTag
	}
	return k
}
