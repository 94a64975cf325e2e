package structgen

import (
	"strings"
	"sync"

	"github.com/beevik/etree"
	json "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Validators bundles the strict parsers used to gate generated answers.
// Every check returns false on malformed input, never an error: encoder
// output is untrusted by design and failing samples are simply discarded.
// The methods are safe for concurrent use.
type Validators struct {
	xmlSettings etree.ReadSettings
}

// NewValidators constructs a validator bundle with strict XML parsing.
func NewValidators() *Validators {
	return &Validators{xmlSettings: etree.ReadSettings{Permissive: false}}
}

var defaultValidators = sync.OnceValue(NewValidators)

// DefaultValidators returns the process-wide validator bundle. It is
// initialized at most once; concurrent first callers share one instance.
func DefaultValidators() *Validators { return defaultValidators() }

// XML reports whether s parses as a well-formed XML document with a
// single root element.
func (v *Validators) XML(s string) bool {
	doc := etree.NewDocument()
	doc.ReadSettings = v.xmlSettings
	if err := doc.ReadFromString(s); err != nil {
		return false
	}
	return doc.Root() != nil
}

// YAML reports whether s parses as YAML.
func (v *Validators) YAML(s string) bool {
	var out any
	return yaml.Unmarshal([]byte(s), &out) == nil
}

// TOML reports whether s parses as a TOML document.
func (v *Validators) TOML(s string) bool {
	var out map[string]any
	return toml.Unmarshal([]byte(s), &out) == nil
}

// JSON reports whether s is valid JSON.
func (v *Validators) JSON(s string) bool {
	return json.Valid([]byte(s))
}

// Answer validates an assistant answer for the given subcategory, picking
// the parser by the target format encoded in the subcategory name.
// Subcategories with no strict target pass unconditionally.
func (v *Validators) Answer(subcategory, answer string) bool {
	switch {
	case strings.HasSuffix(subcategory, "_to_xml"):
		return v.XML(answer)
	case strings.HasSuffix(subcategory, "_to_yaml"):
		return v.YAML(answer)
	case strings.HasSuffix(subcategory, "_to_toml"):
		return v.TOML(answer)
	}
	return true
}
