package structgen

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tyler-sommer/stick"
)

//go:embed templates/*.twig
var templateFS embed.FS

// PromptProvider renders the user-turn instruction for a task subcategory.
type PromptProvider interface {
	Prompt(task string, ctx map[string]stick.Value) (string, error)
}

// StickPromptProvider renders prompts from Twig templates. It is
// fs-agnostic: templates can come from the embedded defaults, any fs.FS,
// or an in-memory map.
type StickPromptProvider struct {
	env       *stick.Env
	templates map[string]string
	vars      map[string]stick.Value
}

// PromptOption configures a StickPromptProvider.
type PromptOption func(*StickPromptProvider) error

// WithFS loads every *.twig file found under dir in the supplied FS. The
// file basename without extension becomes the task name.
func WithFS(fsys fs.FS, dir string) PromptOption {
	return func(p *StickPromptProvider) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			task := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[task] = string(content)
			return nil
		})
	}
}

// WithTemplates lets you inject an in-memory map.
func WithTemplates(m map[string]string) PromptOption {
	return func(p *StickPromptProvider) error {
		for k, v := range m {
			p.templates[k] = v
		}
		return nil
	}
}

// WithVar adds a variable that will be available in all templates.
func WithVar(key string, value stick.Value) PromptOption {
	return func(p *StickPromptProvider) error {
		p.vars[key] = value
		return nil
	}
}

// NewStickPromptProvider builds a provider from any combination of options.
func NewStickPromptProvider(opts ...PromptOption) (*StickPromptProvider, error) {
	p := &StickPromptProvider{
		env:       stick.New(nil),
		templates: make(map[string]string),
		vars:      make(map[string]stick.Value),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var defaultPrompts = sync.OnceValue(func() *StickPromptProvider {
	p, err := NewStickPromptProvider(WithFS(templateFS, "templates"))
	if err != nil {
		// The embedded set is compiled in; failing to load it is a build defect.
		panic(fmt.Sprintf("structgen: load embedded prompts: %v", err))
	}
	return p
})

// DefaultPrompts returns the provider backed by the embedded template set,
// one template per task subcategory.
func DefaultPrompts() *StickPromptProvider { return defaultPrompts() }

// AddTemplate updates or inserts one template.
func (p *StickPromptProvider) AddTemplate(task, tpl string) { p.templates[task] = tpl }

// Prompt renders the template registered for task. The context is merged
// over the provider-wide variables; the conventional keys are "payload"
// (the source document text) and "attrs" (the comma-joined attribute list
// for extraction tasks).
func (p *StickPromptProvider) Prompt(task string, ctx map[string]stick.Value) (string, error) {
	tpl, ok := p.templates[task]
	if !ok {
		return "", fmt.Errorf("template %q not found", task)
	}

	templateCtx := make(map[string]stick.Value, len(p.vars)+len(ctx)+1)
	templateCtx["task"] = task
	for k, v := range p.vars {
		templateCtx[k] = v
	}
	for k, v := range ctx {
		templateCtx[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", task, err)
	}
	return out.String(), nil
}

// SimplePromptProvider serves fixed prompt strings keyed by task, mainly
// for tests.
type SimplePromptProvider map[string]string

func (s SimplePromptProvider) Prompt(task string, _ map[string]stick.Value) (string, error) {
	if tpl, ok := s[task]; ok {
		return tpl, nil
	}
	return "", fmt.Errorf("prompt %q not found", task)
}
