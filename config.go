package structgen

import "log/slog"

// BuilderOption represents options for sample building.
type BuilderOption func(*Builder)

// WithPrompts sets the prompt provider.
func WithPrompts(p PromptProvider) BuilderOption {
	return func(b *Builder) {
		b.prompts = p
	}
}

// WithValidators sets the strict-parser bundle used to gate answers.
func WithValidators(v *Validators) BuilderOption {
	return func(b *Builder) {
		b.checks = v
	}
}

// WithLogger sets the builder logger.
func WithLogger(log *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}
