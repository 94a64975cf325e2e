package structgen

import (
	"io"
	"log/slog"
)

// NewBuilderForTesting creates a Builder with the embedded prompts, the
// default validators and a discarded log, so tests stay quiet.
func NewBuilderForTesting() *Builder {
	return NewBuilder(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}
