package structgen

import (
	"crypto/sha1"
	"encoding/hex"
)

// Task kinds carried on every sample.
const (
	TaskTransform = "transform"
	TaskExtract   = "extract"
)

// Categories group subcategories by target format family.
const (
	CategoryXML  = "C_XML"
	CategoryTOML = "C_TOML"
	CategoryYAML = "C_YAML"
)

// Message is one chat turn of a sample.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Sample is one supervised example: a user prompt and the assistant
// answer, tagged with enough metadata to bucket, mix and audit packs.
// The ID is a content hash, so identical prompt/answer pairs dedupe
// naturally across runs.
type Sample struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Task        string    `json:"task"`
	Seed        string    `json:"seed"`
	Messages    []Message `json:"messages"`
}

// NewSample assembles a sample with its derived content-hash ID.
func NewSample(category, subcategory, task, seedTag, prompt, answer string) Sample {
	return Sample{
		ID:          sampleID(prompt, answer),
		Category:    category,
		Subcategory: subcategory,
		Task:        task,
		Seed:        seedTag,
		Messages: []Message{
			{Role: "user", Content: prompt},
			{Role: "assistant", Content: answer},
		},
	}
}

// Answer returns the assistant turn, or "" when the sample is malformed.
func (s Sample) Answer() string {
	if len(s.Messages) == 0 || s.Messages[len(s.Messages)-1].Role != "assistant" {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Content
}

// sampleID is the first 12 hex digits of SHA-1 over prompt and answer.
func sampleID(prompt, answer string) string {
	sum := sha1.Sum([]byte(prompt + "\n\n" + answer))
	return hex.EncodeToString(sum[:])[:12]
}
