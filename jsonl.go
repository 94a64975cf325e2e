package structgen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// WriteJSONL writes one sample per line to path, creating parent
// directories as needed.
func WriteJSONL(path string, samples []Sample) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, s := range samples {
		line, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshal sample %s: %w", s.ID, err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadJSONL loads samples from a JSONL file, skipping blank lines.
func ReadJSONL(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var samples []Sample
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var s Sample
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return samples, nil
}

// SmokeReport summarizes a strict re-validation pass over a written pack.
type SmokeReport struct {
	Checked int
	OK      int
	Failed  int
}

// PassRate returns the fraction of checked samples that validated.
func (r SmokeReport) PassRate() float64 {
	if r.Checked == 0 {
		return 0
	}
	return float64(r.OK) / float64(r.Checked)
}

// Smoke re-reads a written pack and re-validates every assistant answer
// with the strict parser for its subcategory. A sample whose last message
// is not an assistant turn counts as failed.
func Smoke(path string, v *Validators) (SmokeReport, error) {
	samples, err := ReadJSONL(path)
	if err != nil {
		return SmokeReport{}, err
	}
	var rep SmokeReport
	for _, s := range samples {
		rep.Checked++
		answer := s.Answer()
		if answer == "" || !v.Answer(s.Subcategory, answer) {
			rep.Failed++
			continue
		}
		rep.OK++
	}
	return rep, nil
}
