package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed wordlists.yaml
var defaultWordlistsYAML []byte

// Wordlists holds the stop words excluded from keyword ranking and the
// target keywords checked by the recommendation engine.
type Wordlists struct {
	StopWords      []string `yaml:"stop_words"`
	TargetKeywords []string `yaml:"target_keywords"`
}

var defaultWordlists = mustParseWordlists(defaultWordlistsYAML)

// DefaultWordlists returns a copy of the built-in word lists.
func DefaultWordlists() *Wordlists {
	return &Wordlists{
		StopWords:      append([]string(nil), defaultWordlists.StopWords...),
		TargetKeywords: append([]string(nil), defaultWordlists.TargetKeywords...),
	}
}

// LoadWordlists reads a YAML word-list file, replacing the built-in lists
// entirely. Both lists must be present and non-empty.
func LoadWordlists(path string) (*Wordlists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word lists: %w", err)
	}

	var wl Wordlists
	if err := unmarshalStrict(data, &wl); err != nil {
		return nil, fmt.Errorf("failed to parse word lists %s: %w", path, err)
	}

	if len(wl.StopWords) == 0 {
		return nil, fmt.Errorf("word lists %s: stop_words must not be empty", path)
	}
	if len(wl.TargetKeywords) == 0 {
		return nil, fmt.Errorf("word lists %s: target_keywords must not be empty", path)
	}

	return &wl, nil
}

// unmarshalStrict decodes YAML with strict field checking so typos in a
// word-list file surface as errors instead of silently empty lists.
func unmarshalStrict(data []byte, v interface{}) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(v); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "field") && strings.Contains(errStr, "not found") {
			return fmt.Errorf("unknown field (check for typos): %w", err)
		}
		return err
	}

	return nil
}

func mustParseWordlists(data []byte) *Wordlists {
	var wl Wordlists
	if err := unmarshalStrict(data, &wl); err != nil {
		panic(fmt.Sprintf("config: invalid embedded wordlists.yaml: %v", err))
	}
	return &wl
}
