package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/seo-analyzer/seo-analyzer/analyzer"
	"github.com/seo-analyzer/seo-analyzer/schemas"
)

// Artifact is the JSON document persisted after each analysis.
type Artifact struct {
	AnalysisDate time.Time              `json:"analysis_date"`
	PageData     *analyzer.PageAnalysis `json:"page_data"`
	Report       *Report                `json:"report"`
}

// NewArtifact stamps an analysis and its report with the current time.
func NewArtifact(a *analyzer.PageAnalysis, rep *Report) *Artifact {
	return &Artifact{
		AnalysisDate: time.Now().UTC(),
		PageData:     a,
		Report:       rep,
	}
}

// WriteArtifact writes the artifact as indented JSON. The bytes go to a
// temporary file that is renamed into place, so an interrupted write
// never leaves a truncated artifact behind.
func WriteArtifact(path string, artifact *Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}
	data = append(data, '\n')

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile) // Clean up temp file if rename fails
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// LoadArtifact reads an artifact, validates it against the artifact
// schema, and unmarshals it.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	if err := schemas.ValidateArtifact(data); err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}

	return &artifact, nil
}
