package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdoner02/aicyberjobs/internal/model"
)

// Meta is the sidecar file CI reads to address the outgoing email.
type Meta struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Subject  string         `json:"subject"`
}

// WriteEmailFiles renders the digest for a non-empty new-jobs slice and
// writes {category}.html, {category}.txt and {category}.meta.json under
// outDir. It must not be called with zero jobs.
func WriteEmailFiles(outDir string, c model.Category, jobs []model.Job) (Meta, error) {
	meta := Meta{Category: c, Count: len(jobs), Subject: Subject(c, len(jobs))}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Meta{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	htmlBody, textBody := RenderBodies(jobs)
	files := map[string][]byte{
		fmt.Sprintf("%s.html", c): []byte(htmlBody),
		fmt.Sprintf("%s.txt", c):  []byte(textBody),
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return Meta{}, fmt.Errorf("marshaling meta for %s: %w", c, err)
	}
	files[fmt.Sprintf("%s.meta.json", c)] = metaData

	for name, data := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return Meta{}, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return meta, nil
}
