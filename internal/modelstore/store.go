// Package modelstore persists trained regression models as timestamped
// artifacts. The filename wire format is `<prefix>#<YYYY-MM-DD_HH-MM-SS>.pkl`
// so the most recent artifact in a directory is discoverable by parsing the
// timestamp suffix.
package modelstore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fieldstat/edakit/internal/stats"
	"github.com/fieldstat/edakit/internal/utils"
	"github.com/google/uuid"
)

const (
	// TimestampLayout is the second-resolution timestamp embedded in
	// artifact filenames.
	TimestampLayout = "2006-01-02_15-04-05"
	artifactExt     = ".pkl"
)

// ErrNoModels indicates a directory contains no model artifacts.
var ErrNoModels = errors.New("no model artifacts found")

// Artifact is the on-disk envelope around a persisted model.
type Artifact struct {
	ID        string
	CreatedAt time.Time
	Model     *stats.LinearModel
}

// Save serializes the model to "<prefix>#<timestamp>.pkl" and returns the
// generated filename. The prefix may include a directory path.
func Save(prefix string, model *stats.LinearModel) (string, error) {
	if model == nil {
		return "", errors.New("nil model")
	}
	art := Artifact{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Model:     model,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(art); err != nil {
		return "", fmt.Errorf("encode model: %w", err)
	}

	name := fmt.Sprintf("%s#%s%s", prefix, art.CreatedAt.Format(TimestampLayout), artifactExt)
	if dir := filepath.Dir(name); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("ensure models dir: %w", err)
		}
	}
	if err := utils.SafeWriteFile(name, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write model: %w", err)
	}
	return name, nil
}

// Load deserializes a model artifact.
func Load(path string) (*stats.LinearModel, error) {
	art, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return art.Model, nil
}

// LoadArtifact deserializes the full artifact envelope.
func LoadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var art Artifact
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&art); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if art.Model == nil {
		return nil, fmt.Errorf("artifact %s holds no model", filepath.Base(path))
	}
	return &art, nil
}

// Latest returns the path of the most recent model artifact in dir, by the
// timestamp parsed from each filename. Files without a parseable timestamp
// suffix are ignored. ErrNoModels is returned when the directory holds no
// artifacts.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list models dir: %w", err)
	}
	var bestPath string
	var bestTime time.Time
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), artifactExt) {
			continue
		}
		ts, ok := parseTimestamp(e.Name())
		if !ok {
			continue
		}
		if bestPath == "" || ts.After(bestTime) {
			bestPath = filepath.Join(dir, e.Name())
			bestTime = ts
		}
	}
	if bestPath == "" {
		return "", ErrNoModels
	}
	return bestPath, nil
}

// parseTimestamp extracts the timestamp after the last '#' of an artifact
// filename, minus the extension.
func parseTimestamp(name string) (time.Time, bool) {
	idx := strings.LastIndex(name, "#")
	if idx < 0 {
		return time.Time{}, false
	}
	raw := strings.TrimSuffix(name[idx+1:], artifactExt)
	ts, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
