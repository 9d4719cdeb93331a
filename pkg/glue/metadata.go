package glue

import (
	"encoding/json"
	"os"

	"github.com/bastiangx/geophrase/pkg/errs"
)

const metadataVersion = 1

// Metadata is the build-time record written to metadata.json alongside
// the three index files (SPEC_FULL.md §6).
type Metadata struct {
	MaxEditDistance int `json:"max_edit_distance"`
	WordCount       int `json:"word_count"`
	PhraseCount     int `json:"phrase_count"`
	Version         int `json:"version"`
}

func writeMetadata(path string, m Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.NewBuildError("glue.writeMetadata", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errs.NewBuildError("glue.writeMetadata", err)
	}
	return nil
}

func readMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, errs.NewOpenError(path, err)
	}
	var m Metadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return Metadata{}, errs.NewOpenError(path, err)
	}
	return m, nil
}

// buildRecord is the human-readable sidecar written to build.toml,
// documenting the invocation that produced an index directory. It is
// never read back by the query path (SPEC_FULL.md §6).
type buildRecord struct {
	SourceFile      string `toml:"source_file"`
	MaxEditDistance int    `toml:"max_edit_distance"`
	WordCount       int    `toml:"word_count"`
	PhraseCount     int    `toml:"phrase_count"`
}
