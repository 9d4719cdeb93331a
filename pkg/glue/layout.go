package glue

import "path/filepath"

const (
	prefixFileName   = "prefix.fst"
	fuzzyFSTFileName = "fuzzy.fst"
	fuzzySideFile    = "fuzzy.msg"
	phraseFileName   = "phrase.fst"
	metadataFileName = "metadata.json"
	buildTOMLName    = "build.toml"
)

func layoutPaths(dir string) (prefix, fuzzyFST, fuzzySide, phrase, metadata, buildTOML string) {
	return filepath.Join(dir, prefixFileName),
		filepath.Join(dir, fuzzyFSTFileName),
		filepath.Join(dir, fuzzySideFile),
		filepath.Join(dir, phraseFileName),
		filepath.Join(dir, metadataFileName),
		filepath.Join(dir, buildTOMLName)
}
