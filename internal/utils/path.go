package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// IndexLocator resolves the on-disk directory holding a built index. It
// only concerns itself with the executable's own location: config-file
// resolution (home dir, platform fallbacks) is a separate
// problem, already owned by pkg/config, and isn't duplicated here.
type IndexLocator struct {
	executableDir string
}

// NewIndexLocator determines the directory containing the running binary,
// resolving symlinks so a symlinked install still locates its sibling
// files correctly.
func NewIndexLocator() (*IndexLocator, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(execPath)
	log.Debugf("IndexLocator: executable dir=%s", dir)
	return &IndexLocator{executableDir: dir}, nil
}

// GetIndexDir resolves a built index directory, trying the user-specified
// path (used as-is if absolute), then that same path relative to the
// executable, then relative to the current working directory. If none of
// the candidates already hold a complete index, it returns the
// executable-relative candidate so the caller has a sensible place to
// report as missing or build into.
func (l *IndexLocator) GetIndexDir(userSpecifiedPath string) (string, error) {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}
	execRelative := filepath.Join(l.executableDir, userSpecifiedPath)
	candidates = append(candidates, execRelative)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}

	for _, path := range candidates {
		if isValidIndexDir(path) {
			log.Debugf("found valid index directory: %s", path)
			return path, nil
		}
		log.Debugf("index directory candidate not valid: %s", path)
	}
	return execRelative, nil
}

// isValidIndexDir reports whether path contains the three artifacts a
// finalized build always writes together.
func isValidIndexDir(path string) bool {
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return false
	}
	for _, required := range []string{"prefix.fst", "phrase.fst", "metadata.json"} {
		if _, err := os.Stat(filepath.Join(path, required)); err != nil {
			return false
		}
	}
	return true
}
