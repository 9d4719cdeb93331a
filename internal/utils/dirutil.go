package utils

import (
	"os"

	"github.com/BurntSushi/toml"
)

// EnsureDir makes sure dirPath exists, creating parents as needed.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteTOML encodes v as TOML and writes it to path, overwriting any
// existing content. Shared by the config loader and the build-time
// sidecar record writer, so it lives here rather than in either package.
func WriteTOML(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = toml.NewEncoder(f).Encode(v)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
