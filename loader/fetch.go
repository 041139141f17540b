package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"divina/archive"
)

// Dir fetches resources from directory.
type Dir string

func (d Dir) Fetch(path string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || !filepath.IsLocal(clean) {
		return nil, fmt.Errorf("resource path %q escapes story directory", path)
	}
	return os.ReadFile(filepath.Join(string(d), clean))
}

func (d Dir) Close() error {
	return nil
}

// Archive fetches resources from comic archive.
type Archive struct {
	*archive.Archive
}

func (a *Archive) Fetch(path string) ([]byte, error) {
	return a.ReadFile(path)
}
