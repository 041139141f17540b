// Package archive gives random access to files of comic archives (cbz/zip).
// Archives produced by some tools carry data descriptors standard reader
// chokes on, so the tolerant reader is used.
package archive

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"github.com/maruel/natural"
)

// WalkFunc is called for each file visited by Walk. If an error is returned,
// processing stops.
type WalkFunc func(name string, file *fixzip.File) error

// Archive is an open zip file with index of its regular files.
type Archive struct {
	path  string
	r     *fixzip.ReadCloser
	files map[string]*fixzip.File
	names []string
}

// Open reads archive directory. Entries with absolute paths or path
// traversal components make archive unusable.
func Open(name string) (*Archive, error) {
	r, err := fixzip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive (%s): %w", name, err)
	}

	a := &Archive{path: name, r: r, files: make(map[string]*fixzip.File)}
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			r.Close()
			return nil, fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		a.files[f.Name] = f
		a.names = append(a.names, f.Name)
	}
	sort.Sort(natural.StringSlice(a.names))
	return a, nil
}

func (a *Archive) Path() string {
	return a.path
}

// Names returns regular files in natural order ("p2" before "p10").
func (a *Archive) Names() []string {
	return append([]string(nil), a.names...)
}

// Has reports whether archive contains regular file name.
func (a *Archive) Has(name string) bool {
	_, ok := a.files[name]
	return ok
}

// ReadFile returns content of the named file.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("file %q not found in archive (%s)", name, a.path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open %q in archive (%s): %w", name, a.path, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Walk visits files with names starting with prefix in natural order.
func (a *Archive) Walk(prefix string, walkFn WalkFunc) error {
	for _, name := range a.names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(name, a.files[name]); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) Close() error {
	return a.r.Close()
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
