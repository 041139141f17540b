package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"divina/archive"
	"divina/common"
	"divina/utils/images"
)

// ErrNoPages is returned for sources without a single usable link.
var ErrNoPages = errors.New("story has no pages")

// manifest file names recognized inside directories and archives, in order
// of preference
var manifestNames = []string{"manifest.yaml", "manifest.yml", "manifest.json", "story.yaml"}

type readFunc func(name string) ([]byte, error)

// Load opens story source. Link sizes missing from manifest are probed from
// image headers.
func Load(source string, log *zap.Logger) (*Story, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("manifest")

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access story source: %w", err)
	}

	var (
		st   *Story
		read readFunc
	)
	switch ext := strings.ToLower(filepath.Ext(source)); {
	case info.IsDir():
		st, read, err = loadDir(source)
	case ext == ".cbz" || ext == ".zip":
		var a *archive.Archive
		if a, err = archive.Open(source); err != nil {
			return nil, err
		}
		defer a.Close()
		st, read, err = loadArchive(a)
	case ext == ".yaml" || ext == ".yml" || ext == ".json":
		var data []byte
		if data, err = os.ReadFile(source); err != nil {
			return nil, fmt.Errorf("unable to read manifest: %w", err)
		}
		st, err = Parse(data)
		read = dirReader(filepath.Dir(source))
	default:
		return nil, fmt.Errorf("unsupported story source (%s)", source)
	}
	if err != nil {
		return nil, err
	}
	st.Source = source
	if err := finalize(st, read, log); err != nil {
		return nil, fmt.Errorf("story %s: %w", source, err)
	}
	return st, nil
}

// Parse decodes YAML or JSON manifest. Unknown fields are errors.
func Parse(data []byte) (*Story, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	st := &Story{}
	if err := dec.Decode(st); err != nil {
		return nil, fmt.Errorf("unable to decode manifest: %w", err)
	}
	return st, nil
}

func dirReader(dir string) readFunc {
	return func(name string) ([]byte, error) {
		local := filepath.FromSlash(name)
		if !filepath.IsLocal(local) {
			return nil, fmt.Errorf("path %q is outside of story", name)
		}
		return os.ReadFile(filepath.Join(dir, local))
	}
}

func loadDir(dir string) (*Story, readFunc, error) {
	read := dirReader(dir)
	for _, name := range manifestNames {
		data, err := read(name)
		if err != nil {
			continue
		}
		st, err := Parse(data)
		return st, read, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to list story directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsImageName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))
	return fromImages(dir, names), read, nil
}

func loadArchive(a *archive.Archive) (*Story, readFunc, error) {
	for _, name := range manifestNames {
		if !a.Has(name) {
			continue
		}
		data, err := a.ReadFile(name)
		if err != nil {
			return nil, nil, err
		}
		st, err := Parse(data)
		return st, a.ReadFile, err
	}

	var names []string
	for _, name := range a.Names() {
		if IsImageName(name) && !strings.HasPrefix(path.Base(name), ".") {
			names = append(names, name)
		}
	}
	return fromImages(a.Path(), names), a.ReadFile, nil
}

// fromImages makes story with one page per image.
func fromImages(source string, names []string) *Story {
	st := &Story{Title: strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))}
	for _, name := range names {
		st.Links = append(st.Links, Link{Href: name})
	}
	return st
}

func finalize(st *Story, read readFunc, log *zap.Logger) error {
	links := st.Links[:0]
	for i, l := range st.Links {
		if l.Href == "" && len(l.Layers) == 0 {
			log.Warn("Dropping link without resource", zap.Int("index", i))
			continue
		}
		links = append(links, l)
	}
	st.Links = links
	if len(st.Links) == 0 {
		return ErrNoPages
	}

	if st.Title == "" {
		st.Title = strings.TrimSuffix(filepath.Base(st.Source), filepath.Ext(st.Source))
	}
	st.ID = slug.Make(st.Title)

	if st.Language != "" {
		tag, err := language.Parse(st.Language)
		if err != nil {
			log.Warn("Ignoring malformed story language", zap.String("language", st.Language), zap.Error(err))
			st.Language = ""
		} else {
			st.Language = tag.String()
		}
	}

	for i := range st.Links {
		if err := probe(&st.Links[i], read, log); err != nil {
			return fmt.Errorf("link %d: %w", i, err)
		}
	}
	return nil
}

// probe validates href and fills natural size from image header when it was
// not declared. Nested links are processed too.
func probe(l *Link, read readFunc, log *zap.Logger) error {
	if l.Href != "" {
		if !filepath.IsLocal(filepath.FromSlash(l.Href)) {
			return fmt.Errorf("href %q is outside of story", l.Href)
		}
		if l.Kind() == common.ResourceKindImage && (l.Width <= 0 || l.Height <= 0) {
			if data, err := read(l.Href); err != nil {
				log.Debug("Unable to probe image size", zap.String("href", l.Href), zap.Error(err))
			} else if w, h, err := images.Size(data); err != nil {
				log.Debug("Unable to probe image size", zap.String("href", l.Href), zap.Error(err))
			} else {
				l.Width, l.Height = float64(w), float64(h)
			}
		}
	}

	nested := func(links []Link) error {
		for i := range links {
			if err := probe(&links[i], read, log); err != nil {
				return err
			}
		}
		return nil
	}
	for _, group := range [][]Link{l.Alternates, l.Fallbacks, l.Layers} {
		if err := nested(group); err != nil {
			return err
		}
	}
	for _, t := range []*Transition{l.Forward, l.Backward} {
		if t != nil && t.Animation != nil {
			if err := probe(t.Animation, read, log); err != nil {
				return err
			}
		}
	}
	return nil
}
