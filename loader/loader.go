// Package loader fetches story resources from a directory or comic archive,
// decodes them into textures on worker goroutines and reports batches back on
// the engine loop.
package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"divina/archive"
	"divina/common"
	"divina/config"
	"divina/resource"
	"divina/utils/images"
)

// ErrUnsupported is returned for content which could not become a texture.
var ErrUnsupported = errors.New("unsupported content")

// Poster runs functions on engine loop, frame.Loop satisfies it.
type Poster interface {
	Post(fn func())
}

// Fetcher returns raw bytes of resource by path relative to story root.
type Fetcher interface {
	Fetch(path string) ([]byte, error)
	Close() error
}

// Media is a texture for streams the engine does not decode, it carries raw
// data for the rendering collaborator. Its size comes from manifest.
type Media struct {
	MimeType string
	Data     []byte
}

func (m *Media) Bounds() image.Rectangle {
	return image.Rectangle{}
}

// Text is a texture carrying text resource content.
type Text struct {
	Content string
}

func (t *Text) Bounds() image.Rectangle {
	return image.Rectangle{}
}

type job struct {
	id  string
	src resource.Source
}

// Files implements resource.Loader.
type Files struct {
	log     *zap.Logger
	fetcher Fetcher
	poster  Poster
	opts    images.Options
	workers int

	pending []job
	wg      sync.WaitGroup
}

// New creates loader reading through fetcher. Results are delivered through
// poster.
func New(fetcher Fetcher, poster Poster, cfg *config.ImagesConfig, log *zap.Logger) *Files {
	if log == nil {
		log = zap.NewNop()
	}
	return &Files{
		log:     log.Named("loader"),
		fetcher: fetcher,
		poster:  poster,
		opts:    images.Options{MaxTextureSize: cfg.MaxTextureSize, SVGSize: cfg.SVGSize},
		workers: max(cfg.Workers, 1),
	}
}

// Open creates loader over story source which could be a directory or an
// archive. For anything else directory containing it is used.
func Open(source string, poster Poster, cfg *config.ImagesConfig, log *zap.Logger) (*Files, error) {
	fetcher, err := NewFetcher(source)
	if err != nil {
		return nil, err
	}
	return New(fetcher, poster, cfg, log), nil
}

// NewFetcher selects fetcher for story source.
func NewFetcher(source string) (Fetcher, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("unable to access story source: %w", err)
	}
	if info.IsDir() {
		return Dir(source), nil
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".cbz", ".zip":
		a, err := archive.Open(source)
		if err != nil {
			return nil, err
		}
		return &Archive{a}, nil
	}
	return Dir(filepath.Dir(source)), nil
}

// Enqueue adds resource to the next batch.
func (f *Files) Enqueue(id string, src resource.Source) {
	f.pending = append(f.pending, job{id: id, src: src})
}

// Load flushes the current batch. Items are fetched and decoded concurrently,
// onComplete is posted to the engine loop once for the whole batch unless
// ctx was cancelled by then.
func (f *Files) Load(ctx context.Context, onComplete func([]resource.Item)) {
	batch := f.pending
	f.pending = nil

	f.wg.Go(func() {
		items := f.process(ctx, batch)
		f.poster.Post(func() {
			if ctx.Err() != nil {
				f.log.Debug("Dropping cancelled batch", zap.Int("items", len(items)))
			}
			onComplete(items)
		})
	})
}

func (f *Files) process(ctx context.Context, batch []job) []resource.Item {
	items := make([]resource.Item, len(batch))

	sem := make(chan struct{}, f.workers)
	var wg sync.WaitGroup
	for i, j := range batch {
		items[i].ID = j.id
		wg.Go(func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				items[i].Err = ctx.Err()
				return
			}
			defer func() { <-sem }()
			items[i].Texture, items[i].Err = f.fetch(ctx, j.src)
		})
	}
	wg.Wait()

	var errs error
	for _, it := range items {
		errs = multierr.Append(errs, it.Err)
	}
	if errs != nil {
		f.log.Debug("Batch completed with errors", zap.Int("items", len(items)), zap.Error(errs))
	}
	return items
}

func (f *Files) fetch(ctx context.Context, src resource.Source) (resource.Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := f.fetcher.Fetch(src.Path)
	if err != nil {
		return nil, err
	}

	switch src.Kind {
	case common.ResourceKindText:
		return &Text{Content: string(data)}, nil
	case common.ResourceKindVideo, common.ResourceKindAudio:
		mime, err := images.Sniff(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		if !images.IsMedia(mime) {
			return nil, fmt.Errorf("%s is %s: %w", src.Path, mime, ErrUnsupported)
		}
		return &Media{MimeType: mime, Data: data}, nil
	}

	img, format, err := images.Decode(data, f.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}
	f.log.Debug("Decoded image", zap.String("path", src.Path), zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

// Close waits for batches in flight and releases the source.
func (f *Files) Close() error {
	f.wg.Wait()
	return f.fetcher.Close()
}
