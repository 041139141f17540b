// Package manifest turns story sources into the link tree the reader is
// built from. A source is a YAML or JSON manifest, a directory of images or a
// comic archive (cbz/zip), with or without manifest inside.
package manifest

import (
	"path"
	"strings"
	"time"

	"divina/common"
	"divina/resource"
)

// Story is the root of the link tree.
type Story struct {
	Title     string                   `yaml:"title"`
	Language  string                   `yaml:"language,omitempty"`
	Direction *common.ReadingDirection `yaml:"direction,omitempty"`
	Overflow  *common.Overflow         `yaml:"overflow,omitempty"`
	Modes     []common.ReadingMode     `yaml:"modes,omitempty"`
	Links     []Link                   `yaml:"links"`

	// ID is derived from title.
	ID string `yaml:"-"`
	// Source is the directory, archive or manifest file story was loaded from.
	Source string `yaml:"-"`
}

// Link is one unit of reading order: a resource and everything needed to
// place it. Layers are stacked on top of the link's own resource.
type Link struct {
	Href       string            `yaml:"href,omitempty"`
	Type       string            `yaml:"type,omitempty"`
	Width      float64           `yaml:"width,omitempty"`
	Height     float64           `yaml:"height,omitempty"`
	Fit        common.Fit        `yaml:"fit,omitempty"`
	Tags       map[string]string `yaml:"tags,omitempty"`
	Alternates []Link            `yaml:"alternates,omitempty"`
	Fallbacks  []Link            `yaml:"fallbacks,omitempty"`
	Forward    *Transition       `yaml:"transition_forward,omitempty"`
	Backward   *Transition       `yaml:"transition_backward,omitempty"`
	SnapPoints []SnapPoint       `yaml:"snap_points,omitempty"`
	Layers     []Link            `yaml:"layers,omitempty"`
}

// Transition as declared for a page or a layer.
type Transition struct {
	Type common.TransitionType `yaml:"type"`
	// Direction of travel, defaults to reading direction.
	Direction     *common.ReadingDirection `yaml:"direction,omitempty"`
	Duration      time.Duration            `yaml:"duration,omitempty"`
	Discontinuous bool                     `yaml:"discontinuous,omitempty"`
	Animation     *Link                    `yaml:"animation,omitempty"`
}

// SnapPoint is given in natural pixels of the link it belongs to.
type SnapPoint struct {
	Anchor common.ViewportAnchor `yaml:"anchor"`
	X      float64               `yaml:"x,omitempty"`
	Y      float64               `yaml:"y,omitempty"`
}

var extensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".txt":  "text/plain",
}

// MimeType returns declared type or the one guessed from href extension.
func (l *Link) MimeType() string {
	if l.Type != "" {
		return l.Type
	}
	return extensions[strings.ToLower(path.Ext(l.Href))]
}

// Kind classifies link resource, unknown types are treated as images.
func (l *Link) Kind() common.ResourceKind {
	mime := l.MimeType()
	switch {
	case strings.HasPrefix(mime, "video/"):
		return common.ResourceKindVideo
	case strings.HasPrefix(mime, "audio/"):
		return common.ResourceKindAudio
	case strings.HasPrefix(mime, "text/"):
		return common.ResourceKindText
	}
	return common.ResourceKindImage
}

func (l *Link) Size() common.Size {
	return common.Size{Width: l.Width, Height: l.Height}
}

// Descriptor converts link into resource declaration.
func (l *Link) Descriptor() resource.Descriptor {
	d := resource.Descriptor{
		Kind:     l.Kind(),
		Path:     l.Href,
		MimeType: l.MimeType(),
		Size:     l.Size(),
		Tags:     l.Tags,
	}
	for i := range l.Alternates {
		d.Alternates = append(d.Alternates, l.Alternates[i].Descriptor())
	}
	for i := range l.Fallbacks {
		d.Fallbacks = append(d.Fallbacks, l.Fallbacks[i].Descriptor())
	}
	return d
}

// IsImageName reports whether file name looks like a raster or vector image.
func IsImageName(name string) bool {
	return strings.HasPrefix(extensions[strings.ToLower(path.Ext(name))], "image/")
}
