// Package images turns raw resource bytes into textures: type sniffing,
// raster and SVG decoding, downscaling to texture limits.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownType is returned when data could not be recognized.
var ErrUnknownType = errors.New("unknown data type")

const svgMime = "image/svg+xml"

// Options control decoding.
type Options struct {
	// MaxTextureSize limits both dimensions of decoded image, 0 means no limit.
	MaxTextureSize int
	// SVGSize is used for SVG documents without intrinsic size.
	SVGSize int
}

// Sniff detects MIME type of data. SVG is recognized by its root element
// since it has no magic number.
func Sniff(data []byte) (string, error) {
	if isSVG(data) {
		return svgMime, nil
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", err
	}
	if kind == filetype.Unknown {
		return "", ErrUnknownType
	}
	return kind.MIME.Value, nil
}

// IsImage reports whether MIME type is the one Decode could handle.
func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// IsMedia reports whether MIME type denotes video or audio stream.
func IsMedia(mime string) bool {
	return strings.HasPrefix(mime, "video/") || strings.HasPrefix(mime, "audio/")
}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 512)]
	return bytes.Contains(head, []byte("<svg")) && !filetype.IsImage(data)
}

// Decode decodes image data of any supported format and downscales it to fit
// texture limits keeping aspect ratio. It returns detected format name.
func Decode(data []byte, opts Options) (image.Image, string, error) {
	if isSVG(data) {
		img, err := RasterizeSVG(data, 0, 0, opts.SVGSize)
		if err != nil {
			return nil, "", fmt.Errorf("unable to rasterize svg: %w", err)
		}
		if opts.MaxTextureSize > 0 {
			img = fit(img, opts.MaxTextureSize)
		}
		return img, "svg", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode image: %w", err)
	}
	if opts.MaxTextureSize > 0 {
		img = fit(img, opts.MaxTextureSize)
	}
	return img, format, nil
}

func fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// Size returns intrinsic dimensions of image data reading headers only. SVG
// documents without viewBox report zero size.
func Size(data []byte) (width, height int, err error) {
	if isSVG(data) {
		return svgSize(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
