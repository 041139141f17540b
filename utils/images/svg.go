package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxRasterDim is the maximum pixel dimension (width or height) allowed when
// rasterizing an SVG, enormous viewBox values would otherwise exhaust memory.
var maxRasterDim = 8192

// RasterizeSVG renders SVG data to an RGBA image.
//
// Rules:
//   - if targetW == 0 && targetH == 0: use viewBox dimensions, missing ones are replaced by fallback
//   - if only one of targetW/targetH is > 0: scale by that dimension keeping aspect ratio
//   - if both targetW and targetH are > 0: fit into that box keeping aspect ratio
func RasterizeSVG(data []byte, targetW, targetH, fallback int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := scaledSize(int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H)), targetW, targetH, fallback)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

func scaledSize(intrW, intrH, targetW, targetH, fallback int) (int, int) {
	if fallback <= 0 {
		fallback = 1024
	}
	if intrW <= 0 {
		intrW = fallback
	}
	if intrH <= 0 {
		intrH = fallback
	}

	w, h := intrW, intrH
	switch {
	case targetW <= 0 && targetH <= 0:
	case targetH <= 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetW <= 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w, h = max(w, 1), max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}
	return w, h
}

func svgSize(data []byte) (int, int, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H)), nil
}
