package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngData(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"png", pngData(t, 2, 2), "image/png", false},
		{"svg", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`), "image/svg+xml", false},
		{"garbage", []byte("plain text, nothing else"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sniff(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Sniff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Sniff() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSniff_Unknown(t *testing.T) {
	if _, err := Sniff([]byte("nope")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Sniff() error = %v, want ErrUnknownType", err)
	}
}

func TestDecode_Downscale(t *testing.T) {
	img, format, err := Decode(pngData(t, 400, 100), Options{MaxTextureSize: 200})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format != "png" {
		t.Errorf("Decode() format = %q, want png", format)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 50 {
		t.Errorf("Decode() bounds = %v, want 200x50", img.Bounds())
	}
}

func TestDecode_NoLimit(t *testing.T) {
	img, _, err := Decode(pngData(t, 40, 10), Options{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 10 {
		t.Errorf("Decode() bounds = %v, want 40x10", img.Bounds())
	}
}

func TestDecode_Broken(t *testing.T) {
	if _, _, err := Decode([]byte{0x89, 'P', 'N', 'G', 0, 0}, Options{}); err == nil {
		t.Error("Decode() of broken data succeeded")
	}
}

func TestMimeClasses(t *testing.T) {
	if !IsImage("image/webp") || IsImage("video/mp4") {
		t.Error("IsImage() misclassified")
	}
	if !IsMedia("video/mp4") || !IsMedia("audio/mpeg") || IsMedia("image/png") {
		t.Error("IsMedia() misclassified")
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		w, h    int
		wantErr bool
	}{
		{"png", pngData(t, 30, 12), 30, 12, false},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 48"></svg>`), 64, 48, false},
		{"broken", []byte("not an image"), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := Size(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Size() error = %v, wantErr %v", err, tt.wantErr)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}
