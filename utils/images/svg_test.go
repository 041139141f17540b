package images

import "testing"

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)

	tests := []struct {
		name             string
		targetW, targetH int
		wantW, wantH     int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale by width", 200, 0, 200, 100},
		{"scale by height", 0, 200, 400, 200},
		{"fit box", 150, 150, 150, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVG(svg, tt.targetW, tt.targetH, 0)
			if err != nil {
				t.Fatalf("RasterizeSVG() error = %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Errorf("RasterizeSVG() bounds = %v, want %dx%d", img.Bounds(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaledSize_Clamp(t *testing.T) {
	w, h := scaledSize(100000, 50000, 0, 0, 0)
	if w != maxRasterDim || h != maxRasterDim/2 {
		t.Errorf("scaledSize() = %dx%d, want %dx%d", w, h, maxRasterDim, maxRasterDim/2)
	}
	w, h = scaledSize(0, 0, 0, 0, 64)
	if w != 64 || h != 64 {
		t.Errorf("scaledSize() without viewBox = %dx%d, want 64x64", w, h)
	}
}
