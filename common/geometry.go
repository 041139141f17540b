package common

import "math"

// Size is a width/height pair in viewport pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Point is a position in viewport pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Along returns dimension of s along the axis of reading direction.
func (s Size) Along(dir ReadingDirection) float64 {
	if dir.IsHorizontal() {
		return s.Width
	}
	return s.Height
}

// Across returns dimension of s across the axis of reading direction.
func (s Size) Across(dir ReadingDirection) float64 {
	if dir.IsHorizontal() {
		return s.Height
	}
	return s.Width
}

// Scale returns s multiplied by factor.
func (s Size) Scale(factor float64) Size {
	return Size{Width: s.Width * factor, Height: s.Height * factor}
}

// FitScale returns scale factor which fits natural size into box according to fit mode.
// Zero sized input results in scale 1.
func FitScale(natural, box Size, fit Fit) float64 {
	if natural.IsEmpty() || box.IsEmpty() {
		return 1
	}
	rw, rh := box.Width/natural.Width, box.Height/natural.Height
	switch fit {
	case FitWidth:
		return rw
	case FitHeight:
		return rh
	case FitCover:
		return math.Max(rw, rh)
	default:
		return math.Min(rw, rh)
	}
}
