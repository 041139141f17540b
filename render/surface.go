// Package render defines what composition nodes require from the graphics
// backend and provides headless implementation recording the resulting
// geometry.
package render

import (
	"divina/common"
	"divina/resource"
)

// Surface is a drawable container in the scene graph. Position is the
// top-left corner in parent coordinates, scale applies to surface and its
// children.
type Surface interface {
	Resize(size common.Size)
	Size() common.Size
	SetScale(scale float64)
	SetPosition(pos common.Point)
	SetAlpha(alpha float64)
	SetVisibility(visible bool)
	SetRotation(radians float64)
	AddChildAtIndex(child Surface, index int)
	RemoveChild(child Surface)
	// SetTexture sets content, nil clears it.
	SetTexture(tex resource.Texture)
}

// Factory creates surfaces for composition nodes.
type Factory interface {
	NewSurface(name string) Surface
}
