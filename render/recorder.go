package render

import (
	"math"
	"slices"

	"divina/common"
	"divina/resource"
	"divina/utils/debug"
)

// Props is a snapshot of surface state.
type Props struct {
	Size     common.Size
	Scale    float64
	Position common.Point
	Alpha    float64
	Visible  bool
	Rotation float64
	Texture  resource.Texture
}

// Node is a surface of the Recorder.
type Node struct {
	name     string
	props    Props
	parent   *Node
	children []*Node
	rec      *Recorder
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Props() Props {
	return n.props
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

func (n *Node) Resize(size common.Size) {
	n.rec.ops++
	n.props.Size = size
}

func (n *Node) Size() common.Size {
	return n.props.Size
}

func (n *Node) SetScale(scale float64) {
	n.rec.ops++
	n.props.Scale = scale
}

func (n *Node) SetPosition(pos common.Point) {
	n.rec.ops++
	n.props.Position = pos
}

func (n *Node) SetAlpha(alpha float64) {
	n.rec.ops++
	n.props.Alpha = math.Max(0, math.Min(1, alpha))
}

func (n *Node) SetVisibility(visible bool) {
	n.rec.ops++
	n.props.Visible = visible
}

func (n *Node) SetRotation(radians float64) {
	n.rec.ops++
	n.props.Rotation = radians
}

func (n *Node) SetTexture(tex resource.Texture) {
	n.rec.ops++
	n.props.Texture = tex
}

// AddChildAtIndex inserts child, index out of range appends. Child is
// detached from its previous parent first.
func (n *Node) AddChildAtIndex(child Surface, index int) {
	c, ok := child.(*Node)
	if !ok {
		panic("render: child surface belongs to another factory")
	}
	n.rec.ops++
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = n
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = slices.Insert(n.children, index, c)
}

func (n *Node) RemoveChild(child Surface) {
	c, ok := child.(*Node)
	if !ok || c.parent != n {
		return
	}
	n.rec.ops++
	n.detach(c)
	c.parent = nil
}

func (n *Node) detach(c *Node) {
	if i := slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// EffectiveVisible reports whether node and all its ancestors are visible
// and not fully transparent.
func (n *Node) EffectiveVisible() bool {
	for c := n; c != nil; c = c.parent {
		if !c.props.Visible || c.props.Alpha == 0 {
			return false
		}
	}
	return true
}

// Recorder is a headless Factory, nothing is drawn.
type Recorder struct {
	ops   int
	nodes []*Node
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewSurface(name string) Surface {
	n := &Node{
		name:  name,
		props: Props{Scale: 1, Alpha: 1, Visible: true},
		rec:   r,
	}
	r.nodes = append(r.nodes, n)
	return n
}

// Ops returns number of mutations recorded so far.
func (r *Recorder) Ops() int {
	return r.ops
}

// Roots returns surfaces without parent in creation order.
func (r *Recorder) Roots() []*Node {
	var roots []*Node
	for _, n := range r.nodes {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// Find returns first surface with given name.
func (r *Recorder) Find(name string) *Node {
	for _, n := range r.nodes {
		if n.name == name {
			return n
		}
	}
	return nil
}

// Dump writes scene graph rooted at n.
func Dump(tw *debug.TreeWriter, n *Node, depth int) {
	p := n.props
	tw.Node(depth, "surface", n.name,
		"x", round(p.Position.X), "y", round(p.Position.Y),
		"w", round(p.Size.Width), "h", round(p.Size.Height),
		"scale", round(p.Scale), "alpha", round(p.Alpha),
		"visible", p.Visible, "texture", p.Texture != nil)
	for _, c := range n.children {
		Dump(tw, c, depth+1)
	}
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
