package render

import (
	"image"
	"strings"
	"testing"

	"divina/common"
	"divina/utils/debug"
)

func TestRecorder_Hierarchy(t *testing.T) {
	r := NewRecorder()
	root := r.NewSurface("page")
	a := r.NewSurface("a")
	b := r.NewSurface("b")
	c := r.NewSurface("c")

	root.AddChildAtIndex(a, 0)
	root.AddChildAtIndex(c, 5)
	root.AddChildAtIndex(b, 1)

	var names []string
	for _, ch := range r.Find("page").Children() {
		names = append(names, ch.Name())
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("children = %v, want a,b,c", names)
	}

	// moving child detaches it from old parent
	a.AddChildAtIndex(c, 0)
	if len(r.Find("page").Children()) != 2 || r.Find("c").Parent() != r.Find("a") {
		t.Error("AddChildAtIndex() did not move child")
	}

	root.RemoveChild(b)
	if r.Find("b").Parent() != nil {
		t.Error("RemoveChild() left parent set")
	}
	if len(r.Roots()) != 2 {
		t.Errorf("Roots() = %d surfaces, want 2", len(r.Roots()))
	}
}

func TestRecorder_Props(t *testing.T) {
	r := NewRecorder()
	s := r.NewSurface("slice")

	s.Resize(common.Size{Width: 100, Height: 50})
	s.SetPosition(common.Point{X: 10, Y: -5})
	s.SetScale(2)
	s.SetAlpha(1.5)
	s.SetRotation(0.5)
	s.SetTexture(image.Rect(0, 0, 1, 1))

	p := r.Find("slice").Props()
	if p.Size.Width != 100 || p.Position.Y != -5 || p.Scale != 2 || p.Rotation != 0.5 {
		t.Errorf("Props() = %+v", p)
	}
	if p.Alpha != 1 {
		t.Errorf("Alpha = %v, want clamped 1", p.Alpha)
	}
	if p.Texture == nil {
		t.Error("Texture not recorded")
	}
	if r.Ops() != 6 {
		t.Errorf("Ops() = %d, want 6", r.Ops())
	}
}

func TestNode_EffectiveVisible(t *testing.T) {
	r := NewRecorder()
	parent := r.NewSurface("parent")
	child := r.NewSurface("child")
	parent.AddChildAtIndex(child, 0)

	if !r.Find("child").EffectiveVisible() {
		t.Fatal("EffectiveVisible() = false for fresh surfaces")
	}
	parent.SetAlpha(0)
	if r.Find("child").EffectiveVisible() {
		t.Error("EffectiveVisible() = true under transparent parent")
	}
	parent.SetAlpha(1)
	parent.SetVisibility(false)
	if r.Find("child").EffectiveVisible() {
		t.Error("EffectiveVisible() = true under hidden parent")
	}
}

func TestDump(t *testing.T) {
	r := NewRecorder()
	root := r.NewSurface("page")
	child := r.NewSurface("slice")
	root.AddChildAtIndex(child, 0)
	child.Resize(common.Size{Width: 10, Height: 20})

	tw := debug.NewTreeWriter()
	Dump(tw, r.Find("page"), 0)

	want := "surface page x=0 y=0 w=0 h=0 scale=1 alpha=1 visible=true texture=false\n" +
		"  surface slice x=0 y=0 w=10 h=20 scale=1 alpha=1 visible=true texture=false\n"
	if got := tw.String(); got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}
