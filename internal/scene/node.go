// Package scene holds a small retained-mode scene graph: a tree of nodes,
// each owning a local transform, an optional drawable and its children.
//
// The topology is built once; afterwards only transforms and text contents
// are expected to change. Nodes are owned by exactly one parent and the tree
// never contains cycles.
package scene

import (
	"fmt"
	"image/color"
)

// Drawable is implemented by the primitives a renderer knows how to draw.
type Drawable interface {
	drawable()
}

// Segments is a set of independent line segments drawn with one material.
type Segments struct {
	Pairs     [][2]Vec2
	Color     color.Color
	Thickness float64 // Logical pixels
}

// Plane is a filled rectangle centred on the node origin.
type Plane struct {
	Width, Height float64
	Color         color.Color
}

// Anchor positions a text block relative to the node origin.
type Anchor int

const (
	AnchorMiddleCenter Anchor = iota
	AnchorTopLeft
)

// Text is a single line of text. FontSize is expressed in world units.
type Text struct {
	Content  string
	FontSize float64
	Color    color.Color
	Anchor   Anchor
}

// SetContent replaces the text.
func (t *Text) SetContent(s string) {
	t.Content = s
}

func (*Segments) drawable() {}
func (*Plane) drawable()    {}
func (*Text) drawable()     {}

// Node is an element of the scene tree.
type Node struct {
	Name     string
	Local    Transform
	Drawable Drawable

	parent   *Node
	children []*Node
}

// NewNode creates a detached node. d may be nil for pure grouping nodes.
func NewNode(name string, d Drawable) *Node {
	return &Node{Name: name, Drawable: d}
}

// Add attaches children to n and returns n. A child that already has a parent
// causes a panic; ownership is exclusive.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c.parent != nil {
			panic(fmt.Sprintf("scene: node %q already attached to %q", c.Name, c.parent.Name))
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the owning node, nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float64) *Node {
	n.Local.Position = Vec2{X: x, Y: y}
	return n
}

// SetRotation sets the local rotation in radians.
func (n *Node) SetRotation(rad float64) {
	n.Local.Rotation = rad
}

// World returns the composed transform from the root to n.
func (n *Node) World() Affine {
	m := n.Local.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Local.Matrix().Mul(m)
	}
	return m
}

// Walk visits n and its descendants depth-first, parents before children,
// passing each node's world transform. Walking stops at the first error.
func (n *Node) Walk(fn func(node *Node, world Affine) error) error {
	parent := Identity
	if n.parent != nil {
		parent = n.parent.World()
	}
	return n.walk(parent, fn)
}

func (n *Node) walk(parent Affine, fn func(*Node, Affine) error) error {
	world := parent.Mul(n.Local.Matrix())
	if err := fn(n, world); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.walk(world, fn); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	_ = n.Walk(func(node *Node, _ Affine) error {
		if found == nil && node.Name == name {
			found = node
		}
		return nil
	})
	return found
}
