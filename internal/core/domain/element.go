package domain

// ComponentMarker is the attribute a host element carries to name the component it renders.
const ComponentMarker = "data-component"

// ElementID identifies a host element observed for viewport visibility.
type ElementID string

// Rect is an axis-aligned rectangle in host layout coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Area returns the rectangle area, zero for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Intersect returns the overlap of r and o and whether they overlap at all.
// Touching edges count as an overlap with zero area.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 < x1 || y2 < y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Expand grows the rectangle by the given margins on each side.
func (r Rect) Expand(vertical, horizontal float64) Rect {
	return Rect{
		X:      r.X - horizontal,
		Y:      r.Y - vertical,
		Width:  r.Width + 2*horizontal,
		Height: r.Height + 2*vertical,
	}
}

// ObserverOptions configures viewport intersection observation.
type ObserverOptions struct {
	// MarginVertical extends the viewport above and below, so loading starts before an element is visible.
	MarginVertical float64
	// MarginHorizontal extends the viewport left and right.
	MarginHorizontal float64
	// Threshold is the minimum visible fraction of the element that counts as intersecting.
	Threshold float64
}

// DefaultObserverOptions begins loading 100px before an element enters the viewport
// and requires 10% of it to be visible.
func DefaultObserverOptions() ObserverOptions {
	return ObserverOptions{
		MarginVertical:   100,
		MarginHorizontal: 0,
		Threshold:        0.1,
	}
}

// IntersectionEntry reports a change in an element's visibility.
type IntersectionEntry struct {
	Element        ElementID
	IsIntersecting bool
	Ratio          float64
}

// HoverTarget is a node in the host's element tree that can be hovered.
type HoverTarget interface {
	// Attribute returns the value of the named attribute.
	Attribute(name string) (string, bool)
	// Parent returns the enclosing node, or nil at the root.
	Parent() HoverTarget
}

// NearestComponent walks from target to the root and returns the first component marker.
func NearestComponent(target HoverTarget) (string, bool) {
	for node := target; node != nil; node = node.Parent() {
		if name, ok := node.Attribute(ComponentMarker); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// Node is a minimal HoverTarget for hosts that mirror their element tree in Go.
type Node struct {
	Attrs      map[string]string
	ParentNode *Node
}

// Attribute implements HoverTarget.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Parent implements HoverTarget.
func (n *Node) Parent() HoverTarget {
	if n.ParentNode == nil {
		return nil
	}
	return n.ParentNode
}

// Route is a navigation target reported by the host router after each transition.
type Route struct {
	Path string
	Name string
}
