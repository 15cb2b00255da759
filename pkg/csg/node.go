package csg

// Node is a node in a BSP tree. A tree is built from a collection of
// polygons by picking a polygon's plane to split along; that polygon, and
// every other polygon coplanar with it, is held directly by the node, while
// the remaining polygons are routed into the front and back subtrees. There
// is no distinction between internal and leaf nodes.
//
// A zero Node is the empty tree: null plane, no polygons, no children. Nodes
// are not safe for concurrent use; each boolean operation builds its own
// pair of trees.
type Node struct {
	plane    Plane
	polygons []Polygon

	front *Node
	back  *Node

	inspect InspectFunc
}

// NodeFromPolygons builds a BSP tree from a polygon list, reporting
// RecursionError when the tree exceeds limit levels. Zero limit means
// DefaultRecursionLimit.
func NodeFromPolygons(polygons []Polygon, limit int) (*Node, Error) {
	node := &Node{}

	if err := node.Build(polygons, limit); err != NoError {
		return nil, err
	}

	return node, NoError
}

// Plane returns the node's splitting plane; the null plane when the node is
// still empty.
func (n *Node) Plane() Plane { return n.plane }

// Polygons returns the polygons lying on the node's plane.
func (n *Node) Polygons() []Polygon { return n.polygons }

// Front returns the front subtree, or nil.
func (n *Node) Front() *Node { return n.front }

// Back returns the back subtree, or nil.
func (n *Node) Back() *Node { return n.back }

// SetInspector installs an inspection hook on this node. Children created by
// later Build calls inherit the hook.
func (n *Node) SetInspector(inspect InspectFunc) {
	n.inspect = inspect
}

// Build grows the tree from a polygon list. On the first call the first
// polygon's cached plane becomes the node's splitting plane, permanently;
// later calls filter the new polygons down the existing tree and grow new
// nodes at the bottom. No heuristic is used to pick a good split.
//
// Build reports RecursionError once the tree reaches limit levels, leaving
// polygons classified before that point in a partially built tree: callers
// must treat the whole operation as failed. Zero limit means
// DefaultRecursionLimit.
func (n *Node) Build(polygons []Polygon, limit int) Error {
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}

	return n.build(polygons, 0, limit)
}

func (n *Node) build(polygons []Polygon, level, limit int) Error {
	if n.inspect != nil && n.inspect(BuildEvent, nil) == Abort {
		return AbortedError
	}

	if level == limit {
		return RecursionError
	}

	if len(polygons) == 0 {
		return NoError
	}

	if n.plane.IsNull() {
		n.plane = polygons[0].Plane
	}

	result := NoError
	var front, back []Polygon

	for _, p := range polygons {
		p.Split(n.plane, &n.polygons, &n.polygons, &front, &back)
	}

	if len(front) > 0 {
		if n.front == nil {
			n.front = &Node{inspect: n.inspect}
		}

		if err := n.front.build(front, level+1, limit); err != NoError && result == NoError {
			result = err
		}
	}

	if len(back) > 0 {
		if n.back == nil {
			n.back = &Node{inspect: n.inspect}
		}

		if err := n.back.build(back, level+1, limit); err != NoError && result == NoError {
			result = err
		}
	}

	return result
}

// Invert converts solid space to empty space and empty space to solid
// space: every polygon and the node plane are flipped, both subtrees are
// inverted, and the subtrees swap places.
func (n *Node) Invert() {
	if n.inspect != nil && n.inspect(InvertEvent, nil) == Abort {
		return
	}

	for i, p := range n.polygons {
		n.polygons[i] = p.Flipped()
	}

	n.plane = n.plane.Flipped()

	if n.front != nil {
		n.front.Invert()
	}
	if n.back != nil {
		n.back.Invert()
	}

	n.front, n.back = n.back, n.front
}

// Inverted returns an inverted deep copy, leaving n untouched.
func (n *Node) Inverted() *Node {
	node := n.clone()
	node.Invert()
	return node
}

func (n *Node) clone() *Node {
	node := &Node{
		plane:    n.plane,
		polygons: append([]Polygon(nil), n.polygons...),
		inspect:  n.inspect,
	}

	if n.front != nil {
		node.front = n.front.clone()
	}
	if n.back != nil {
		node.back = n.back.clone()
	}

	return node
}

// ClipPolygons removes from the given list every polygon fragment that lies
// inside this tree's solid. An empty tree clips nothing. Coplanar polygons
// are routed into both subtrees rather than removed at the node itself; a
// missing back subtree swallows everything routed there, which is the
// convention that makes the boolean operators work and must not change.
func (n *Node) ClipPolygons(polygons []Polygon) []Polygon {
	if n.plane.IsNull() {
		return polygons
	}

	var front, back []Polygon

	for _, p := range polygons {
		p.Split(n.plane, &front, &back, &front, &back)
	}

	if n.front != nil {
		front = n.front.ClipPolygons(front)
	}

	if n.back != nil {
		back = n.back.ClipPolygons(back)
	} else {
		back = nil
	}

	return append(front, back...)
}

// ClipTo removes every polygon in this tree that is inside the other tree's
// solid.
func (n *Node) ClipTo(other *Node) {
	if n.inspect != nil && n.inspect(ClipEvent, other) == Abort {
		return
	}

	n.polygons = other.ClipPolygons(n.polygons)

	if n.front != nil {
		n.front.ClipTo(other)
	}
	if n.back != nil {
		n.back.ClipTo(other)
	}
}

// AllPolygons flattens the tree into a single polygon list, pre-order: this
// node's polygons, then the front subtree's, then the back subtree's.
func (n *Node) AllPolygons() []Polygon {
	polygons := append([]Polygon(nil), n.polygons...)

	if n.front != nil {
		polygons = append(polygons, n.front.AllPolygons()...)
	}
	if n.back != nil {
		polygons = append(polygons, n.back.AllPolygons()...)
	}

	return polygons
}
