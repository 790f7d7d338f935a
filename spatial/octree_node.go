package spatial

import "rendercore/math"

// Octans marks which of a node's eight children are active (allocated and
// holding at least one object), one bit per octant.
type Octans uint8

const (
	Q1 Octans = 1 << iota
	Q2
	Q3
	Q4
	Q5
	Q6
	Q7
	Q8
)

const octantCount = 8

// octantSign gives the center offset pattern (in units of the parent's
// quarter-extent) for each octant index i (whose bit is octantIndex(i)),
// matching the original engine's layout.
var octantSign = [octantCount]math.Vec3{
	0: {X: -1, Y: 1, Z: -1},  // Q1
	1: {X: 1, Y: 1, Z: -1},   // Q2
	2: {X: -1, Y: 1, Z: 1},   // Q3
	3: {X: 1, Y: 1, Z: 1},    // Q4
	4: {X: -1, Y: -1, Z: -1}, // Q5
	5: {X: 1, Y: -1, Z: -1},  // Q6
	6: {X: -1, Y: -1, Z: 1},  // Q7
	7: {X: 1, Y: -1, Z: 1},   // Q8
}

func octantIndex(i int) Octans { return Octans(1 << uint(i)) }

// OctreeNode owns a cube-shaped Bound and either a lazily-allocated set of
// eight children, or a flat list of handles it stores directly because they
// straddle more than one child cube.
type OctreeNode[T any] struct {
	Bound      Bound
	handles    []*T
	boundOf    func(*T) Bound
	parent     *OctreeNode[T]
	active     Octans
	children   [octantCount]*OctreeNode[T]
}

func newOctreeNode[T any](bound Bound, parent *OctreeNode[T], boundOf func(*T) Bound) *OctreeNode[T] {
	return &OctreeNode[T]{Bound: bound, parent: parent, boundOf: boundOf}
}

// createBoundChild computes the i'th child's cube: center shifted by a
// quarter of the parent's size along each axis per octantSign, half the
// parent's extents.
func (n *OctreeNode[T]) createBoundChild(i int) Bound {
	sign := octantSign[i]
	quarter := n.Bound.Extents.Mul(0.5)
	center := n.Bound.Center.Add(math.Vec3{
		X: sign.X * quarter.X,
		Y: sign.Y * quarter.Y,
		Z: sign.Z * quarter.Z,
	})
	return Bound{Center: center, Extents: n.Bound.Extents.Mul(0.5)}
}

// DivideAndAdd inserts obj into this node's subtree. If obj's bound is as
// large as (or larger than) this node's cube it straddles and is stored
// here directly. Otherwise it is routed into whichever octant fully
// contains it, lazily allocating that child.
//
// The active-octant bit for a child is only ever set once the child has
// actually accepted the object (Countain succeeded and the recursive add
// returned) — never before, unlike an insertion order that marks the bit
// optimistically and could leave it set with nothing stored if a later
// step in the same call failed.
func (n *OctreeNode[T]) DivideAndAdd(obj *T) {
	objBound := n.boundOf(obj)

	if objBound.GetSize().X >= n.Bound.GetSize().X {
		n.handles = append(n.handles, obj)
		return
	}

	for i := 0; i < octantCount; i++ {
		octanBound := n.createBoundChild(i)
		if !octanBound.Countain(objBound) {
			continue
		}

		idx := octantIndex(i)
		if n.children[i] == nil {
			n.children[i] = newOctreeNode(octanBound, n, n.boundOf)
		}
		n.children[i].DivideAndAdd(obj)
		n.active |= idx
		return
	}

	// No single octant contains it (straddles the center planes): keep it
	// at this level.
	n.handles = append(n.handles, obj)
}

// Objects returns every object stored directly at this node (not its
// descendants).
func (n *OctreeNode[T]) Objects() []*T {
	return n.handles
}

func (n *OctreeNode[T]) Child(i int) *OctreeNode[T] {
	return n.children[i]
}

func (n *OctreeNode[T]) IsOctanActive(i int) bool {
	return n.active&octantIndex(i) != 0
}

func (n *OctreeNode[T]) Parent() *OctreeNode[T] {
	return n.parent
}
