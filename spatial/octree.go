package spatial

import "rendercore/math"

// Octree is a cube-normalized spatial index over T, where boundOf extracts
// each element's world-space AABB. Update fully rebuilds the tree every
// call, and meshesdrawer.Drawer.BeginFrame calls it once per frame; there
// is no incremental update of an existing tree.
type Octree[T any] struct {
	root    *OctreeNode[T]
	boundOf func(*T) Bound
}

func NewOctree[T any](boundOf func(*T) Bound) *Octree[T] {
	return &Octree[T]{boundOf: boundOf}
}

func (o *Octree[T]) Root() *OctreeNode[T] {
	return o.root
}

// Update clears the tree and reinserts every object in objects, first
// encapsulating all of their bounds into a single mother box and then
// normalizing that box into a cube (the largest axis extent wins) so every
// octant subdivision is itself a cube.
func (o *Octree[T]) Update(objects []*T) {
	if len(objects) == 0 {
		o.root = nil
		return
	}

	mother := o.boundOf(objects[0])
	for _, obj := range objects[1:] {
		mother.EncapsulateBound(o.boundOf(obj))
	}

	size := mother.GetSize()
	largest := size.X
	if size.Y > largest {
		largest = size.Y
	}
	if size.Z > largest {
		largest = size.Z
	}
	half := largest * 0.5
	mother = Bound{Center: mother.Center, Extents: math.Vec3{X: half, Y: half, Z: half}}

	o.root = newOctreeNode(mother, nil, o.boundOf)
	for _, obj := range objects {
		o.root.DivideAndAdd(obj)
	}
}

// Query appends to out every object whose node (at any depth) passes test,
// walking the tree with an OctreeIterator rather than recursion.
func (o *Octree[T]) Query(test func(Bound) bool, out []*T) []*T {
	if o.root == nil {
		return out
	}
	if !test(o.root.Bound) {
		return out
	}
	out = append(out, o.root.Objects()...)

	it := NewOctreeIterator(o.root)
	for it.Iterate() {
		node := it.Current()
		if !test(node.Bound) {
			continue
		}
		out = append(out, node.Objects()...)
	}
	return out
}
