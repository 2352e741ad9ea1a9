package bvh

import "github.com/go-gl/mathgl/mgl32"

// BoxInFrustum checks if an AABB is visible within the frustum defined by 6
// planes. Planes are in Ax+By+Cz+D=0 form with the normal pointing inside.
func BoxInFrustum(b AABB, planes [6]mgl32.Vec4) bool {
	for i := 0; i < 6; i++ {
		plane := planes[i]
		// The corner furthest along the normal; if it is behind the plane
		// the whole box is.
		var p mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if plane[axis] > 0 {
				p[axis] = b.Max[axis]
			} else {
				p[axis] = b.Min[axis]
			}
		}
		if plane[0]*p[0]+plane[1]*p[1]+plane[2]*p[2]+plane[3] < 0 {
			return false
		}
	}
	return true
}

// Cull calls fn for every primitive whose bounds intersect the frustum.
// Subtrees whose bounds are outside are skipped.
func (t *Tree) Cull(planes [6]mgl32.Vec4, fn func(id int)) {
	if t == nil || !BoxInFrustum(t.bounds, planes) {
		return
	}
	stack := make([]ChildRef, 0, 2*MaxWidth)
	stack = append(stack, t.root)
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if ref.IsLeaf() {
			for _, id := range t.LeafIDs(ref) {
				if BoxInFrustum(t.primBounds[id], planes) {
					fn(id)
				}
			}
			continue
		}
		n := &t.nodes[ref.Index]
		for slot := n.Width() - 1; slot >= 0; slot-- {
			if BoxInFrustum(n.ChildBounds(slot), planes) {
				stack = append(stack, n.Children[slot])
			}
		}
	}
}
