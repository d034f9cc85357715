// Package kernel defines the abstract solid-modeling interface used to turn
// assembled structures into meshes. The sdfx implementation provides
// primitives and boolean operations behind this interface so the meshing
// backend can be swapped without touching the rest of the system.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling interface.
type Kernel interface {
	// Primitives. Both are centered on the origin; Box takes full edge
	// lengths, Cylinder's axis is Y.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations.
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Transforms. RotateY takes radians.
	Translate(s Solid, x, y, z float64) Solid
	RotateY(s Solid, angle float64) Solid

	// Mesh output.
	ToMesh(s Solid) (*Mesh, error)
}
