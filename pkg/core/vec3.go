package core

import (
	"fmt"
	"math"
)

// Squared-magnitude band inside which a vector is already considered unit length
const (
	unitLowerBound = 0.999999
	unitUpperBound = 1.000001
)

// Point3D represents a position in scene space
type Point3D struct {
	X, Y, Z float64
}

// NewPoint3D creates a new Point3D
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Origin returns the point (0, 0, 0)
func Origin() Point3D {
	return Point3D{}
}

// Subtract returns the displacement from other to p
func (p Point3D) Subtract(other Point3D) Vector3D {
	return Vector3D{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Add returns the point displaced by v
func (p Point3D) Add(v Vector3D) Point3D {
	return Point3D{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Vector3D represents a free direction or displacement
type Vector3D struct {
	X, Y, Z float64
}

// NewVector3D creates a new Vector3D
func NewVector3D(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vector3D) Subtract(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns the negative of the vector
func (v Vector3D) Negate() Vector3D {
	return Vector3D{-v.X, -v.Y, -v.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vector3D) Multiply(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Dot returns the dot product of two vectors
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector3D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vector3D) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns a unit vector in the same direction.
// A vector whose squared length is already within [0.999999, 1.000001] is
// returned unchanged. The caller must never pass a zero-length vector: doing
// so panics.
func (v Vector3D) Normalize() Vector3D {
	x, y, z := normalize(v.X, v.Y, v.Z)
	return Vector3D{x, y, z}
}

// ToNormal reinterprets the vector as a surface normal without normalizing it
func (v Vector3D) ToNormal() Normal3D {
	return Normal3D{v.X, v.Y, v.Z}
}

// Normal3D is a surface normal. It shares Vector3D's layout but is a distinct
// type so a raw displacement cannot be passed where a unit normal is expected.
type Normal3D struct {
	X, Y, Z float64
}

// NewNormal3D creates a new Normal3D
func NewNormal3D(x, y, z float64) Normal3D {
	return Normal3D{X: x, Y: y, Z: z}
}

// Dot returns the dot product with a vector
func (n Normal3D) Dot(v Vector3D) float64 {
	return n.X*v.X + n.Y*v.Y + n.Z*v.Z
}

// DotNormal returns the dot product with another normal
func (n Normal3D) DotNormal(other Normal3D) float64 {
	return n.X*other.X + n.Y*other.Y + n.Z*other.Z
}

// Multiply scales the normal
func (n Normal3D) Multiply(scalar float64) Normal3D {
	return Normal3D{n.X * scalar, n.Y * scalar, n.Z * scalar}
}

// Negate flips the normal
func (n Normal3D) Negate() Normal3D {
	return Normal3D{-n.X, -n.Y, -n.Z}
}

// LengthSquared returns the squared magnitude of the normal
func (n Normal3D) LengthSquared() float64 {
	return n.X*n.X + n.Y*n.Y + n.Z*n.Z
}

// Normalize follows the same rules as Vector3D.Normalize, including the panic
// on a zero-length input.
func (n Normal3D) Normalize() Normal3D {
	x, y, z := normalize(n.X, n.Y, n.Z)
	return Normal3D{x, y, z}
}

// ToVector converts the normal to a free vector
func (n Normal3D) ToVector() Vector3D {
	return Vector3D{n.X, n.Y, n.Z}
}

func normalize(x, y, z float64) (float64, float64, float64) {
	lengthSq := x*x + y*y + z*z
	if lengthSq > unitLowerBound && lengthSq < unitUpperBound {
		return x, y, z
	}
	if lengthSq == 0 {
		panic(fmt.Sprintf("core: cannot normalize zero-length vector (%g, %g, %g)", x, y, z))
	}
	inverse := 1.0 / math.Sqrt(lengthSq)
	return x * inverse, y * inverse, z * inverse
}

// Ray represents a ray p = origin + t*direction.
// The direction does not have to be normalized.
type Ray struct {
	Origin    Point3D
	Direction Vector3D
}

// NewRay creates a new ray
func NewRay(origin Point3D, direction Vector3D) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3D {
	return r.Origin.Add(r.Direction.Multiply(t))
}
