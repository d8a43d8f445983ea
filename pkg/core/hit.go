package core

// HitInfo describes a successful ray-object intersection.
// It can only be built through NewHitInfo and is never modified afterwards.
type HitInfo struct {
	tMin   float64
	normal Normal3D
	point  Point3D
}

// NewHitInfo creates a hit record. normal must already be unit length.
func NewHitInfo(tMin float64, normal Normal3D, point Point3D) HitInfo {
	return HitInfo{tMin: tMin, normal: normal, point: point}
}

// TMin returns the smallest valid ray parameter of the intersection
func (h HitInfo) TMin() float64 { return h.tMin }

// Normal returns the unit surface normal at the hit
func (h HitInfo) Normal() Normal3D { return h.normal }

// Point returns the hit point in world space
func (h HitInfo) Point() Point3D { return h.point }
