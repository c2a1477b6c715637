package gimbal

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3D vector used for locations, offsets, scales, and directions
// throughout the API. World space is X forward, Y right, Z up.
type Vec3 = mgl64.Vec3

// Axis vectors of the world frame.
var (
	AxisForward = Vec3{1, 0, 0}
	AxisRight   = Vec3{0, 1, 0}
	AxisUp      = Vec3{0, 0, 1}
)

// Rotator is an orientation expressed as Euler angles in degrees.
// Yaw turns around Z, Pitch tilts the forward axis up (positive) or down,
// Roll turns around the forward axis.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Add returns the component-wise sum of r and o.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

// Scale returns r with every component multiplied by s.
func (r Rotator) Scale(s float64) Rotator {
	return Rotator{Pitch: r.Pitch * s, Yaw: r.Yaw * s, Roll: r.Roll * s}
}

// Quat returns the quaternion for this rotator. Rotations are applied
// roll first, then pitch, then yaw.
func (r Rotator) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(r.Yaw), AxisUp)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(-r.Pitch), AxisRight)
	roll := mgl64.QuatRotate(mgl64.DegToRad(r.Roll), AxisForward)
	return yaw.Mul(pitch).Mul(roll)
}

// Forward returns the unit forward axis of this rotator.
func (r Rotator) Forward() Vec3 {
	return r.Quat().Rotate(AxisForward)
}

// Transform is a location, rotation, and scale triple.
type Transform struct {
	Location Vec3
	Rotation Rotator
	Scale    Vec3
}

// IdentityTransform has no translation or rotation and unit scale.
var IdentityTransform = Transform{Scale: Vec3{1, 1, 1}}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return mgl64.Clamp(v, r.Min, r.Max)
}

// IsZero reports whether both bounds are zero, which nodes treat as unbounded.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}
