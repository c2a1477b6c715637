package gimbal

import "math"

// TransformPosition maps a point from this transform's local space into
// the parent space: scale, then rotate, then translate.
func (t Transform) TransformPosition(local Vec3) Vec3 {
	scaled := Vec3{local[0] * t.Scale[0], local[1] * t.Scale[1], local[2] * t.Scale[2]}
	return t.Rotation.Quat().Rotate(scaled).Add(t.Location)
}

// TransformVector rotates a direction by this transform, ignoring translation
// and scale.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Quat().Rotate(v)
}

// TranslateLocal returns t moved by offset expressed in t's own rotated
// frame. Equivalent to composing Translate(offset) before t.
func (t Transform) TranslateLocal(offset Vec3) Transform {
	out := t
	out.Location = t.Location.Add(t.Rotation.Quat().Rotate(offset))
	return out
}

// Forward returns the transform's forward axis in parent space.
func (t Transform) Forward() Vec3 {
	return t.Rotation.Forward()
}

// LerpTransform interpolates every component of a and b independently.
// Rotation is lerped per Euler component, not along the shortest arc.
func LerpTransform(a, b Transform, alpha float64) Transform {
	return Transform{
		Location: lerpVec3(a.Location, b.Location, alpha),
		Rotation: lerpRotator(a.Rotation, b.Rotation, alpha),
		Scale:    lerpVec3(a.Scale, b.Scale, alpha),
	}
}

// lerp is exact at both endpoints.
func lerp(a, b, alpha float64) float64 {
	return a*(1-alpha) + b*alpha
}

func lerpVec3(a, b Vec3, alpha float64) Vec3 {
	return Vec3{lerp(a[0], b[0], alpha), lerp(a[1], b[1], alpha), lerp(a[2], b[2], alpha)}
}

func lerpRotator(a, b Rotator, alpha float64) Rotator {
	return Rotator{
		Pitch: lerp(a.Pitch, b.Pitch, alpha),
		Yaw:   lerp(a.Yaw, b.Yaw, alpha),
		Roll:  lerp(a.Roll, b.Roll, alpha),
	}
}

// smoothstep is the cubic Hermite ramp 3x^2 - 2x^3 on x clamped to [0, 1].
func smoothstep(x float64) float64 {
	x = clamp01(x)
	return x * x * (3 - 2*x)
}

// smootherstep is the quintic ramp 6x^5 - 15x^4 + 10x^3 on x clamped to [0, 1].
func smootherstep(x float64) float64 {
	x = clamp01(x)
	return x * x * x * (x*(x*6-15) + 10)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
