package gimbal

import (
	ebimath "github.com/edwinsyarief/ebi-math"
	"go.uber.org/zap"
)

// DefaultYawPitchJoint is the joint a boom arm exposes when YawPitchJoint
// is not set.
var DefaultYawPitchJoint = NewVariableID("gimbal.boom_arm.yaw_pitch")

// Input2D is a node producing a 2D input, interpreted by boom arms as
// (yaw, pitch) in degrees.
type Input2D interface {
	Evaluator
	Input2DValue() ebimath.Vector
}

// BoomArmEvaluator offsets the camera from a pivot along a rotated boom.
//
// The pivot is the incoming pose location. The boom rotation comes from the
// Input node when set, else from the context's controller. With a
// LengthInterpolator and a non-zero default boom length, pivot movement
// along the boom's forward axis is absorbed as "pull" that springs back to
// zero, compressing or extending the boom for a few frames.
type BoomArmEvaluator struct {
	// Input optionally supplies yaw and pitch.
	Input Input2D
	// BoomOffset is the camera offset in the boom's rotated frame. Its
	// default value's length is the default boom length.
	BoomOffset Vec3Parameter
	// LengthInterpolator enables the pull spring. Nil keeps the boom rigid.
	LengthInterpolator InterpolatorConfig
	// MaxForwardInterpolationFactor limits forward push to this fraction of
	// the default boom length. Zero means unlimited.
	MaxForwardInterpolationFactor float64
	// MaxBackwardInterpolationFactor limits backward pull likewise.
	MaxBackwardInterpolationFactor float64
	// YawPitchJoint identifies the pivot joint recorded every frame.
	YawPitchJoint VariableID

	lengthInterpolator Interpolator
	defaultBoomLength  float64
	lastPivotLocation  Vec3
	cumulativePull     float64
	boomRotation       Rotator
	clampActive        bool
}

// Build implements Evaluator.
func (b *BoomArmEvaluator) Build(ctx *BuildContext) {
	b.defaultBoomLength = b.BoomOffset.Value.Len()
	if !b.YawPitchJoint.IsValid() {
		b.YawPitchJoint = DefaultYawPitchJoint
	}
	b.lengthInterpolator = nil
	if b.LengthInterpolator != nil {
		b.resetSpring()
		if b.defaultBoomLength == 0 {
			ctx.logger().Warn("boom arm has a length interpolator but a zero-length offset; spring disabled")
		}
	}
}

// Initialize implements Evaluator. The pull spring starts over with no
// velocity.
func (b *BoomArmEvaluator) Initialize(_ *InitializeParams, result *EvaluationResult) {
	b.cumulativePull = 0
	b.clampActive = false
	b.lastPivotLocation = result.Pose.Location
	b.resetSpring()
}

// resetSpring replaces the length interpolator with a fresh one so that no
// motion carries over from an earlier activation.
func (b *BoomArmEvaluator) resetSpring() {
	if b.LengthInterpolator != nil {
		b.lengthInterpolator = b.LengthInterpolator.NewInterpolator()
	}
}

// Children implements Evaluator.
func (b *BoomArmEvaluator) Children() []Evaluator {
	if b.Input == nil {
		return nil
	}
	return []Evaluator{b.Input}
}

// CumulativePull returns the pull applied on the last frame.
func (b *BoomArmEvaluator) CumulativePull() float64 {
	return b.cumulativePull
}

// BoomRotation returns the boom rotation used on the last frame.
func (b *BoomArmEvaluator) BoomRotation() Rotator {
	return b.boomRotation
}

func (b *BoomArmEvaluator) springEnabled() bool {
	return b.lengthInterpolator != nil && b.defaultBoomLength > 0
}

// Run implements Evaluator.
func (b *BoomArmEvaluator) Run(params *EvaluationParams, result *EvaluationResult) {
	b.boomRotation = b.resolveRotation(params, result)

	pivot := Transform{Location: result.Pose.Location, Rotation: b.boomRotation, Scale: result.Pose.Scale}
	offset := b.BoomOffset.Resolve(result.Variables)
	final := pivot.TranslateLocal(offset)

	if b.springEnabled() {
		forward := b.boomRotation.Forward()
		switch {
		case params.IsFirstFrame:
			b.cumulativePull = 0
			b.clampActive = false
			b.resetSpring()
		case result.IsCameraCut:
			// Keep last frame's pull so the cut itself does not pop.
			final.Location = final.Location.Sub(forward.Mul(b.cumulativePull))
		default:
			movement := pivot.Location.Sub(b.lastPivotLocation)
			b.cumulativePull += movement.Dot(forward)
			b.lengthInterpolator.Reset(b.cumulativePull, 0)
			pull := b.clampPull(b.lengthInterpolator.Run(params.DeltaTime))
			final.Location = final.Location.Sub(forward.Mul(pull))
			b.cumulativePull = pull
		}
		b.lastPivotLocation = pivot.Location
	}

	result.Pose = final
	result.Joints.AddJoint(b.YawPitchJoint, pivot)
}

func (b *BoomArmEvaluator) resolveRotation(params *EvaluationParams, result *EvaluationResult) Rotator {
	if b.Input != nil {
		b.Input.Run(params, result)
		v := b.Input.Input2DValue()
		return Rotator{Yaw: v.X, Pitch: v.Y}
	}
	if ctrl := params.Context.controller(); ctrl != nil {
		return ctrl.CurrentRotation()
	}
	return result.Pose.Rotation
}

// clampPull limits pull to the configured fractions of the default length.
// Negative pull is a forward push.
func (b *BoomArmEvaluator) clampPull(pull float64) float64 {
	b.clampActive = false
	if pull < 0 && b.MaxForwardInterpolationFactor > 0 {
		limit := -b.defaultBoomLength * b.MaxForwardInterpolationFactor
		if pull < limit {
			pull = limit
			b.clampActive = true
		}
	} else if pull > 0 && b.MaxBackwardInterpolationFactor > 0 {
		limit := b.defaultBoomLength * b.MaxBackwardInterpolationFactor
		if pull > limit {
			pull = limit
			b.clampActive = true
		}
	}
	return pull
}

// ExecuteOperation implements OperationHandler. Without an input node the
// boom steers the controller directly, so it applies yaw/pitch operations
// to the controller; everything else goes to the input node.
func (b *BoomArmEvaluator) ExecuteOperation(params *OperationParams, op Operation) {
	if b.Input != nil {
		ForwardOperation(params, b, op)
		return
	}
	yawPitch, ok := CastOperation[*YawPitchOperation](op)
	if !ok {
		return
	}
	ctrl := params.Context.controller()
	if ctrl == nil {
		return
	}
	rot := ctrl.CurrentRotation()
	rot.Yaw = yawPitch.Yaw.Apply(rot.Yaw)
	rot.Pitch = yawPitch.Pitch.Apply(rot.Pitch)
	ctrl.SetCurrentRotation(rot)
}

// SaveState implements StateSerializer.
func (b *BoomArmEvaluator) SaveState(rec *StateRecord) {
	rec.Put("cumulative_pull", b.cumulativePull)
	rec.Put("last_pivot_x", b.lastPivotLocation[0])
	rec.Put("last_pivot_y", b.lastPivotLocation[1])
	rec.Put("last_pivot_z", b.lastPivotLocation[2])
}

// LoadState implements StateSerializer.
func (b *BoomArmEvaluator) LoadState(rec *StateRecord) error {
	var err error
	if b.cumulativePull, err = rec.Take("cumulative_pull"); err != nil {
		return err
	}
	for i, name := range []string{"last_pivot_x", "last_pivot_y", "last_pivot_z"} {
		if b.lastPivotLocation[i], err = rec.Take(name); err != nil {
			return err
		}
	}
	return nil
}

// DebugSnapshot implements DebugReporter.
func (b *BoomArmEvaluator) DebugSnapshot() DebugSnapshot {
	var s DebugSnapshot
	s.Addf("yaw", "%.2f", b.boomRotation.Yaw)
	s.Addf("pitch", "%.2f", b.boomRotation.Pitch)
	s.Addf("pull", "%.3f", b.cumulativePull)
	s.Addf("clamped", "%t", b.clampActive)
	if !b.springEnabled() {
		s.Addf("spring", "off")
	}
	return s
}

// logFields returns structured fields describing the boom's last frame.
func (b *BoomArmEvaluator) logFields() []zap.Field {
	return []zap.Field{
		zap.Float64("yaw", b.boomRotation.Yaw),
		zap.Float64("pitch", b.boomRotation.Pitch),
		zap.Float64("pull", b.cumulativePull),
		zap.Bool("clamped", b.clampActive),
	}
}
