package gimbal

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// LerpAll blends r toward to by factor: the pose component-wise, the field
// of view linearly, and joints per RigJoints.LerpAll. The camera cut flag
// and variable table are left as they are.
func (r *EvaluationResult) LerpAll(to *EvaluationResult, factor float64) {
	r.Pose = LerpTransform(r.Pose, to.Pose, factor)
	r.FieldOfView = lerp(r.FieldOfView, to.FieldOfView, factor)
	r.Joints.LerpAll(&to.Joints, factor)
}

// Blender cross-fades the output of an outgoing rig into an incoming rig.
// Both rigs are updated while the blend runs. Once it completes the
// outgoing rig is deactivated and only the incoming rig is evaluated.
type Blender struct {
	From *Rig
	To   *Rig
	// Logger receives blend lifecycle events. Nil discards them.
	Logger *zap.Logger

	tween  *gween.Tween
	factor float64
	done   bool
	result *EvaluationResult
}

// NewBlender returns a blender from one rig to another over duration
// seconds. A nil fn uses ease.InOutQuad. A nil from or a non-positive
// duration switches to the incoming rig immediately.
func NewBlender(from, to *Rig, duration float32, fn ease.TweenFunc) *Blender {
	if to == nil {
		panic("gimbal: NewBlender requires an incoming rig")
	}
	if fn == nil {
		fn = ease.InOutQuad
	}
	b := &Blender{From: from, To: to, result: NewEvaluationResult(to.Variables())}
	if from == nil || duration <= 0 {
		b.factor = 1
		b.done = true
	} else {
		b.tween = gween.New(0, 1, duration, fn)
	}
	return b
}

// Factor returns the current blend weight of the incoming rig.
func (b *Blender) Factor() float64 { return b.factor }

// Done reports whether the blend has completed.
func (b *Blender) Done() bool { return b.done }

// Result returns the result of the last Update.
func (b *Blender) Result() *EvaluationResult { return b.result }

func (b *Blender) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Update advances both rigs and the blend by dt seconds and returns the
// blended result. The result is a camera cut only if the outgoing side is.
func (b *Blender) Update(dt float64) *EvaluationResult {
	toResult := b.To.Update(dt)
	if b.done {
		b.result.OverrideAll(toResult)
		return b.result
	}

	fromResult := b.From.Update(dt)
	v, finished := b.tween.Update(float32(dt))
	b.factor = clamp01(float64(v))
	if finished {
		b.factor = 1
	}

	b.result.OverrideAll(fromResult)
	b.result.LerpAll(toResult, b.factor)

	if finished {
		b.done = true
		b.From.Deactivate()
		b.logger().Debug("blend finished",
			zap.String("from", b.From.Name),
			zap.String("to", b.To.Name))
	}
	return b.result
}
