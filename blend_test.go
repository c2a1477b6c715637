package gimbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newFixedRig(name string, loc Vec3, fov float64, joint VariableID) *Rig {
	return NewRig(name, &jointNode{
		TargetEvaluator: TargetEvaluator{
			Location:    Vec3Parameter{Value: loc},
			FieldOfView: FloatParameter{Value: fov},
		},
		joint: joint,
	})
}

// jointNode is a target that also exposes a joint at its location.
type jointNode struct {
	TargetEvaluator
	joint VariableID
}

func (n *jointNode) Run(params *EvaluationParams, result *EvaluationResult) {
	n.TargetEvaluator.Run(params, result)
	result.Joints.AddJoint(n.joint, result.Pose)
}

func TestBlenderCrossFades(t *testing.T) {
	from := newFixedRig("from", Vec3{0, 0, 0}, 60, jointA)
	to := newFixedRig("to", Vec3{10, 0, 0}, 100, jointB)
	core, logs := observer.New(zapcore.DebugLevel)
	b := NewBlender(from, to, 1, ease.Linear)
	b.Logger = zap.New(core)

	res := b.Update(0.25)
	assertNear(t, "factor", b.Factor(), 0.25)
	assertVec3(t, "location", res.Pose.Location, Vec3{2.5, 0, 0})
	assertNear(t, "fov", res.FieldOfView, 70)
	assert.True(t, res.IsCameraCut, "cut follows the outgoing rig")
	assert.Equal(t, []RigJoint{{jointA, at(0, 0, 0)}}, res.Joints.Joints(), "outgoing joint kept below the crossover")

	res = b.Update(0.5)
	assertNear(t, "factor", b.Factor(), 0.75)
	assert.False(t, res.IsCameraCut)
	assert.Equal(t, []RigJoint{{jointB, at(10, 0, 0)}}, res.Joints.Joints(), "incoming joint switched in")
	assert.False(t, b.Done())

	res = b.Update(0.5)
	assert.True(t, b.Done())
	assert.Equal(t, 1.0, b.Factor())
	assertVec3(t, "location", res.Pose.Location, Vec3{10, 0, 0})
	assert.False(t, from.IsActive(), "outgoing rig is deactivated")
	assert.Equal(t, 1, logs.FilterMessage("blend finished").Len())
	assert.Same(t, res, b.Result())
}

func TestBlenderAfterDoneFollowsIncoming(t *testing.T) {
	from := newFixedRig("from", Vec3{0, 0, 0}, 60, jointA)
	to := newFixedRig("to", Vec3{10, 0, 0}, 100, jointB)
	b := NewBlender(from, to, 0.1, nil)
	b.Update(0.2)
	require.True(t, b.Done())

	to.Variables().Set(testTarget, Vec3{}) // unrelated write must not matter
	res := b.Update(0.1)
	assertVec3(t, "location", res.Pose.Location, Vec3{10, 0, 0})
	assert.Equal(t, 100.0, res.FieldOfView)
	assert.False(t, from.IsActive())
}

func TestBlenderImmediate(t *testing.T) {
	to := newFixedRig("to", Vec3{1, 2, 3}, 80, jointB)

	for name, b := range map[string]*Blender{
		"nil from":      NewBlender(nil, to, 1, nil),
		"zero duration": NewBlender(newFixedRig("from", Vec3{}, 50, jointA), to, 0, nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, b.Done())
			res := b.Update(0.1)
			assertVec3(t, "location", res.Pose.Location, Vec3{1, 2, 3})
			assert.Equal(t, 80.0, res.FieldOfView)
		})
	}
}

func TestNewBlenderRequiresIncoming(t *testing.T) {
	assert.PanicsWithValue(t, "gimbal: NewBlender requires an incoming rig", func() {
		NewBlender(newFixedRig("from", Vec3{}, 50, jointA), nil, 1, nil)
	})
}
