package gimbal

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRigDefFollow(t *testing.T) {
	def, err := LoadRigDef("testdata/follow.yaml")
	require.NoError(t, err)
	assert.Equal(t, "follow", def.Name)
	require.NotNil(t, def.Shake)

	rig, err := def.NewRig(rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	root, ok := rig.Root().(*ArrayEvaluator)
	require.True(t, ok)
	require.Len(t, root.Nodes, 2)

	target := root.Nodes[0].(*TargetEvaluator)
	assert.Equal(t, NewVariableID("player"), target.Location.Variable)
	assert.Equal(t, Vec3{0, 0, 1.6}, target.Offset)

	boom := root.Nodes[1].(*BoomArmEvaluator)
	assert.Equal(t, Vec3{-4, 0.5, 1}, boom.BoomOffset.Value)
	assert.Equal(t, SpringInterpolatorConfig{AngularFrequency: 6, DampingRatio: 1}, boom.LengthInterpolator)
	assert.Equal(t, 0.5, boom.MaxForwardInterpolationFactor)

	look := boom.Input.(*Input2DEvaluator)
	assert.Equal(t, NewVariableID("look"), look.AxisVariable)
	assert.Equal(t, 90.0, look.Sensitivity)
	assert.Equal(t, Range{Min: -60, Max: 60}, look.PitchLimits)

	shake := rig.ShakeRoot().(*CompositeShakeEvaluator)
	require.Len(t, shake.Shakes, 2)
	env := shake.Shakes[0].(*EnvelopeShakeEvaluator)
	assert.Equal(t, 0.8, env.TotalTime())
	noise := env.Shake.(*NoiseShakeEvaluator)
	assert.Equal(t, NoiseConfig{Amplitude: 0.1, Frequency: 12, Octaves: 2}, noise.Location[1])
	simplex := shake.Shakes[1].(*SimplexShakeEvaluator)
	assert.Equal(t, int64(7), simplex.Seed)
	assert.Equal(t, Rotator{Roll: 0.5}, simplex.RotationAmplitude)

	assert.Equal(t, 8, CountNodes(rig.Root())+CountNodes(rig.ShakeRoot()))
	assert.NotPanics(t, func() { rig.Update(1.0 / 60) })
}

func TestRigDefIsReproducibleWithSeed(t *testing.T) {
	def, err := LoadRigDef("testdata/follow.yaml")
	require.NoError(t, err)

	run := func() Transform {
		rig, err := def.NewRig(rand.New(rand.NewPCG(9, 9)))
		require.NoError(t, err)
		rig.Variables().Set(NewVariableID("player"), Vec3{1, 2, 0})
		var res *EvaluationResult
		for i := 0; i < 10; i++ {
			res = rig.Update(1.0 / 60)
		}
		return res.Pose
	}
	assert.Equal(t, run(), run())
}

func TestParseRigDefErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "root: ["},
		{"missing root", "name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRigDef([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRigDefInstantiationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		unknown bool
	}{
		{"unknown root", "root: {type: dolly}", true},
		{"unknown nested", "root: {type: array, children: [{type: crane}]}", true},
		{"shake root not a shake", "root: {type: array}\nshake: {type: target}", false},
		{"envelope without input", "root: {type: array}\nshake: {type: envelope_shake}", false},
		{"boom input not 2d", "root: {type: boom_arm, input: {type: input1d}}", false},
		{"inverted pitch limits", "root: {type: input2d, params: {pitch_limits: {min: 10, max: -10}}}", false},
		{"bad params", "root: {type: target, params: {offset: oops}}", false},
		{"unknown ease", "root: {type: boom_arm, params: {length_interpolator: {tween: {duration: 1, ease: wobble}}}}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseRigDef([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = def.NewRig(nil)
			require.Error(t, err)
			assert.Equal(t, tt.unknown, errors.Is(err, ErrUnknownNodeType))
		})
	}
}

func TestRigDefInterpolators(t *testing.T) {
	tests := []struct {
		yaml string
		want InterpolatorConfig
	}{
		{"{}", nil},
		{"{length_interpolator: {instant: true}}", InstantInterpolatorConfig{}},
		{"{length_interpolator: {tween: {duration: 0.5}}}", TweenInterpolatorConfig{Duration: 0.5}},
	}
	for _, tt := range tests {
		def, err := ParseRigDef([]byte("root: {type: boom_arm, params: " + tt.yaml + "}"))
		require.NoError(t, err)
		rig, err := def.NewRig(nil)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rig.Root().(*BoomArmEvaluator).LengthInterpolator, tt.yaml)
	}
}

func TestInput2DDefDefaults(t *testing.T) {
	def, err := ParseRigDef([]byte("root: {type: input2d}"))
	require.NoError(t, err)
	rig, err := def.NewRig(nil)
	require.NoError(t, err)
	n := rig.Root().(*Input2DEvaluator)
	assert.Equal(t, 1.0, n.Sensitivity)
	assert.True(t, n.PitchLimits.IsZero())
}

func TestRegisterNodeType(t *testing.T) {
	if !slices.Contains(NodeTypes(), "test_fixed_fov") {
		RegisterNodeType("test_fixed_fov", fixedFOVFromDef)
	}
	assert.Contains(t, NodeTypes(), "test_fixed_fov")
	assert.IsIncreasing(t, NodeTypes())

	def, err := ParseRigDef([]byte("root: {type: test_fixed_fov, params: {fov: 70}}"))
	require.NoError(t, err)
	rig, err := def.NewRig(nil)
	require.NoError(t, err)
	assert.Equal(t, 70.0, rig.Update(0.1).FieldOfView)

	assert.PanicsWithValue(t, `gimbal: node type "array" already registered`, func() {
		RegisterNodeType("array", newArrayFromDef)
	})
}

func TestEaseFunc(t *testing.T) {
	fn, err := EaseFunc("linear")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fn(0.5, 0, 1, 1), 1e-6)

	_, err = EaseFunc("nope")
	assert.Error(t, err)
}

func fixedFOVFromDef(_ *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		FOV float64 `yaml:"fov"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	return &TargetEvaluator{FieldOfView: FloatParameter{Value: p.FOV}}, nil
}
