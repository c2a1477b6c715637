package gimbal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrUnknownNodeType is returned when a definition names a node type that
// has not been registered.
var ErrUnknownNodeType = errors.New("unknown node type")

// RigDef describes a rig in YAML.
type RigDef struct {
	Name  string   `yaml:"name"`
	Root  NodeDef  `yaml:"root"`
	Shake *NodeDef `yaml:"shake,omitempty"`
}

// NodeDef describes one node. Params is decoded by the node type's
// factory; Input and Children hold nested nodes for types that take them.
type NodeDef struct {
	Type     string    `yaml:"type"`
	Name     string    `yaml:"name,omitempty"`
	Params   yaml.Node `yaml:"params,omitempty"`
	Input    *NodeDef  `yaml:"input,omitempty"`
	Children []NodeDef `yaml:"children,omitempty"`
}

// DecodeParams decodes the node's params into v. Missing params leave v
// unchanged.
func (d *NodeDef) DecodeParams(v any) error {
	if d.Params.Kind == 0 {
		return nil
	}
	if err := d.Params.Decode(v); err != nil {
		return fmt.Errorf("%s params: %w", d.Type, err)
	}
	return nil
}

// DefContext is passed to node factories.
type DefContext struct {
	// Rand seeds random-driven nodes. It is never nil inside a factory.
	Rand *rand.Rand
}

// Node instantiates a nested definition.
func (c *DefContext) Node(def *NodeDef) (Evaluator, error) {
	factory, ok := nodeFactories[def.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, def.Type)
	}
	n, err := factory(c, def)
	if err != nil {
		if def.Name != "" {
			return nil, fmt.Errorf("node %s: %w", def.Name, err)
		}
		return nil, err
	}
	return n, nil
}

// Shake instantiates a nested definition that must be a shake node.
func (c *DefContext) Shake(def *NodeDef) (ShakeEvaluator, error) {
	n, err := c.Node(def)
	if err != nil {
		return nil, err
	}
	s, ok := n.(ShakeEvaluator)
	if !ok {
		return nil, fmt.Errorf("%s is not a shake node", def.Type)
	}
	return s, nil
}

// NodeFactory creates a node from its definition.
type NodeFactory func(ctx *DefContext, def *NodeDef) (Evaluator, error)

var nodeFactories = map[string]NodeFactory{}

// RegisterNodeType makes a node type available to rig definitions. Call it
// from package initialization; registering a name twice panics.
func RegisterNodeType(name string, factory NodeFactory) {
	if _, dup := nodeFactories[name]; dup {
		panic(fmt.Sprintf("gimbal: node type %q already registered", name))
	}
	nodeFactories[name] = factory
}

// NodeTypes returns the registered node type names, sorted.
func NodeTypes() []string {
	names := make([]string, 0, len(nodeFactories))
	for name := range nodeFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRigDef parses a YAML rig definition.
func ParseRigDef(data []byte) (*RigDef, error) {
	var def RigDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse rig: %w", err)
	}
	if def.Root.Type == "" {
		return nil, fmt.Errorf("parse rig: missing root node")
	}
	return &def, nil
}

// LoadRigDef reads and parses a YAML rig definition file.
func LoadRigDef(path string) (*RigDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load rig: %w", err)
	}
	return ParseRigDef(data)
}

// NewRig instantiates the definition. rng seeds random-driven nodes; nil
// uses a source seeded from the global generator.
func (d *RigDef) NewRig(rng *rand.Rand, opts ...RigOption) (*Rig, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ctx := &DefContext{Rand: rng}
	root, err := ctx.Node(&d.Root)
	if err != nil {
		return nil, fmt.Errorf("rig %s: %w", d.Name, err)
	}
	if d.Shake != nil {
		shake, err := ctx.Shake(d.Shake)
		if err != nil {
			return nil, fmt.Errorf("rig %s shake: %w", d.Name, err)
		}
		opts = append([]RigOption{WithShake(shake)}, opts...)
	}
	return NewRig(d.Name, root, opts...), nil
}

// --- parameter helpers ---

var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_out_sine":  ease.InOutSine,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,
}

// EaseFunc returns the easing curve registered under name.
func EaseFunc(name string) (ease.TweenFunc, error) {
	fn, ok := easeFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}

func variableRef(name string) VariableID {
	if name == "" {
		return VariableID{}
	}
	return NewVariableID(name)
}

type vec3Def [3]float64

func (v vec3Def) vec3() Vec3 { return Vec3(v) }

type rangeDef struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type interpolatorDef struct {
	Spring *struct {
		AngularFrequency float64 `yaml:"angular_frequency"`
		DampingRatio     float64 `yaml:"damping_ratio"`
	} `yaml:"spring,omitempty"`
	Tween *struct {
		Duration float32 `yaml:"duration"`
		Ease     string  `yaml:"ease"`
	} `yaml:"tween,omitempty"`
	Instant bool `yaml:"instant,omitempty"`
}

func (d *interpolatorDef) config() (InterpolatorConfig, error) {
	switch {
	case d == nil:
		return nil, nil
	case d.Spring != nil:
		return SpringInterpolatorConfig{
			AngularFrequency: d.Spring.AngularFrequency,
			DampingRatio:     d.Spring.DampingRatio,
		}, nil
	case d.Tween != nil:
		cfg := TweenInterpolatorConfig{Duration: d.Tween.Duration}
		if d.Tween.Ease != "" {
			fn, err := EaseFunc(d.Tween.Ease)
			if err != nil {
				return nil, err
			}
			cfg.Ease = fn
		}
		return cfg, nil
	case d.Instant:
		return InstantInterpolatorConfig{}, nil
	}
	return nil, nil
}

// --- built-in node types ---

func init() {
	RegisterNodeType("array", newArrayFromDef)
	RegisterNodeType("target", newTargetFromDef)
	RegisterNodeType("boom_arm", newBoomArmFromDef)
	RegisterNodeType("input2d", newInput2DFromDef)
	RegisterNodeType("input1d", newInput1DFromDef)
	RegisterNodeType("composite_shake", newCompositeShakeFromDef)
	RegisterNodeType("envelope_shake", newEnvelopeShakeFromDef)
	RegisterNodeType("noise_shake", newNoiseShakeFromDef)
	RegisterNodeType("simplex_shake", newSimplexShakeFromDef)
}

func newArrayFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	a := &ArrayEvaluator{}
	for i := range def.Children {
		n, err := ctx.Node(&def.Children[i])
		if err != nil {
			return nil, err
		}
		a.Nodes = append(a.Nodes, n)
	}
	return a, nil
}

func newTargetFromDef(_ *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Location         vec3Def `yaml:"location"`
		LocationVariable string  `yaml:"location_variable"`
		Offset           vec3Def `yaml:"offset"`
		FieldOfView      float64 `yaml:"fov"`
		FOVVariable      string  `yaml:"fov_variable"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	return &TargetEvaluator{
		Location:    Vec3Parameter{Value: p.Location.vec3(), Variable: variableRef(p.LocationVariable)},
		Offset:      p.Offset.vec3(),
		FieldOfView: FloatParameter{Value: p.FieldOfView, Variable: variableRef(p.FOVVariable)},
	}, nil
}

func newBoomArmFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Offset         vec3Def          `yaml:"offset"`
		OffsetVariable string           `yaml:"offset_variable"`
		Length         *interpolatorDef `yaml:"length_interpolator"`
		MaxForward     float64          `yaml:"max_forward_factor"`
		MaxBackward    float64          `yaml:"max_backward_factor"`
		Joint          string           `yaml:"joint"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	interp, err := p.Length.config()
	if err != nil {
		return nil, fmt.Errorf("boom_arm: %w", err)
	}
	b := &BoomArmEvaluator{
		BoomOffset:                     Vec3Parameter{Value: p.Offset.vec3(), Variable: variableRef(p.OffsetVariable)},
		LengthInterpolator:             interp,
		MaxForwardInterpolationFactor:  p.MaxForward,
		MaxBackwardInterpolationFactor: p.MaxBackward,
		YawPitchJoint:                  variableRef(p.Joint),
	}
	if def.Input != nil {
		n, err := ctx.Node(def.Input)
		if err != nil {
			return nil, err
		}
		in, ok := n.(Input2D)
		if !ok {
			return nil, fmt.Errorf("boom_arm: input %s is not a 2D input", def.Input.Type)
		}
		b.Input = in
	}
	return b, nil
}

func newInput2DFromDef(_ *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Axis         string    `yaml:"axis_variable"`
		Sensitivity  float64   `yaml:"sensitivity"`
		InitialYaw   float64   `yaml:"initial_yaw"`
		InitialPitch float64   `yaml:"initial_pitch"`
		PitchLimits  *rangeDef `yaml:"pitch_limits"`
		Output       string    `yaml:"output"`
	}
	p.Sensitivity = 1
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	n := &Input2DEvaluator{
		AxisVariable: variableRef(p.Axis),
		Sensitivity:  p.Sensitivity,
		Initial:      ebimath.V(p.InitialYaw, p.InitialPitch),
		Output:       variableRef(p.Output),
	}
	if p.PitchLimits != nil {
		if p.PitchLimits.Min > p.PitchLimits.Max {
			return nil, fmt.Errorf("input2d: pitch_limits min > max")
		}
		n.PitchLimits = Range{Min: p.PitchLimits.Min, Max: p.PitchLimits.Max}
	}
	return n, nil
}

func newInput1DFromDef(_ *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Initial float64   `yaml:"initial"`
		Limits  *rangeDef `yaml:"limits"`
		Output  string    `yaml:"output"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	n := &Input1DEvaluator{Initial: p.Initial, Output: variableRef(p.Output)}
	if p.Limits != nil {
		if p.Limits.Min > p.Limits.Max {
			return nil, fmt.Errorf("input1d: limits min > max")
		}
		n.Limits = Range{Min: p.Limits.Min, Max: p.Limits.Max}
	}
	return n, nil
}

func newCompositeShakeFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	c := &CompositeShakeEvaluator{}
	for i := range def.Children {
		s, err := ctx.Shake(&def.Children[i])
		if err != nil {
			return nil, err
		}
		c.Shakes = append(c.Shakes, s)
	}
	return c, nil
}

func newEnvelopeShakeFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		EaseIn  float64 `yaml:"ease_in"`
		EaseOut float64 `yaml:"ease_out"`
		Total   float64 `yaml:"total"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	if def.Input == nil {
		return nil, fmt.Errorf("envelope_shake: missing input shake")
	}
	s, err := ctx.Shake(def.Input)
	if err != nil {
		return nil, err
	}
	return NewEnvelopeShake(s, p.EaseIn, p.EaseOut, p.Total), nil
}

func newNoiseShakeFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Location    [3]NoiseConfig `yaml:"location"`
		Rotation    [3]NoiseConfig `yaml:"rotation"`
		FieldOfView NoiseConfig    `yaml:"fov"`
		Duration    float64        `yaml:"duration"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	return &NoiseShakeEvaluator{
		Location:    p.Location,
		Rotation:    p.Rotation,
		FieldOfView: p.FieldOfView,
		Duration:    p.Duration,
		Rand:        rand.New(rand.NewPCG(ctx.Rand.Uint64(), ctx.Rand.Uint64())),
	}, nil
}

func newSimplexShakeFromDef(ctx *DefContext, def *NodeDef) (Evaluator, error) {
	var p struct {
		Seed      *int64  `yaml:"seed"`
		Frequency float64 `yaml:"frequency"`
		Location  vec3Def `yaml:"location"`
		Rotation  struct {
			Pitch float64 `yaml:"pitch"`
			Yaw   float64 `yaml:"yaw"`
			Roll  float64 `yaml:"roll"`
		} `yaml:"rotation"`
		FieldOfView float64 `yaml:"fov"`
		Duration    float64 `yaml:"duration"`
	}
	if err := def.DecodeParams(&p); err != nil {
		return nil, err
	}
	seed := ctx.Rand.Int64()
	if p.Seed != nil {
		seed = *p.Seed
	}
	return &SimplexShakeEvaluator{
		Seed:              seed,
		Frequency:         p.Frequency,
		LocationAmplitude: p.Location.vec3(),
		RotationAmplitude: Rotator{Pitch: p.Rotation.Pitch, Yaw: p.Rotation.Yaw, Roll: p.Rotation.Roll},
		FieldOfView:       p.FieldOfView,
		Duration:          p.Duration,
	}, nil
}
