package gimbal

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PoseSink is the interface for optional host integration. When set on a
// Rig, every evaluated frame is forwarded to it.
type PoseSink interface {
	EmitPose(event PoseEvent)
}

// PoseEvent carries one frame's output for a PoseSink.
type PoseEvent struct {
	Rig           string
	Pose          Transform
	FieldOfView   float64
	IsCameraCut   bool
	ShakeTimeLeft float64
}

type rigState uint8

const (
	rigUnbuilt rigState = iota
	rigBuilt
	rigActive
)

// fieldLogger is implemented by nodes that add structured fields to a rig's
// per-frame debug log.
type fieldLogger interface {
	logFields() []zap.Field
}

// RigOption configures a Rig.
type RigOption func(*Rig)

// WithLogger sets the rig's logger. The default discards everything.
func WithLogger(logger *zap.Logger) RigOption {
	return func(r *Rig) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithShake sets the shake tree applied after the main tree every frame.
func WithShake(shake ShakeEvaluator) RigOption {
	return func(r *Rig) { r.shake = shake }
}

// WithController sets the controller exposed to nodes through the
// evaluation context.
func WithController(c Controller) RigOption {
	return func(r *Rig) { r.context.Controller = c }
}

// WithMetrics makes the rig report to m.
func WithMetrics(m *Metrics) RigOption {
	return func(r *Rig) { r.metrics = m }
}

// WithVariables shares an existing variable table with the rig instead of
// creating a new one.
func WithVariables(t *VariableTable) RigOption {
	return func(r *Rig) {
		if t != nil {
			r.variables = t
		}
	}
}

// WithPoseSink forwards every evaluated frame to sink.
func WithPoseSink(sink PoseSink) RigOption {
	return func(r *Rig) { r.sink = sink }
}

// Rig owns a node tree, an optional shake tree, and the state threaded
// through them. It is the top-level object hosts drive once per frame.
//
// A rig is built on first use, initialized when activated, and evaluated by
// Update. It is not safe for concurrent use.
type Rig struct {
	Name string

	root      Evaluator
	shake     ShakeEvaluator
	context   EvaluationContext
	variables *VariableTable
	result    *EvaluationResult
	logger    *zap.Logger
	metrics   *Metrics
	sink      PoseSink

	state         rigState
	nodeCount     int
	firstFrame    bool
	pendingCut    bool
	shakeTimeLeft float64
	injectQueue   []injectedOperation
	loggers       []fieldLogger
}

// NewRig creates an unbuilt rig evaluating root.
func NewRig(name string, root Evaluator, opts ...RigOption) *Rig {
	r := &Rig{
		Name:      name,
		root:      root,
		variables: NewVariableTable(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.result = NewEvaluationResult(r.variables)
	return r
}

// Root returns the rig's root node.
func (r *Rig) Root() Evaluator { return r.root }

// ShakeRoot returns the rig's shake tree, or nil.
func (r *Rig) ShakeRoot() ShakeEvaluator { return r.shake }

// Variables returns the table shared by the rig's nodes.
func (r *Rig) Variables() *VariableTable { return r.variables }

// Context returns the evaluation context passed to the rig's nodes.
func (r *Rig) Context() *EvaluationContext { return &r.context }

// Result returns the result of the last Update. It is overwritten by the
// next one.
func (r *Rig) Result() *EvaluationResult { return r.result }

// ShakeTimeLeft returns the shake time left after the last Update: zero
// when finished or absent, negative when unbounded.
func (r *Rig) ShakeTimeLeft() float64 { return r.shakeTimeLeft }

// NodeCount returns the number of built nodes, shake tree included. It is
// zero until the rig is built.
func (r *Rig) NodeCount() int { return r.nodeCount }

// IsActive reports whether the rig has been initialized and not deactivated.
func (r *Rig) IsActive() bool { return r.state == rigActive }

// Build builds both trees once. Later calls do nothing.
func (r *Rig) Build() {
	if r.state != rigUnbuilt {
		return
	}
	ctx := &BuildContext{Logger: r.logger.With(zap.String("rig", r.Name))}
	BuildTree(ctx, r.root)
	if r.shake != nil {
		BuildTree(ctx, r.shake)
	}
	r.nodeCount = ctx.NodeCount()

	r.loggers = r.loggers[:0]
	for _, tree := range []Evaluator{r.root, r.shake} {
		WalkTree(tree, func(node Evaluator, _ int) bool {
			if fl, ok := node.(fieldLogger); ok {
				r.loggers = append(r.loggers, fl)
			}
			return true
		})
	}

	debugCheckTreeDepth(r.logger, r.Name, r.root)
	r.state = rigBuilt
	r.logger.Debug("rig built", zap.String("rig", r.Name), zap.Int("nodes", r.nodeCount))
}

// Activate builds the rig if needed and initializes every node. The next
// Update is a first frame and a camera cut. Activating an active rig
// re-initializes it.
func (r *Rig) Activate() {
	r.Build()
	r.result.Reset()
	params := &InitializeParams{Context: &r.context}
	InitializeTree(params, r.root, r.result)
	if r.shake != nil {
		InitializeTree(params, r.shake, r.result)
	}
	r.firstFrame = true
	r.shakeTimeLeft = 0
	r.state = rigActive
	r.logger.Debug("rig activated", zap.String("rig", r.Name))
}

// Deactivate stops the rig and drops queued operations. The next Update or
// operation re-activates it.
func (r *Rig) Deactivate() {
	if r.state != rigActive {
		return
	}
	r.state = rigBuilt
	r.injectQueue = r.injectQueue[:0]
	r.pendingCut = false
	r.logger.Debug("rig deactivated", zap.String("rig", r.Name))
}

func (r *Rig) ensureActive() {
	if r.state != rigActive {
		r.Activate()
	}
}

// RequestCameraCut flags the next Update as a camera cut.
func (r *Rig) RequestCameraCut() {
	r.pendingCut = true
}

// Update evaluates one frame of dt seconds and returns the result.
//
// Queued operations due this frame are executed first. The result is then
// reset, the main tree runs, and the shake tree perturbs its output at full
// scale.
func (r *Rig) Update(dt float64) *EvaluationResult {
	r.ensureActive()
	r.processInjectedOperations()

	r.result.Reset()
	r.result.IsCameraCut = r.firstFrame || r.pendingCut
	r.pendingCut = false

	params := &EvaluationParams{
		DeltaTime:    dt,
		IsFirstFrame: r.firstFrame,
		Context:      &r.context,
	}
	if r.root != nil {
		r.root.Run(params, r.result)
	}

	r.shakeTimeLeft = 0
	if r.shake != nil {
		r.shake.Run(params, r.result)
		sr := ShakeResult{Result: r.result}
		r.shake.ShakeResult(&ShakeParams{Eval: params, ShakeScale: 1}, &sr)
		r.shakeTimeLeft = sr.ShakeTimeLeft
		r.metrics.observeShake(r.Name, r.shakeTimeLeft)
	}

	r.metrics.observeFrame(r.Name, r.result.IsCameraCut)
	if r.sink != nil {
		r.sink.EmitPose(PoseEvent{
			Rig:           r.Name,
			Pose:          r.result.Pose,
			FieldOfView:   r.result.FieldOfView,
			IsCameraCut:   r.result.IsCameraCut,
			ShakeTimeLeft: r.shakeTimeLeft,
		})
	}
	if ce := r.logger.Check(zap.DebugLevel, "rig frame"); ce != nil {
		ce.Write(r.frameFields(dt)...)
	}

	r.firstFrame = false
	return r.result
}

func (r *Rig) frameFields(dt float64) []zap.Field {
	loc := r.result.Pose.Location
	fields := []zap.Field{
		zap.String("rig", r.Name),
		zap.Float64("dt", dt),
		zap.Float64s("location", loc[:]),
		zap.Float64("fov", r.result.FieldOfView),
		zap.Bool("cut", r.result.IsCameraCut),
	}
	for _, fl := range r.loggers {
		fields = append(fields, fl.logFields()...)
	}
	return fields
}

// ExecuteOperation pushes op through the main tree immediately, activating
// the rig first if needed. Inspect op afterwards to learn what was consumed.
func (r *Rig) ExecuteOperation(op Operation) {
	if op == nil {
		return
	}
	r.ensureActive()
	ExecuteOperation(&OperationParams{Context: &r.context}, r.root, op)
	r.metrics.observeOperation(r.Name, op)
	r.logger.Debug("operation executed",
		zap.String("rig", r.Name),
		zap.Stringer("type", op.OperationType()),
		zap.Bool("consumed", isOperationConsumed(op)))
}

// RestartShake re-triggers the shake tree without re-initializing it.
func (r *Rig) RestartShake() {
	if r.shake == nil {
		return
	}
	r.Build()
	r.shake.RestartShake(&RestartParams{Context: &r.context})
}

// RigState is the serialized state of a rig's two trees.
type RigState struct {
	Root  *TreeState `yaml:"root"`
	Shake *TreeState `yaml:"shake,omitempty"`
}

// SaveState returns the state of every serializable node as YAML.
func (r *Rig) SaveState() ([]byte, error) {
	st := RigState{Root: SaveTreeState(r.root)}
	if r.shake != nil {
		st.Shake = SaveTreeState(r.shake)
	}
	data, err := yaml.Marshal(&st)
	if err != nil {
		return nil, fmt.Errorf("save rig %s: %w", r.Name, err)
	}
	return data, nil
}

// LoadState restores state produced by SaveState on a rig of the same
// shape. The rig is activated if needed, and the next Update continues
// from the restored state rather than starting a first frame.
func (r *Rig) LoadState(data []byte) error {
	var st RigState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("load rig %s: %w", r.Name, err)
	}
	r.ensureActive()
	if err := LoadTreeState(r.root, st.Root); err != nil {
		return fmt.Errorf("load rig %s: %w", r.Name, err)
	}
	if r.shake != nil {
		if err := LoadTreeState(r.shake, st.Shake); err != nil {
			return fmt.Errorf("load rig %s shake: %w", r.Name, err)
		}
	}
	r.firstFrame = false
	return nil
}

// SetPoseSink sets or clears the sink receiving every evaluated frame.
func (r *Rig) SetPoseSink(sink PoseSink) {
	r.sink = sink
}
