package gimbal

// ArrayEvaluator runs its children in declaration order. It has no
// contribution of its own and forwards operations to every child.
type ArrayEvaluator struct {
	Nodes []Evaluator
}

// NewArray returns an ArrayEvaluator over nodes.
func NewArray(nodes ...Evaluator) *ArrayEvaluator {
	return &ArrayEvaluator{Nodes: nodes}
}

// Build implements Evaluator.
func (a *ArrayEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (a *ArrayEvaluator) Initialize(*InitializeParams, *EvaluationResult) {}

// Children implements Evaluator.
func (a *ArrayEvaluator) Children() []Evaluator { return a.Nodes }

// Run implements Evaluator.
func (a *ArrayEvaluator) Run(params *EvaluationParams, result *EvaluationResult) {
	for _, n := range a.Nodes {
		n.Run(params, result)
	}
}

// TargetEvaluator places the pose at a tracked location, typically the
// character a boom arm orbits.
type TargetEvaluator struct {
	Location Vec3Parameter
	// Offset is added in world space.
	Offset Vec3
	// FieldOfView overrides the result's field of view when non-zero.
	FieldOfView FloatParameter
}

// Build implements Evaluator.
func (t *TargetEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (t *TargetEvaluator) Initialize(_ *InitializeParams, result *EvaluationResult) {
	result.Pose.Location = t.Location.Resolve(result.Variables).Add(t.Offset)
}

// Children implements Evaluator.
func (t *TargetEvaluator) Children() []Evaluator { return nil }

// Run implements Evaluator.
func (t *TargetEvaluator) Run(_ *EvaluationParams, result *EvaluationResult) {
	result.Pose.Location = t.Location.Resolve(result.Variables).Add(t.Offset)
	if fov := t.FieldOfView.Resolve(result.Variables); fov != 0 {
		result.FieldOfView = fov
	}
}
