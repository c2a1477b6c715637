package gimbal

import "go.uber.org/zap"

// Controller is the live external orientation a rig can steer, usually the
// player's control rotation.
type Controller interface {
	CurrentRotation() Rotator
	SetCurrentRotation(Rotator)
}

// EvaluationContext exposes the host collaborators nodes may reach during
// evaluation. Every field is optional.
type EvaluationContext struct {
	Controller Controller
}

func (c *EvaluationContext) controller() Controller {
	if c == nil {
		return nil
	}
	return c.Controller
}

// BuildContext is passed to every node's Build.
type BuildContext struct {
	Logger *zap.Logger

	nodeCount int
}

// NodeCount returns the number of nodes built so far.
func (c *BuildContext) NodeCount() int {
	return c.nodeCount
}

func (c *BuildContext) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// InitializeParams is passed to Initialize when a rig becomes active.
type InitializeParams struct {
	Context *EvaluationContext
}

// EvaluationParams is passed to Run every frame.
type EvaluationParams struct {
	DeltaTime float64
	// IsFirstFrame is set on the first Run after Initialize.
	IsFirstFrame bool
	Context      *EvaluationContext
}

// OperationParams is passed to ExecuteOperation.
type OperationParams struct {
	Context *EvaluationContext
}

// Evaluator is one unit of per-frame camera logic in a node tree.
//
// Build wires child evaluators and allocates per-instance helpers; it runs
// once per rig instantiation. Initialize seeds per-activation state.
// Run is the per-frame contract: a node runs the children it needs, in the
// order it needs, then folds its own contribution into result. Children
// returns the immediate children for generic walkers and must not be
// mutated by the caller.
type Evaluator interface {
	Build(ctx *BuildContext)
	Initialize(params *InitializeParams, result *EvaluationResult)
	Run(params *EvaluationParams, result *EvaluationResult)
	Children() []Evaluator
}

// OperationHandler is implemented by nodes that intercept operations. A
// handler is responsible for forwarding op to its children if it wants them
// to see it.
type OperationHandler interface {
	ExecuteOperation(params *OperationParams, op Operation)
}

// BuildTree builds root and then every descendant, top-down. Children are
// read after their parent's Build so that wiring done there is visible.
func BuildTree(ctx *BuildContext, root Evaluator) {
	if root == nil {
		return
	}
	ctx.nodeCount++
	root.Build(ctx)
	for _, child := range root.Children() {
		BuildTree(ctx, child)
	}
}

// InitializeTree initializes root and every descendant, top-down.
func InitializeTree(params *InitializeParams, root Evaluator, result *EvaluationResult) {
	if root == nil {
		return
	}
	root.Initialize(params, result)
	for _, child := range root.Children() {
		InitializeTree(params, child, result)
	}
}

// ExecuteOperation pushes op down from root. Nodes implementing
// OperationHandler intercept it; any other node forwards it to its children.
// Inspect the operation's consumable fields afterwards to learn what was
// absorbed.
func ExecuteOperation(params *OperationParams, root Evaluator, op Operation) {
	if root == nil || op == nil {
		return
	}
	if h, ok := root.(OperationHandler); ok {
		h.ExecuteOperation(params, op)
		return
	}
	ForwardOperation(params, root, op)
}

// ForwardOperation pushes op to each of node's children in order.
func ForwardOperation(params *OperationParams, node Evaluator, op Operation) {
	for _, child := range node.Children() {
		ExecuteOperation(params, child, op)
	}
}

// WalkTree calls fn for root and every descendant in depth-first order.
// Returning false from fn skips that node's subtree.
func WalkTree(root Evaluator, fn func(node Evaluator, depth int) bool) {
	walkTree(root, 0, fn)
}

func walkTree(node Evaluator, depth int, fn func(Evaluator, int) bool) {
	if node == nil {
		return
	}
	if !fn(node, depth) {
		return
	}
	for _, child := range node.Children() {
		walkTree(child, depth+1, fn)
	}
}

// CountNodes returns the number of nodes in the tree rooted at root.
func CountNodes(root Evaluator) int {
	n := 0
	WalkTree(root, func(Evaluator, int) bool {
		n++
		return true
	})
	return n
}
