package gimbal

// CompositeShakeEvaluator runs several shakes in parallel.
//
// Every child's ShakeResult is stacked onto the same result in declaration
// order. The composite lasts as long as its longest-lived child and is
// infinite if any child is.
type CompositeShakeEvaluator struct {
	Shakes []ShakeEvaluator
}

// NewCompositeShake returns a composite over shakes.
func NewCompositeShake(shakes ...ShakeEvaluator) *CompositeShakeEvaluator {
	return &CompositeShakeEvaluator{Shakes: shakes}
}

// Build implements Evaluator.
func (c *CompositeShakeEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (c *CompositeShakeEvaluator) Initialize(*InitializeParams, *EvaluationResult) {}

// Children implements Evaluator.
func (c *CompositeShakeEvaluator) Children() []Evaluator {
	return shakeChildren(c.Shakes)
}

// Run implements Evaluator.
func (c *CompositeShakeEvaluator) Run(params *EvaluationParams, result *EvaluationResult) {
	for _, s := range c.Shakes {
		s.Run(params, result)
	}
}

// ShakeResult implements ShakeEvaluator.
func (c *CompositeShakeEvaluator) ShakeResult(params *ShakeParams, result *ShakeResult) {
	var longest float64
	infinite := false
	for _, s := range c.Shakes {
		result.ShakeTimeLeft = 0
		s.ShakeResult(params, result)
		if result.ShakeTimeLeft < 0 {
			infinite = true
		} else {
			longest = max(longest, result.ShakeTimeLeft)
		}
	}
	if infinite {
		result.ShakeTimeLeft = -1
	} else {
		result.ShakeTimeLeft = longest
	}
}

// RestartShake implements ShakeEvaluator.
func (c *CompositeShakeEvaluator) RestartShake(params *RestartParams) {
	for _, s := range c.Shakes {
		s.RestartShake(params)
	}
}
