package gimbal

// ShakeParams is passed to ShakeResult.
type ShakeParams struct {
	Eval *EvaluationParams
	// ShakeScale multiplies the shake's intensity. Wrappers such as
	// envelopes scale it before passing it on.
	ShakeScale float64
}

// withScale returns a copy of p with its scale multiplied by s.
func (p *ShakeParams) withScale(s float64) *ShakeParams {
	out := *p
	out.ShakeScale *= s
	return &out
}

// RestartParams is passed to RestartShake.
type RestartParams struct {
	Context *EvaluationContext
}

// ShakeEvaluator is a node of a shake tree. Run advances the shake's own
// state; ShakeResult perturbs the shaken result and reports the time left;
// RestartShake re-triggers a running or finished shake without a full
// Initialize.
type ShakeEvaluator interface {
	Evaluator
	ShakeResult(params *ShakeParams, result *ShakeResult)
	RestartShake(params *RestartParams)
}

func shakeChildren(shakes []ShakeEvaluator) []Evaluator {
	if len(shakes) == 0 {
		return nil
	}
	out := make([]Evaluator, len(shakes))
	for i, s := range shakes {
		out[i] = s
	}
	return out
}
