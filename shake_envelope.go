package gimbal

import "math"

// EnvelopeShakeEvaluator shapes one child shake's intensity with an
// ease-in, a sustain, and an ease-out over a bounded total time.
type EnvelopeShakeEvaluator struct {
	Shake ShakeEvaluator

	easeIn      float64
	easeOut     float64
	total       float64
	currentTime float64
}

// NewEnvelopeShake wraps shake. Negative times are clamped to zero, and if
// the two ramps do not fit in total they are both set to total/2.
func NewEnvelopeShake(shake ShakeEvaluator, easeIn, easeOut, total float64) *EnvelopeShakeEvaluator {
	e := &EnvelopeShakeEvaluator{Shake: shake}
	e.SetTimes(easeIn, easeOut, total)
	return e
}

// SetTimes replaces the envelope's ramps and total with the same
// normalization as NewEnvelopeShake. The current time is kept.
func (e *EnvelopeShakeEvaluator) SetTimes(easeIn, easeOut, total float64) {
	e.easeIn = math.Max(0, easeIn)
	e.easeOut = math.Max(0, easeOut)
	e.total = math.Max(0, total)
	if e.easeIn+e.easeOut > e.total {
		e.easeIn = e.total / 2
		e.easeOut = e.total / 2
	}
}

// EaseInTime returns the normalized ease-in duration.
func (e *EnvelopeShakeEvaluator) EaseInTime() float64 { return e.easeIn }

// EaseOutTime returns the normalized ease-out duration.
func (e *EnvelopeShakeEvaluator) EaseOutTime() float64 { return e.easeOut }

// TotalTime returns the total duration, including any restart extensions.
func (e *EnvelopeShakeEvaluator) TotalTime() float64 { return e.total }

// CurrentTime returns the time elapsed in the envelope.
func (e *EnvelopeShakeEvaluator) CurrentTime() float64 { return e.currentTime }

// IsFinished reports whether the envelope has run its total time.
func (e *EnvelopeShakeEvaluator) IsFinished() bool {
	return e.currentTime >= e.total
}

// Build implements Evaluator.
func (e *EnvelopeShakeEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (e *EnvelopeShakeEvaluator) Initialize(*InitializeParams, *EvaluationResult) {
	e.currentTime = 0
}

// Children implements Evaluator.
func (e *EnvelopeShakeEvaluator) Children() []Evaluator {
	if e.Shake == nil {
		return nil
	}
	return []Evaluator{e.Shake}
}

// Run implements Evaluator.
func (e *EnvelopeShakeEvaluator) Run(params *EvaluationParams, result *EvaluationResult) {
	if e.IsFinished() {
		return
	}
	e.currentTime += params.DeltaTime
	if e.Shake != nil {
		e.Shake.Run(params, result)
	}
}

// alpha returns the envelope multiplier at the current time.
func (e *EnvelopeShakeEvaluator) alpha() float64 {
	switch {
	case e.easeIn > 0 && e.currentTime < e.easeIn:
		return smoothstep(e.currentTime / e.easeIn)
	case e.easeOut > 0 && e.currentTime > e.total-e.easeOut:
		return smoothstep((e.total - e.currentTime) / e.easeOut)
	default:
		return 1
	}
}

// ShakeResult implements ShakeEvaluator. The reported time left never
// exceeds the envelope's own remaining time. An unbounded child (time left
// -1) reports the envelope's remaining time instead of being clamped to 0,
// since the envelope alone decides when it ends.
func (e *EnvelopeShakeEvaluator) ShakeResult(params *ShakeParams, result *ShakeResult) {
	if e.IsFinished() || e.Shake == nil {
		result.ShakeTimeLeft = 0
		return
	}
	e.Shake.ShakeResult(params.withScale(e.alpha()), result)

	remaining := e.total - e.currentTime
	if result.ShakeTimeLeft < 0 {
		result.ShakeTimeLeft = remaining
	} else {
		result.ShakeTimeLeft = math.Max(0, math.Min(result.ShakeTimeLeft, remaining))
	}
}

// RestartShake implements ShakeEvaluator.
//
// While easing in, the total grows by the time already played. While
// easing out, the current time jumps to the point of the ease-in with the
// same intensity. While sustained, the remaining sustain is doubled. A
// finished envelope starts over. The child is restarted afterwards.
func (e *EnvelopeShakeEvaluator) RestartShake(params *RestartParams) {
	switch {
	case e.IsFinished():
		e.currentTime = 0
	case e.currentTime < e.easeIn:
		e.total += e.currentTime
	case e.easeOut > 0 && e.currentTime > e.total-e.easeOut:
		alpha := clamp01((e.total - e.currentTime) / e.easeOut)
		e.currentTime = alpha * e.easeIn
	default:
		e.total += e.total - e.currentTime
	}
	if e.Shake != nil {
		e.Shake.RestartShake(params)
	}
}

// SaveState implements StateSerializer.
func (e *EnvelopeShakeEvaluator) SaveState(rec *StateRecord) {
	rec.Put("ease_in_time", e.easeIn)
	rec.Put("ease_out_time", e.easeOut)
	rec.Put("total_time", e.total)
	rec.Put("current_time", e.currentTime)
}

// LoadState implements StateSerializer.
func (e *EnvelopeShakeEvaluator) LoadState(rec *StateRecord) error {
	fields := []struct {
		name string
		dst  *float64
	}{
		{"ease_in_time", &e.easeIn},
		{"ease_out_time", &e.easeOut},
		{"total_time", &e.total},
		{"current_time", &e.currentTime},
	}
	for _, f := range fields {
		v, err := rec.Take(f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// DebugSnapshot implements DebugReporter.
func (e *EnvelopeShakeEvaluator) DebugSnapshot() DebugSnapshot {
	var s DebugSnapshot
	s.Addf("time", "%.2f/%.2f", e.currentTime, e.total)
	s.Addf("alpha", "%.2f", e.alpha())
	return s
}
