package gimbal

import (
	ebimath "github.com/edwinsyarief/ebi-math"
)

// Input2DEvaluator accumulates a yaw/pitch pair from a look-axis variable.
// Hosts write the axis (units per second, X = yaw, Y = pitch) into the
// variable table every frame; the node integrates it and clamps pitch.
type Input2DEvaluator struct {
	// AxisVariable names the ebimath.Vector look axis in the table.
	AxisVariable VariableID
	// Sensitivity converts axis units to degrees per second.
	Sensitivity float64
	// Initial is the (yaw, pitch) on activation.
	Initial ebimath.Vector
	// PitchLimits clamps pitch. A zero range leaves pitch unbounded.
	PitchLimits Range
	// Output optionally publishes the value to the table every frame.
	Output VariableID

	value ebimath.Vector
}

// Build implements Evaluator.
func (n *Input2DEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (n *Input2DEvaluator) Initialize(*InitializeParams, *EvaluationResult) {
	n.value = n.Initial
	n.value.Y = n.clampPitch(n.value.Y)
}

// Children implements Evaluator.
func (n *Input2DEvaluator) Children() []Evaluator { return nil }

// Input2DValue implements Input2D.
func (n *Input2DEvaluator) Input2DValue() ebimath.Vector {
	return n.value
}

func (n *Input2DEvaluator) clampPitch(p float64) float64 {
	if n.PitchLimits.IsZero() {
		return p
	}
	return n.PitchLimits.Clamp(p)
}

// Run implements Evaluator.
func (n *Input2DEvaluator) Run(params *EvaluationParams, result *EvaluationResult) {
	if axis, ok := result.Variables.Axis2D(n.AxisVariable); ok {
		step := n.Sensitivity * params.DeltaTime
		n.value.X += axis.X * step
		n.value.Y = n.clampPitch(n.value.Y + axis.Y*step)
	}
	if n.Output.IsValid() && result.Variables != nil {
		result.Variables.Set(n.Output, n.value)
	}
}

// ExecuteOperation implements OperationHandler. Yaw is applied in full;
// pitch respects PitchLimits, leaving any excess pending on the operation.
func (n *Input2DEvaluator) ExecuteOperation(_ *OperationParams, op Operation) {
	yawPitch, ok := CastOperation[*YawPitchOperation](op)
	if !ok {
		return
	}
	n.value.X = yawPitch.Yaw.Apply(n.value.X)
	if n.PitchLimits.IsZero() {
		n.value.Y = yawPitch.Pitch.Apply(n.value.Y)
	} else {
		n.value.Y = yawPitch.Pitch.ApplyClamped(n.value.Y, n.PitchLimits.Min, n.PitchLimits.Max)
	}
}

// SaveState implements StateSerializer.
func (n *Input2DEvaluator) SaveState(rec *StateRecord) {
	rec.Put("yaw", n.value.X)
	rec.Put("pitch", n.value.Y)
}

// LoadState implements StateSerializer.
func (n *Input2DEvaluator) LoadState(rec *StateRecord) error {
	yaw, err := rec.Take("yaw")
	if err != nil {
		return err
	}
	pitch, err := rec.Take("pitch")
	if err != nil {
		return err
	}
	n.value = ebimath.V(yaw, pitch)
	return nil
}

// DebugSnapshot implements DebugReporter.
func (n *Input2DEvaluator) DebugSnapshot() DebugSnapshot {
	var s DebugSnapshot
	s.Addf("yaw", "%.2f", n.value.X)
	s.Addf("pitch", "%.2f", n.value.Y)
	return s
}

// Input1DEvaluator is a scalar accumulator, e.g. a zoom or boom length
// multiplier, adjusted only through SingleValueOperation. It publishes its
// value to Output every frame so parameters elsewhere can read it.
type Input1DEvaluator struct {
	Initial float64
	// Limits clamps the value. A zero range leaves it unbounded.
	Limits Range
	Output VariableID

	value float64
}

// Build implements Evaluator.
func (n *Input1DEvaluator) Build(*BuildContext) {}

// Initialize implements Evaluator.
func (n *Input1DEvaluator) Initialize(_ *InitializeParams, result *EvaluationResult) {
	n.value = n.Initial
	if !n.Limits.IsZero() {
		n.value = n.Limits.Clamp(n.value)
	}
	n.publish(result)
}

// Children implements Evaluator.
func (n *Input1DEvaluator) Children() []Evaluator { return nil }

// Value returns the current value.
func (n *Input1DEvaluator) Value() float64 {
	return n.value
}

// Run implements Evaluator.
func (n *Input1DEvaluator) Run(_ *EvaluationParams, result *EvaluationResult) {
	n.publish(result)
}

func (n *Input1DEvaluator) publish(result *EvaluationResult) {
	if n.Output.IsValid() && result.Variables != nil {
		result.Variables.Set(n.Output, n.value)
	}
}

// ExecuteOperation implements OperationHandler. Operations addressed to
// another variable are ignored.
func (n *Input1DEvaluator) ExecuteOperation(_ *OperationParams, op Operation) {
	single, ok := CastOperation[*SingleValueOperation](op)
	if !ok {
		return
	}
	if single.Target.IsValid() && single.Target != n.Output {
		return
	}
	if n.Limits.IsZero() {
		n.value = single.Value.Apply(n.value)
	} else {
		n.value = single.Value.ApplyClamped(n.value, n.Limits.Min, n.Limits.Max)
	}
}

// SaveState implements StateSerializer.
func (n *Input1DEvaluator) SaveState(rec *StateRecord) {
	rec.Put("value", n.value)
}

// LoadState implements StateSerializer.
func (n *Input1DEvaluator) LoadState(rec *StateRecord) error {
	v, err := rec.Take("value")
	if err != nil {
		return err
	}
	n.value = v
	return nil
}

// DebugSnapshot implements DebugReporter.
func (n *Input1DEvaluator) DebugSnapshot() DebugSnapshot {
	var s DebugSnapshot
	s.Addf("value", "%.3f", n.value)
	return s
}
