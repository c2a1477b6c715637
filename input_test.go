package gimbal

import (
	"testing"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput2DIntegratesAxis(t *testing.T) {
	axis := NewVariableID("look")
	out := NewVariableID("look.out")
	n := &Input2DEvaluator{
		AxisVariable: axis,
		Sensitivity:  60,
		Initial:      ebimath.V(0, 5),
		PitchLimits:  Range{Min: -10, Max: 10},
		Output:       out,
	}
	result := NewEvaluationResult(NewVariableTable())
	n.Initialize(&InitializeParams{}, result)

	result.Variables.Set(axis, ebimath.V(1, 0.5))
	n.Run(&EvaluationParams{DeltaTime: 0.5}, result)

	assert.Equal(t, ebimath.V(30, 10), n.Input2DValue())
	published, ok := result.Variables.Axis2D(out)
	require.True(t, ok)
	assert.Equal(t, n.Input2DValue(), published)
}

func TestInput2DClampsInitialPitch(t *testing.T) {
	n := &Input2DEvaluator{Initial: ebimath.V(0, 95), PitchLimits: Range{Min: -80, Max: 80}}
	n.Initialize(&InitializeParams{}, NewEvaluationResult(nil))
	assert.Equal(t, 80.0, n.Input2DValue().Y)
}

func TestInput2DUnboundedPitch(t *testing.T) {
	n := &Input2DEvaluator{}
	n.Initialize(&InitializeParams{}, NewEvaluationResult(nil))
	op := &YawPitchOperation{Pitch: AbsoluteValue(170.0)}
	n.ExecuteOperation(&OperationParams{}, op)
	assert.Equal(t, 170.0, n.Input2DValue().Y)
	assert.True(t, op.IsConsumed())
}

func TestInput2DIgnoresOtherOperations(t *testing.T) {
	n := &Input2DEvaluator{}
	op := &SingleValueOperation{Value: DeltaValue(3.0)}
	n.ExecuteOperation(&OperationParams{}, op)
	assert.True(t, op.Value.HasValue())
}

func TestInput1DOperations(t *testing.T) {
	zoom := NewVariableID("zoom")
	other := NewVariableID("other")

	tests := []struct {
		name      string
		op        *SingleValueOperation
		want      float64
		remaining bool
	}{
		{"untargeted delta", &SingleValueOperation{Value: DeltaValue(0.5)}, 1.5, false},
		{"targeted absolute", &SingleValueOperation{Target: zoom, Value: AbsoluteValue(2.0)}, 2, false},
		{"other target", &SingleValueOperation{Target: other, Value: DeltaValue(0.5)}, 1, true},
		{"clamped", &SingleValueOperation{Target: zoom, Value: DeltaValue(5.0)}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Input1DEvaluator{Initial: 1, Limits: Range{Min: 0.5, Max: 3}, Output: zoom}
			result := NewEvaluationResult(NewVariableTable())
			n.Initialize(&InitializeParams{}, result)

			ExecuteOperation(&OperationParams{}, n, tt.op)
			n.Run(&EvaluationParams{}, result)

			assert.Equal(t, tt.want, n.Value())
			assert.Equal(t, tt.remaining, tt.op.Value.HasValue())
			got, ok := result.Variables.Float(zoom)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInput1DClampsInitial(t *testing.T) {
	n := &Input1DEvaluator{Initial: 10, Limits: Range{Min: 0, Max: 4}}
	n.Initialize(&InitializeParams{}, NewEvaluationResult(nil))
	assert.Equal(t, 4.0, n.Value())
}

func TestInputStateRoundTrip(t *testing.T) {
	n := &Input2DEvaluator{Initial: ebimath.V(12, -3)}
	n.Initialize(&InitializeParams{}, NewEvaluationResult(nil))
	var rec StateRecord
	n.SaveState(&rec)

	restored := &Input2DEvaluator{}
	require.NoError(t, restored.LoadState(&rec))
	assert.Equal(t, n.Input2DValue(), restored.Input2DValue())

	var bad StateRecord
	bad.Put("pitch", 1)
	assert.ErrorIs(t, restored.LoadState(&bad), ErrStateMismatch)
}
