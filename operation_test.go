package gimbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type zoomOperation struct {
	Amount ConsumableValue[float64]
}

var operationTypeZoom = RegisterOperationType("test_zoom")

func (*zoomOperation) OperationType() OperationType { return operationTypeZoom }

func TestCastOperation(t *testing.T) {
	var op Operation = &YawPitchOperation{Yaw: DeltaValue(1.0)}

	yp, ok := CastOperation[*YawPitchOperation](op)
	assert.True(t, ok)
	assert.Same(t, op, yp)

	_, ok = CastOperation[*SingleValueOperation](op)
	assert.False(t, ok)

	_, ok = CastOperation[*zoomOperation](op)
	assert.False(t, ok)

	_, ok = CastOperation[*YawPitchOperation](nil)
	assert.False(t, ok)
}

func TestCastCustomOperation(t *testing.T) {
	var op Operation = &zoomOperation{Amount: DeltaValue(2.0)}
	z, ok := CastOperation[*zoomOperation](op)
	assert.True(t, ok)
	assert.Equal(t, 2.0, z.Amount.Value())
	assert.False(t, isOperationConsumed(op), "custom operation does not report consumption")
}

func TestRegisterOperationTypeDistinct(t *testing.T) {
	assert.NotEqual(t, OperationTypeYawPitch, operationTypeZoom)
	assert.NotEqual(t, OperationTypeSingleValue, operationTypeZoom)
	assert.Equal(t, "test_zoom", operationTypeZoom.String())
	assert.Equal(t, "yaw_pitch", OperationTypeYawPitch.String())
	assert.Equal(t, "operation(9999)", OperationType(9999).String())
}

func TestRegisterOperationTypeDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() { RegisterOperationType("yaw_pitch") })
}

func TestOperationConsumed(t *testing.T) {
	yp := &YawPitchOperation{Yaw: DeltaValue(1.0)}
	assert.False(t, isOperationConsumed(yp))
	yp.Yaw.Apply(0)
	assert.True(t, isOperationConsumed(yp))

	sv := &SingleValueOperation{}
	assert.True(t, sv.IsConsumed(), "empty value is consumed")
}
