package gimbal

import "fmt"

// OperationType tags an Operation kind for safe downcasting.
type OperationType uint32

// Built-in operation tags. Node authors register their own with
// RegisterOperationType.
const (
	OperationTypeNone OperationType = iota
	OperationTypeYawPitch
	OperationTypeSingleValue

	firstCustomOperationType
)

var (
	nextOperationType  = firstCustomOperationType
	operationTypeNames = map[OperationType]string{
		OperationTypeYawPitch:    "yaw_pitch",
		OperationTypeSingleValue: "single_value",
	}
)

// RegisterOperationType allocates a new, distinct operation tag. Call it
// from package initialization; it is not safe for concurrent use.
func RegisterOperationType(name string) OperationType {
	for t, n := range operationTypeNames {
		if n == name {
			panic(fmt.Sprintf("gimbal: operation type %q already registered as %d", name, t))
		}
	}
	t := nextOperationType
	nextOperationType++
	operationTypeNames[t] = name
	return t
}

func (t OperationType) String() string {
	if n, ok := operationTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("operation(%d)", uint32(t))
}

// Operation is a typed, partially consumable correction request pushed
// through a node tree. OperationType must not dereference its receiver so
// that it can be called on a nil pointer of the concrete type.
type Operation interface {
	OperationType() OperationType
}

// CastOperation returns op as T if op's tag matches T's tag. A mismatch is
// not an error: it is how a node learns it does not handle op.
func CastOperation[T Operation](op Operation) (T, bool) {
	var zero T
	if op == nil || op.OperationType() != zero.OperationType() {
		return zero, false
	}
	typed, ok := op.(T)
	return typed, ok
}

// YawPitchOperation nudges or sets a yaw/pitch orientation, in degrees.
type YawPitchOperation struct {
	Yaw   ConsumableValue[float64]
	Pitch ConsumableValue[float64]
}

// OperationType implements Operation.
func (*YawPitchOperation) OperationType() OperationType { return OperationTypeYawPitch }

// IsConsumed reports whether both fields were fully applied.
func (op *YawPitchOperation) IsConsumed() bool {
	return !op.Yaw.HasValue() && !op.Pitch.HasValue()
}

// SingleValueOperation adjusts one scalar. Target selects which node
// variable it is addressed to; an invalid Target matches any handler.
type SingleValueOperation struct {
	Target VariableID
	Value  ConsumableValue[float64]
}

// OperationType implements Operation.
func (*SingleValueOperation) OperationType() OperationType { return OperationTypeSingleValue }

// IsConsumed reports whether the value was fully applied.
func (op *SingleValueOperation) IsConsumed() bool {
	return !op.Value.HasValue()
}

// ConsumableOperation is implemented by operations whose fields are
// consumed as they pass through a tree.
type ConsumableOperation interface {
	Operation
	IsConsumed() bool
}

func isOperationConsumed(op Operation) bool {
	c, ok := op.(ConsumableOperation)
	return ok && c.IsConsumed()
}
