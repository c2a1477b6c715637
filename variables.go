package gimbal

import (
	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/google/uuid"
)

// variableNamespace scopes the name-derived variable IDs.
var variableNamespace = uuid.MustParse("6f1c2a4e-9d3b-5e7a-8c10-4b2f9e6d7a31")

// VariableID is an opaque, stable handle to a value in a VariableTable and
// the key joints are addressed by.
type VariableID uuid.UUID

// NewVariableID returns the ID for a named variable. The same name always
// yields the same ID.
func NewVariableID(name string) VariableID {
	return VariableID(uuid.NewSHA1(variableNamespace, []byte(name)))
}

// IsValid reports whether the ID is set.
func (id VariableID) IsValid() bool {
	return id != VariableID(uuid.Nil)
}

func (id VariableID) String() string {
	return uuid.UUID(id).String()
}

// VariableTable is a key/value store shared by the nodes of a rig. Hosts
// write inputs into it (target positions, look axes) and nodes read them
// through parameters or publish their own outputs.
type VariableTable struct {
	values map[VariableID]any
}

// NewVariableTable creates an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{values: make(map[VariableID]any)}
}

// Set stores value under id.
func (t *VariableTable) Set(id VariableID, value any) {
	if t.values == nil {
		t.values = make(map[VariableID]any)
	}
	t.values[id] = value
}

// Get returns the raw value stored under id.
func (t *VariableTable) Get(id VariableID) (any, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.values[id]
	return v, ok
}

// Delete removes id from the table.
func (t *VariableTable) Delete(id VariableID) {
	delete(t.values, id)
}

// Len returns the number of stored variables.
func (t *VariableTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values)
}

// GetVariable returns the value under id if present and of type T.
func GetVariable[T any](t *VariableTable, id VariableID) (T, bool) {
	var zero T
	raw, ok := t.Get(id)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Float returns a float64 variable.
func (t *VariableTable) Float(id VariableID) (float64, bool) {
	return GetVariable[float64](t, id)
}

// Vec3 returns a Vec3 variable.
func (t *VariableTable) Vec3(id VariableID) (Vec3, bool) {
	return GetVariable[Vec3](t, id)
}

// Axis2D returns a 2D axis variable, typically a look input.
func (t *VariableTable) Axis2D(id VariableID) (ebimath.Vector, bool) {
	return GetVariable[ebimath.Vector](t, id)
}

// FloatParameter is a float that is either fixed or read from a table
// variable. Value is used when the variable is unset or missing.
type FloatParameter struct {
	Value    float64
	Variable VariableID
}

// Resolve returns the parameter's current value.
func (p FloatParameter) Resolve(t *VariableTable) float64 {
	if p.Variable.IsValid() {
		if v, ok := t.Float(p.Variable); ok {
			return v
		}
	}
	return p.Value
}

// Vec3Parameter is a Vec3 that is either fixed or read from a table variable.
type Vec3Parameter struct {
	Value    Vec3
	Variable VariableID
}

// Resolve returns the parameter's current value.
func (p Vec3Parameter) Resolve(t *VariableTable) Vec3 {
	if p.Variable.IsValid() {
		if v, ok := t.Vec3(p.Variable); ok {
			return v
		}
	}
	return p.Value
}
