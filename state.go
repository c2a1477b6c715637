package gimbal

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrStateMismatch is returned when a saved record does not match the
// fields a node expects, in name or order.
var ErrStateMismatch = errors.New("gimbal: state record mismatch")

// StateField is one named primitive in a StateRecord.
type StateField struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// StateRecord is an ordered list of a node's live fields. Field order is
// part of each node's contract: LoadState reads back exactly what SaveState
// wrote, in the same order.
type StateRecord struct {
	Fields []StateField `yaml:"fields"`

	cursor int
}

// Put appends a field.
func (r *StateRecord) Put(name string, v float64) {
	r.Fields = append(r.Fields, StateField{Name: name, Value: v})
}

// PutBool appends a boolean field stored as 0 or 1.
func (r *StateRecord) PutBool(name string, v bool) {
	var f float64
	if v {
		f = 1
	}
	r.Put(name, f)
}

// Take reads the next field, which must be called name.
func (r *StateRecord) Take(name string) (float64, error) {
	if r.cursor >= len(r.Fields) {
		return 0, fmt.Errorf("%w: missing field %q", ErrStateMismatch, name)
	}
	f := r.Fields[r.cursor]
	if f.Name != name {
		return 0, fmt.Errorf("%w: field %d is %q, want %q", ErrStateMismatch, r.cursor, f.Name, name)
	}
	r.cursor++
	return f.Value, nil
}

// TakeBool reads the next field as a boolean.
func (r *StateRecord) TakeBool(name string) (bool, error) {
	v, err := r.Take(name)
	return v != 0, err
}

// Rewind moves the read cursor back to the first field.
func (r *StateRecord) Rewind() {
	r.cursor = 0
}

// StateSerializer is implemented by nodes with live state worth saving.
type StateSerializer interface {
	SaveState(rec *StateRecord)
	LoadState(rec *StateRecord) error
}

// TreeState holds the records of every serializable node of a tree, keyed
// by the node's path of child indices from the root ("0", "0/1", ...).
type TreeState struct {
	Nodes map[string]*StateRecord `yaml:"nodes"`
}

// SaveTreeState collects the state of every StateSerializer under root.
func SaveTreeState(root Evaluator) *TreeState {
	st := &TreeState{Nodes: make(map[string]*StateRecord)}
	visitPaths(root, "0", func(path string, node Evaluator) error {
		if s, ok := node.(StateSerializer); ok {
			rec := &StateRecord{}
			s.SaveState(rec)
			st.Nodes[path] = rec
		}
		return nil
	})
	return st
}

// LoadTreeState restores state saved by SaveTreeState into a tree of the
// same shape. Nodes without a saved record are left untouched.
func LoadTreeState(root Evaluator, st *TreeState) error {
	if st == nil {
		return nil
	}
	return visitPaths(root, "0", func(path string, node Evaluator) error {
		s, ok := node.(StateSerializer)
		if !ok {
			return nil
		}
		rec, ok := st.Nodes[path]
		if !ok {
			return nil
		}
		rec.Rewind()
		if err := s.LoadState(rec); err != nil {
			return fmt.Errorf("load state of %s at %s: %w", NodeTypeName(node), path, err)
		}
		return nil
	})
}

func visitPaths(node Evaluator, path string, fn func(string, Evaluator) error) error {
	if node == nil {
		return nil
	}
	if err := fn(path, node); err != nil {
		return err
	}
	for i, child := range node.Children() {
		if err := visitPaths(child, path+"/"+strconv.Itoa(i), fn); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTreeState serializes st as YAML.
func EncodeTreeState(st *TreeState) ([]byte, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode tree state: %w", err)
	}
	return data, nil
}

// DecodeTreeState parses YAML produced by EncodeTreeState.
func DecodeTreeState(data []byte) (*TreeState, error) {
	var st TreeState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode tree state: %w", err)
	}
	return &st, nil
}
