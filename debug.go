package gimbal

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// DebugField is one labelled value of a DebugSnapshot.
type DebugField struct {
	Key   string
	Value string
}

// DebugSnapshot is a read-only view of a node's internal state for display.
type DebugSnapshot struct {
	Fields []DebugField
}

// Addf appends a formatted field.
func (s *DebugSnapshot) Addf(key, format string, args ...any) {
	s.Fields = append(s.Fields, DebugField{Key: key, Value: fmt.Sprintf(format, args...)})
}

// String joins the fields as "key=value" pairs.
func (s DebugSnapshot) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Key + "=" + f.Value
	}
	return strings.Join(parts, " ")
}

// DebugReporter is implemented by nodes that expose internal state.
// DebugSnapshot must not have side effects.
type DebugReporter interface {
	DebugSnapshot() DebugSnapshot
}

// NodeTypeName returns a short display name for a node, e.g. "BoomArm" for
// *BoomArmEvaluator.
func NodeTypeName(e Evaluator) string {
	t := reflect.TypeOf(e)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.TrimSuffix(t.Name(), "Evaluator")
}

// DumpTree returns one indented line per node, with the node's debug
// snapshot appended when it has one.
func DumpTree(root Evaluator) []string {
	var lines []string
	WalkTree(root, func(node Evaluator, depth int) bool {
		line := strings.Repeat("  ", depth) + NodeTypeName(node)
		if r, ok := node.(DebugReporter); ok {
			if snap := r.DebugSnapshot(); len(snap.Fields) > 0 {
				line += " [" + snap.String() + "]"
			}
		}
		lines = append(lines, line)
		return true
	})
	return lines
}

// debugMaxTreeDepth is the depth past which a built tree is reported.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth logs a warning if the tree is deeper than
// debugMaxTreeDepth.
func debugCheckTreeDepth(logger *zap.Logger, rig string, root Evaluator) {
	deepest := 0
	WalkTree(root, func(_ Evaluator, depth int) bool {
		deepest = max(deepest, depth+1)
		return true
	})
	if deepest > debugMaxTreeDepth {
		logger.Warn("rig tree is unusually deep",
			zap.String("rig", rig),
			zap.Int("depth", deepest),
			zap.Int("threshold", debugMaxTreeDepth))
	}
}
