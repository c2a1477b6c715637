package gimbal

// DefaultFieldOfView is the horizontal field of view, in degrees, of a
// freshly reset result.
const DefaultFieldOfView = 90.0

// EvaluationResult is the camera state threaded through one frame's walk of
// a node tree. Nodes read and write it in place.
type EvaluationResult struct {
	Pose        Transform
	FieldOfView float64
	IsCameraCut bool
	Variables   *VariableTable
	Joints      RigJoints
}

// NewEvaluationResult returns a result at the identity pose reading from
// the given variable table.
func NewEvaluationResult(variables *VariableTable) *EvaluationResult {
	r := &EvaluationResult{Variables: variables}
	r.Reset()
	return r
}

// Reset restores the pose, field of view, cut flag, and joints to their
// defaults. The variable table is kept.
func (r *EvaluationResult) Reset() {
	r.Pose = IdentityTransform
	r.FieldOfView = DefaultFieldOfView
	r.IsCameraCut = false
	r.Joints.Reset()
}

// OverrideAll copies every field of other into r, including joints.
func (r *EvaluationResult) OverrideAll(other *EvaluationResult) {
	r.Pose = other.Pose
	r.FieldOfView = other.FieldOfView
	r.IsCameraCut = other.IsCameraCut
	r.Variables = other.Variables
	r.Joints.OverrideAll(&other.Joints)
}

// ShakeResult carries the result being shaken through a shake tree's
// ShakeResult pass.
type ShakeResult struct {
	Result *EvaluationResult
	// ShakeTimeLeft is the remaining duration in seconds: positive while
	// running, zero once finished, negative for an unbounded shake.
	ShakeTimeLeft float64
}

// IsInfinite reports whether the shake has no end.
func (s *ShakeResult) IsInfinite() bool {
	return s.ShakeTimeLeft < 0
}
