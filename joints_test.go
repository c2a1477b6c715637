package gimbal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	jointA = NewVariableID("joint-a")
	jointB = NewVariableID("joint-b")
	jointC = NewVariableID("joint-c")
)

func at(x, y, z float64) Transform {
	return Transform{Location: Vec3{x, y, z}, Scale: Vec3{1, 1, 1}}
}

func joints(list ...RigJoint) *RigJoints {
	var j RigJoints
	for _, joint := range list {
		j.AddJoint(joint.VariableID, joint.Transform)
	}
	return &j
}

func TestRigJointsLerpSharedJoint(t *testing.T) {
	from := joints(RigJoint{jointA, at(0, 0, 0)})
	to := joints(RigJoint{jointA, at(10, 0, 0)})

	from.LerpAll(to, 0.5)

	want := []RigJoint{{jointA, at(5, 0, 0)}}
	if diff := cmp.Diff(want, from.Joints()); diff != "" {
		t.Errorf("joints mismatch (-want +got):\n%s", diff)
	}
}

func TestRigJointsNewJointBeforeCrossover(t *testing.T) {
	from := joints()
	to := joints(RigJoint{jointB, at(1, 1, 1)})

	from.LerpAll(to, 0.3)

	if from.Len() != 0 {
		t.Errorf("Len = %d, want 0: %v", from.Len(), from.Joints())
	}
}

func TestRigJointsNewJointAfterCrossover(t *testing.T) {
	from := joints()
	to := joints(RigJoint{jointB, at(1, 1, 1)})

	from.LerpAll(to, 0.7)

	want := []RigJoint{{jointB, at(1, 1, 1)}}
	if diff := cmp.Diff(want, from.Joints()); diff != "" {
		t.Errorf("joints mismatch (-want +got):\n%s", diff)
	}
}

func TestRigJointsOwnOnlyJointDropsAtCrossover(t *testing.T) {
	tests := []struct {
		factor float64
		want   int
	}{
		{0.49, 1},
		{0.5, 0},
		{0.9, 0},
	}
	for _, tt := range tests {
		from := joints(RigJoint{jointC, at(3, 0, 0)})
		from.LerpAll(joints(), tt.factor)
		if from.Len() != tt.want {
			t.Errorf("factor %v: Len = %d, want %d", tt.factor, from.Len(), tt.want)
		}
	}
}

func TestRigJointsLerpEndpoints(t *testing.T) {
	a := []RigJoint{{jointA, at(0.1, 0.2, 0.3)}, {jointB, at(4, 5, 6)}}
	b := []RigJoint{{jointB, at(-7, 8.5, 1e3)}, {jointA, at(9, 9, 9)}, {jointC, at(1, 2, 3)}}

	t.Run("factor 1 equals target", func(t *testing.T) {
		from := joints(a...)
		from.LerpAll(joints(b...), 1)
		for _, want := range b {
			got, ok := from.Find(want.VariableID)
			if !ok {
				t.Fatalf("joint %v missing", want.VariableID)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		}
		if from.Len() != len(b) {
			t.Errorf("Len = %d, want %d", from.Len(), len(b))
		}
	})

	t.Run("factor 0 equals source", func(t *testing.T) {
		from := joints(a...)
		from.LerpAll(joints(b...), 0)
		if diff := cmp.Diff(a, from.Joints()); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
}

func TestRigJointsLerpDeduplicates(t *testing.T) {
	from := joints(RigJoint{jointA, at(1, 0, 0)}, RigJoint{jointA, at(2, 0, 0)}, RigJoint{jointB, at(0, 0, 0)})
	to := joints(RigJoint{jointA, at(4, 0, 0)}, RigJoint{jointA, at(6, 0, 0)})

	from.LerpAll(to, 0.25)

	seen := map[VariableID]bool{}
	for _, j := range from.Joints() {
		if seen[j.VariableID] {
			t.Fatalf("duplicate joint %v", j.VariableID)
		}
		seen[j.VariableID] = true
	}
	// Last duplicate wins on both sides: lerp(2, 4, 0.25) then toward 6.
	got, _ := from.Find(jointA)
	assertNear(t, "A.x", got.Transform.Location[0], lerp(lerp(2, 4, 0.25), 6, 0.25))
}

func TestRigJointsOverrideAllCopies(t *testing.T) {
	src := joints(RigJoint{jointA, at(1, 2, 3)})
	var dst RigJoints
	dst.AddJoint(jointB, at(0, 0, 0))
	dst.OverrideAll(src)

	src.Reset()
	src.AddJoint(jointC, at(9, 9, 9))

	want := []RigJoint{{jointA, at(1, 2, 3)}}
	if diff := cmp.Diff(want, dst.Joints()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEvaluationResultLerpAll(t *testing.T) {
	vars := NewVariableTable()
	from := NewEvaluationResult(vars)
	from.Pose = at(0, 0, 0)
	from.FieldOfView = 60
	from.IsCameraCut = true

	to := NewEvaluationResult(NewVariableTable())
	to.Pose = at(0, 10, 0)
	to.FieldOfView = 100

	from.LerpAll(to, 0.25)

	assertVec3(t, "location", from.Pose.Location, Vec3{0, 2.5, 0})
	assertNear(t, "fov", from.FieldOfView, 70)
	if !from.IsCameraCut {
		t.Error("camera cut flag changed")
	}
	if from.Variables != vars {
		t.Error("variable table changed")
	}
}
