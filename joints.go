package gimbal

// RigJoint is an externally addressable transform handle exposed by a rig,
// keyed by the variable it manipulates.
type RigJoint struct {
	VariableID VariableID
	Transform  Transform
}

// RigJoints is an insertion-ordered set of joints. Most rigs expose one or
// two, so the backing slice starts with room for two.
type RigJoints struct {
	joints []RigJoint
}

// AddJoint appends a joint. Duplicate IDs are allowed until the next LerpAll.
func (j *RigJoints) AddJoint(id VariableID, t Transform) {
	if j.joints == nil {
		j.joints = make([]RigJoint, 0, 2)
	}
	j.joints = append(j.joints, RigJoint{VariableID: id, Transform: t})
}

// Joints returns the joint list. The returned slice MUST NOT be mutated by
// the caller.
func (j *RigJoints) Joints() []RigJoint {
	return j.joints
}

// Len returns the number of joints.
func (j *RigJoints) Len() int {
	return len(j.joints)
}

// Find returns the first joint with the given ID.
func (j *RigJoints) Find(id VariableID) (RigJoint, bool) {
	for _, joint := range j.joints {
		if joint.VariableID == id {
			return joint, true
		}
	}
	return RigJoint{}, false
}

// Reset removes all joints, keeping the allocation.
func (j *RigJoints) Reset() {
	j.joints = j.joints[:0]
}

// OverrideAll replaces every joint with a copy of other's.
func (j *RigJoints) OverrideAll(other *RigJoints) {
	j.joints = append(j.joints[:0], other.joints...)
}

// LerpAll blends this set toward to by factor and deduplicates by ID.
//
// Joints present on both sides are lerped component-wise and always kept.
// Joints present on only one side survive on their majority side of the
// 0.5 crossover: ours while factor < 0.5, theirs once factor >= 0.5.
func (j *RigJoints) LerpAll(to *RigJoints, factor float64) {
	type entry struct {
		joint RigJoint
		keep  bool
	}
	keepOwn := factor < 0.5

	entries := make([]entry, 0, len(j.joints)+len(to.joints))
	index := make(map[VariableID]int, len(j.joints)+len(to.joints))
	for _, joint := range j.joints {
		if i, ok := index[joint.VariableID]; ok {
			entries[i].joint = joint
			continue
		}
		index[joint.VariableID] = len(entries)
		entries = append(entries, entry{joint: joint, keep: keepOwn})
	}

	for _, joint := range to.joints {
		if i, ok := index[joint.VariableID]; ok {
			e := &entries[i]
			e.joint.Transform = LerpTransform(e.joint.Transform, joint.Transform, factor)
			e.keep = true
			continue
		}
		if factor >= 0.5 {
			index[joint.VariableID] = len(entries)
			entries = append(entries, entry{joint: joint, keep: true})
		}
	}

	j.joints = j.joints[:0]
	for _, e := range entries {
		if e.keep {
			j.joints = append(j.joints, e.joint)
		}
	}
}
