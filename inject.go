package gimbal

// injectedOperation is an operation waiting in a rig's inject queue. delay
// counts the updates left before it runs.
type injectedOperation struct {
	op    Operation
	delay int
}

// InjectOperation queues op for the next Update, where it runs before the
// tree is evaluated. Unlike ExecuteOperation the caller cannot observe what
// was consumed.
func (r *Rig) InjectOperation(op Operation) {
	r.injectOperationAfter(op, 0)
}

func (r *Rig) injectOperationAfter(op Operation, delay int) {
	if op == nil {
		return
	}
	r.injectQueue = append(r.injectQueue, injectedOperation{op: op, delay: delay})
}

// InjectYawPitch queues an absolute yaw/pitch for the next Update.
func (r *Rig) InjectYawPitch(yaw, pitch float64) {
	r.InjectOperation(&YawPitchOperation{
		Yaw:   AbsoluteValue(yaw),
		Pitch: AbsoluteValue(pitch),
	})
}

// InjectYawPitchDelta queues a relative yaw/pitch for the next Update.
func (r *Rig) InjectYawPitchDelta(yaw, pitch float64) {
	r.InjectOperation(&YawPitchOperation{
		Yaw:   DeltaValue(yaw),
		Pitch: DeltaValue(pitch),
	})
}

// InjectSingleValue queues a single-value operation addressed to target.
func (r *Rig) InjectSingleValue(target VariableID, value ConsumableValue[float64]) {
	r.InjectOperation(&SingleValueOperation{Target: target, Value: value})
}

// InjectLookSweep spreads a relative yaw/pitch evenly over the next frames
// updates, one delta per update. Minimum frames is 1.
func (r *Rig) InjectLookSweep(yaw, pitch float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	n := float64(frames)
	for i := 0; i < frames; i++ {
		r.injectOperationAfter(&YawPitchOperation{
			Yaw:   DeltaValue(yaw / n),
			Pitch: DeltaValue(pitch / n),
		}, i)
	}
}

// PendingOperations returns the number of queued operations.
func (r *Rig) PendingOperations() int {
	return len(r.injectQueue)
}

// processInjectedOperations executes the operations due this update, in
// queue order, and ages the rest.
func (r *Rig) processInjectedOperations() {
	if len(r.injectQueue) == 0 {
		return
	}
	kept := r.injectQueue[:0]
	var due []Operation
	for _, q := range r.injectQueue {
		if q.delay == 0 {
			due = append(due, q.op)
			continue
		}
		q.delay--
		kept = append(kept, q)
	}
	r.injectQueue = kept
	for _, op := range due {
		r.ExecuteOperation(op)
	}
}
