// Package gimbal is a camera-rig evaluation and blending engine.
//
// Gimbal provides the node tree, per-frame evaluation, input accumulation,
// boom arms with spring-damped length, layered camera shake, typed
// correction operations, and rig blending that a third-person camera
// needs. It has no renderer; hosts read the evaluated pose and draw with
// whatever they like (see examples/boomarm for an [Ebitengine] viewer).
//
// # Quick start
//
// Build a tree of evaluators and drive it with a [Rig]:
//
//	target := gimbal.NewVariableID("player")
//	look := &gimbal.Input2DEvaluator{AxisVariable: gimbal.NewVariableID("look"), Sensitivity: 90}
//	boom := &gimbal.BoomArmEvaluator{
//		Input:              look,
//		BoomOffset:         gimbal.Vec3Parameter{Value: gimbal.Vec3{-4, 0, 1}},
//		LengthInterpolator: gimbal.SpringInterpolatorConfig{AngularFrequency: 6, DampingRatio: 1},
//	}
//	rig := gimbal.NewRig("follow", gimbal.NewArray(
//		&gimbal.TargetEvaluator{Location: gimbal.Vec3Parameter{Variable: target}},
//		boom,
//	))
//
//	// every frame
//	rig.Variables().Set(target, playerPosition)
//	result := rig.Update(dt)
//
// Rigs can also be described in YAML and loaded with [LoadRigDef].
//
// # Evaluation
//
// Every node implements [Evaluator]. A rig builds its tree once, initializes
// it on activation, and then calls Run on the root every frame with a
// shared [EvaluationResult]. Each node runs the children it needs and
// writes its contribution into the result in place.
//
// # Operations
//
// An [Operation] is a correction pushed down the tree, such as "set pitch
// to 30" or "add 5 to zoom". Its fields are [ConsumableValue]s: nodes that
// handle part of a request consume that part, and whatever is left tells
// the caller what could not be applied, for instance pitch beyond a limit.
//
// # Shake
//
// A shake tree ([ShakeEvaluator]) runs after the main tree and perturbs its
// result. [CompositeShakeEvaluator] stacks shakes and
// [EnvelopeShakeEvaluator] ramps one in and out; leaves are driven by
// [MultiOctaveNoise] or OpenSimplex noise.
//
// # Blending
//
// [Blender] cross-fades two rigs with a [gween] easing curve. Rig joints
// are blended by ID with [RigJoints.LerpAll].
//
// ECS integration is available through the [Donburi] adapter in gimbal/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gimbal
