// Package ecs provides ECS adapters for gimbal rigs.
//
// Rigs are attached to [Donburi] entities with [AddRig]. [UpdateSystem]
// routes queued [OperationEvent]s to their target rigs, then updates every
// rig. Each rig's output is published as a [PoseEvent]; subscribe to
// [PoseEventType] in your ECS systems to receive them.
//
// Usage:
//
//	entity := ecs.AddRig(world, rig)
//	ecs.OperationEventType.Publish(world, ecs.OperationEvent{Entity: entity, Operation: op})
//	ecs.UpdateSystem(world, dt)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
