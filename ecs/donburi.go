package ecs

import (
	"github.com/phanxgames/gimbal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// RigData is the component attaching a rig to an entity.
type RigData struct {
	Rig *gimbal.Rig
}

// RigComponent is the Donburi component type for rigs.
var RigComponent = donburi.NewComponentType[RigData]()

// OperationEvent addresses an operation to the rig of Entity.
type OperationEvent struct {
	Entity    donburi.Entity
	Operation gimbal.Operation
}

// PoseEvent is one evaluated frame of the rig of Entity.
type PoseEvent struct {
	Entity donburi.Entity
	gimbal.PoseEvent
}

// OperationEventType is the Donburi event type for operations. Published
// events are queued on their rig and run on its next update.
var OperationEventType = events.NewEventType[OperationEvent]()

// PoseEventType is the Donburi event type for rig output.
var PoseEventType = events.NewEventType[PoseEvent]()

var rigQuery = donburi.NewQuery(filter.Contains(RigComponent))

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a PoseSink that publishes every frame to
// PoseEventType on behalf of entity.
func NewDonburiSink(world donburi.World, entity donburi.Entity) gimbal.PoseSink {
	return &donburiSink{world: world, entity: entity}
}

func (s *donburiSink) EmitPose(event gimbal.PoseEvent) {
	PoseEventType.Publish(s.world, PoseEvent{Entity: s.entity, PoseEvent: event})
}

// AddRig creates an entity carrying rig and routes the rig's output to
// PoseEventType.
func AddRig(world donburi.World, rig *gimbal.Rig) donburi.Entity {
	entity := world.Create(RigComponent)
	RigComponent.SetValue(world.Entry(entity), RigData{Rig: rig})
	rig.SetPoseSink(NewDonburiSink(world, entity))
	return entity
}

// RouteOperations subscribes the world to OperationEventType so that events
// are queued on their target rig. Call it once per world. Events addressed
// to entities without a rig are dropped.
func RouteOperations(world donburi.World) {
	OperationEventType.Subscribe(world, routeOperation)
}

func routeOperation(world donburi.World, e OperationEvent) {
	if !world.Valid(e.Entity) {
		return
	}
	entry := world.Entry(e.Entity)
	if !entry.HasComponent(RigComponent) {
		return
	}
	if rig := RigComponent.Get(entry).Rig; rig != nil {
		rig.InjectOperation(e.Operation)
	}
}

// UpdateSystem delivers pending operation events and then updates every
// rig in the world by dt. Pose events are left queued for subscribers.
func UpdateSystem(world donburi.World, dt float64) {
	OperationEventType.ProcessEvents(world)
	rigQuery.Each(world, func(entry *donburi.Entry) {
		if rig := RigComponent.Get(entry).Rig; rig != nil {
			rig.Update(dt)
		}
	})
}
