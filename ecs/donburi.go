package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/caribou"
)

// ActionEventType is the Donburi event type for widget actions.
var ActionEventType = events.NewEventType[caribou.ActionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Actions are queued on ActionEventType until ProcessEvents runs.
func NewDonburiStore(world donburi.World) caribou.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitAction(event caribou.ActionEvent) {
	ActionEventType.Publish(s.world, event)
}

// Forward sets a Donburi store on scene and watches every widget in ws.
// The returned handles unsubscribe the forwarding listeners. Stock widgets
// are watched on creation, so for them Forward returns the existing handle
// and each action still reaches the world once.
func Forward(scene *caribou.Scene, world donburi.World, ws ...*caribou.Widget) []caribou.Handle {
	scene.SetEntityStore(NewDonburiStore(world))
	handles := make([]caribou.Handle, 0, len(ws))
	for _, w := range ws {
		handles = append(handles, scene.Watch(w))
	}
	return handles
}
