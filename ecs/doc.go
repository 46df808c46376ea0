// Package ecs bridges caribou widget actions into a [Donburi] world.
//
// [NewDonburiStore] implements caribou.EntityStore by publishing every
// forwarded action as an [ActionEventType] event. Systems subscribe to the
// event type and drain it with ProcessEvents once per tick.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	scene.Watch(button)
//
//	ecs.ActionEventType.Subscribe(world, func(w donburi.World, ev caribou.ActionEvent) {
//		// ...
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
