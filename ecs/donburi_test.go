package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/caribou"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	var store caribou.EntityStore = NewDonburiStore(world)
	require.NotNil(t, store)
}

func TestDonburiStore_EmitAction(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []caribou.ActionEvent
	ActionEventType.Subscribe(world, func(w donburi.World, e caribou.ActionEvent) {
		received = append(received, e)
	})

	store.EmitAction(caribou.ActionEvent{WidgetID: 42, Name: "ok", Payload: caribou.ActivatedByPointer})
	store.EmitAction(caribou.ActionEvent{WidgetID: 7, Name: "cancel"})

	// Queued until processed.
	assert.Empty(t, received)
	ActionEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, uint32(42), received[0].WidgetID)
	assert.Equal(t, caribou.ActivatedByPointer, received[0].Payload)
	assert.Equal(t, "cancel", received[1].Name)
}

func TestForward_ButtonClick(t *testing.T) {
	world := donburi.NewWorld()
	scene := caribou.NewScene()
	btn := caribou.NewWidget("ok")
	scene.Root().AddChild(btn)
	Forward(scene, world, btn)

	var got []caribou.ActionEvent
	ActionEventType.Subscribe(world, func(w donburi.World, e caribou.ActionEvent) {
		got = append(got, e)
	})

	btn.Action.Broadcast("clicked")
	events.ProcessAllEvents(world)

	require.Len(t, got, 1)
	assert.Equal(t, btn.ID, got[0].WidgetID)
	assert.Equal(t, "ok", got[0].Name)
	assert.Equal(t, "clicked", got[0].Payload)
}

func TestForward_StockButtonForwardsOnce(t *testing.T) {
	world := donburi.NewWorld()
	scene := caribou.NewScene()
	btn := caribou.NewButton(scene)
	scene.Root().AddChild(btn)
	Forward(scene, world, btn)

	var got []caribou.ActionEvent
	ActionEventType.Subscribe(world, func(w donburi.World, e caribou.ActionEvent) {
		got = append(got, e)
	})

	scene.PointerEnter()
	scene.PointerMove(10, 10)
	scene.ButtonDown(caribou.MouseButtonPrimary)
	scene.ButtonUp(caribou.MouseButtonPrimary)
	events.ProcessAllEvents(world)

	require.Len(t, got, 1)
	assert.Equal(t, btn.ID, got[0].WidgetID)
	assert.Equal(t, caribou.ActivatedByPointer, got[0].Payload)
}

func TestForward_HandlesStopForwarding(t *testing.T) {
	world := donburi.NewWorld()
	scene := caribou.NewScene()
	w := caribou.NewWidget("w")
	handles := Forward(scene, world, w)
	require.Len(t, handles, 1)

	count := 0
	ActionEventType.Subscribe(world, func(donburi.World, caribou.ActionEvent) { count++ })

	assert.True(t, handles[0].Remove())
	w.Action.Broadcast(nil)
	ActionEventType.ProcessEvents(world)
	assert.Zero(t, count)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	ActionEventType.Subscribe(world, func(donburi.World, caribou.ActionEvent) { count1++ })
	ActionEventType.Subscribe(world, func(donburi.World, caribou.ActionEvent) { count2++ })

	store.EmitAction(caribou.ActionEvent{Name: "click"})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}
