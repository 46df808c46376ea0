// Package caribou is a retained-mode widget toolkit core.
//
// Caribou provides the widget tree, reactive properties and events, hit
// testing, hover tracking, focus traversal and a backend-neutral draw batch.
// Turning a batch into pixels and polling the platform for input is left to
// a backend; package ebitenbackend is the stock one, built on [Ebitengine].
//
// # Quick start
//
//	scene := caribou.NewScene()
//
//	ok := caribou.NewButton(scene)
//	caribou.ButtonOf(ok).ApplyDefaultStyle()
//	ok.Position.Set(caribou.V(20, 20))
//	ok.Action.Subscribe(func(w *caribou.Widget, _ any) { fmt.Println("clicked") })
//	scene.Root().AddChild(ok)
//
//	ebitenbackend.Run(scene, caribou.DefaultConfig())
//
// A backend drives the scene through its entry points: [Scene.PointerMove],
// [Scene.ButtonDown], [Scene.KeyDown], [Scene.Commit] and friends for input,
// [Scene.Update] once per tick and [Scene.Draw] whenever [Scene.TakeRedraw]
// reports a pending request.
//
// # Widgets
//
// Every node is a [Widget] built by [NewWidget]. All widgets share the same
// properties and events; a flavor such as [NewLayout], [NewButton] or
// [NewTextField] subscribes to them and stores its private state in
// [Widget.Data], read back with [PayloadAs] or the flavor's accessor
// ([LayoutOf], [ButtonOf], [TextFieldOf]).
//
// Children and content are owned by their parent. Everything else that
// points at a widget (its parent link, hover sets, tab orders, the focus
// slot) holds a weak [Ref], so dropping or disposing a widget never leaves
// a strong cycle behind. Dead references are purged before each traversal.
//
// # Properties and events
//
// [Property.Set] tells every listener about the new value before storing it.
// Events come in result-bearing ([Event], [EventOf]) and fire-and-forget
// ([Signal], [SignalOf]) shapes; [VetoEvent] aggregates boolean answers for
// transitions like gaining and losing focus.
//
// The widget tree is single-threaded. Use [Scene.Post] to hand work back to
// the UI goroutine, and package dispatch for background work.
//
// [Ebitengine]: https://ebitengine.org
package caribou
