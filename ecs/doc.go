// Package ecs bridges wisp engine notices into a [Donburi] world.
//
// [NewDonburiSink] publishes every [wisp.Notice] as a typed event on
// [NoticeEventType] and keeps one entity per container whose
// [ContainerState] component mirrors the container's trigger state.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine, err := wisp.New(cfg, wisp.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
