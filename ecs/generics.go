package ecs

import (
	"fmt"

	"github.com/milk9111/atlasmap/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := newSparseSet[T]()
		w.stores[kind.ID()] = set
		return set
	}
	set, ok := s.(*sparseSet[T])
	if !ok {
		return nil
	}
	return set
}

// Add attaches value to e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, key component.Key[T], value *T) error {
	kind := key.Kind()
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	set := storeFor(w, kind, true)
	if set == nil {
		return fmt.Errorf("%w: id %d registered with another type", component.ErrInvalidComponentKind, kind.ID())
	}
	set.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, key component.Key[T]) (*T, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	set := storeFor(w, key.Kind(), false)
	if set == nil {
		return nil, false
	}
	return set.get(e.id())
}

func Has[T any](w *World, e Entity, key component.Key[T]) bool {
	_, ok := Get(w, e, key)
	return ok
}

func Remove[T any](w *World, e Entity, key component.Key[T]) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	set := storeFor(w, key.Kind(), false)
	if set == nil {
		return false
	}
	return set.remove(e.id())
}

// ForEach calls fn for every live entity with a component of key, ordered by
// entity id.
func ForEach[T any](w *World, key component.Key[T], fn func(Entity, *T)) {
	for _, e := range w.Query(key.Kind()) {
		if v, ok := Get(w, e, key); ok {
			fn(e, v)
		}
	}
}

// ForEach2 calls fn for every live entity that has both components.
func ForEach2[A, B any](w *World, ka component.Key[A], kb component.Key[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka.Kind(), kb.Kind()) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}
