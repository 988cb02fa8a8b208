package ecs

import (
	"cmp"
	"slices"

	"github.com/milk9111/atlasmap/ecs/component"
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, component stores and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	systems  []System
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false if e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns all live entities in creation-slot order.
func Entities(w *World) []Entity {
	return w.entities.entities()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Query returns the live entities that have every given component kind,
// ordered by entity id.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		sets = append(sets, s)
	}
	// walk the smallest set
	slices.SortFunc(sets, func(a, b store) int { return a.len() - b.len() })

	var out []Entity
	for _, id := range sets[0].ids() {
		match := true
		for _, s := range sets[1:] {
			if !s.has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e := w.entityFor(id); w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Entity) int { return cmp.Compare(a.id(), b.id()) })
	return out
}

// First returns the lowest live entity that has kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func (w *World) entityFor(id entityID) Entity {
	if int(id) >= len(w.entities.gen) {
		return 0
	}
	return makeEntity(id, w.entities.gen[id])
}
