package tilemap

import (
	"fmt"
	"sort"
)

// Map groups the layers drawn at one position.
type Map struct {
	ID     uint16
	layers map[uint16]*Layer
}

func NewMap(id uint16) *Map {
	return &Map{ID: id, layers: make(map[uint16]*Layer)}
}

// AddLayer registers a built layer under its layer id.
func (m *Map) AddLayer(l *Layer) error {
	if l == nil {
		return fmt.Errorf("tilemap: add nil layer to map %d", m.ID)
	}
	if l.MapID != m.ID {
		return fmt.Errorf("tilemap: layer %d belongs to map %d, not %d", l.LayerID, l.MapID, m.ID)
	}
	m.layers[l.LayerID] = l
	return nil
}

func (m *Map) Layer(id uint16) (*Layer, bool) {
	l, ok := m.layers[id]
	return l, ok
}

// Layers returns the layers ordered by id, bottom first.
func (m *Map) Layers() []*Layer {
	out := make([]*Layer, 0, len(m.layers))
	for _, l := range m.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LayerID < out[j].LayerID })
	return out
}
