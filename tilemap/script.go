package tilemap

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

var ErrUnknownTexture = errors.New("tilemap: unknown texture")

// ScriptFill runs a tengo script once per cell. The script sees x, y,
// width, height and textures and sets tile to a texture name or index.
// It may also set flip_x, flip_y and hidden.
type ScriptFill struct {
	compiled *tengo.Compiled
	lookup   TextureLookup
	fallback uint16
}

func NewScriptFill(src []byte, width, height uint32, textures []string, lookup TextureLookup, fallback uint16) (*ScriptFill, error) {
	names := make([]any, len(textures))
	for i, n := range textures {
		names[i] = n
	}

	script := tengo.NewScript(src)
	for name, value := range map[string]any{
		"x":        0,
		"y":        0,
		"width":    int(width),
		"height":   int(height),
		"textures": names,
	} {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("tilemap: script add %s: %w", name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tilemap: compile fill script: %w", err)
	}
	return &ScriptFill{compiled: compiled, lookup: lookup, fallback: fallback}, nil
}

func (s *ScriptFill) TileAt(pos TilePos) (Tile, error) {
	if err := s.compiled.Set("x", int(pos.X)); err != nil {
		return Tile{}, err
	}
	if err := s.compiled.Set("y", int(pos.Y)); err != nil {
		return Tile{}, err
	}
	if err := s.compiled.RunContext(context.Background()); err != nil {
		return Tile{}, fmt.Errorf("tilemap: run fill script: %w", err)
	}

	tile := Tile{TextureIndex: s.fallback}
	if s.compiled.IsDefined("tile") {
		idx, err := s.resolve(s.compiled.Get("tile").Value())
		if err != nil {
			return Tile{}, err
		}
		tile.TextureIndex = idx
	}
	tile.FlipX = s.flag("flip_x")
	tile.FlipY = s.flag("flip_y")
	tile.Hidden = s.flag("hidden")
	return tile, nil
}

func (s *ScriptFill) flag(name string) bool {
	if !s.compiled.IsDefined(name) {
		return false
	}
	return s.compiled.Get(name).Bool()
}

func (s *ScriptFill) resolve(v any) (uint16, error) {
	switch t := v.(type) {
	case nil:
		return s.fallback, nil
	case string:
		if s.lookup == nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownTexture, t)
		}
		idx, ok := s.lookup(t)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownTexture, t)
		}
		return narrowIndex(idx)
	case int64:
		if t < 0 || t > math.MaxUint16 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidTextureIndex, t)
		}
		return uint16(t), nil
	default:
		return 0, fmt.Errorf("tilemap: fill script set tile to %T", v)
	}
}

// narrowIndex narrows an atlas index to the width stored in a Tile.
func narrowIndex(idx int) (uint16, error) {
	if idx < 0 || idx > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTextureIndex, idx)
	}
	return uint16(idx), nil
}
