package scene

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scene.yaml
var sceneFS embed.FS

const DefaultFile = "scene.yaml"

var ErrInvalid = errors.New("scene: invalid spec")

// Fill policies understood by the map assembler.
const (
	FillUniform = "uniform"
	FillScript  = "script"
	FillTMX     = "tmx"
)

type Spec struct {
	Window        WindowSpec  `yaml:"window"`
	AssetsDir     string      `yaml:"assets_dir"`
	TexturesDir   string      `yaml:"textures_dir"`
	TileTexture   string      `yaml:"tile_texture"`
	Atlas         AtlasSpec   `yaml:"atlas"`
	Map           MapSpec     `yaml:"map"`
	Camera        CameraSpec  `yaml:"camera"`
	SpritePreview PreviewSpec `yaml:"sprite_preview"`
	AtlasPreview  PreviewSpec `yaml:"atlas_preview"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type AtlasSpec struct {
	InitialSize int `yaml:"initial_size"`
	MaxSize     int `yaml:"max_size"`
	Padding     int `yaml:"padding"`
}

type MapSpec struct {
	ID        uint16   `yaml:"id"`
	Layer     uint16   `yaml:"layer"`
	Size      UintVec  `yaml:"size"`
	ChunkSize UintVec  `yaml:"chunk_size"`
	TileSize  Vec      `yaml:"tile_size"`
	Offset    Vec      `yaml:"offset"`
	Fill      FillSpec `yaml:"fill"`
}

// FillSpec selects how the map layer is filled. Script and TMX paths are
// relative to the assets root.
type FillSpec struct {
	Policy string `yaml:"policy"`
	Script string `yaml:"script"`
	TMX    string `yaml:"tmx"`
	Layer  string `yaml:"layer"`
}

type CameraSpec struct {
	Scale float64 `yaml:"scale"`
}

type PreviewSpec struct {
	Translation Vec     `yaml:"translation"`
	Scale       float64 `yaml:"scale"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type UintVec struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
}

// Load reads name from the working directory, falling back to the embedded
// default scene.
func Load(name string) (*Spec, error) {
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		data, err = sceneFS.ReadFile(DefaultFile)
	}
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return spec, nil
}

// Default returns the embedded scene.
func Default() *Spec {
	data, err := sceneFS.ReadFile(DefaultFile)
	if err != nil {
		panic("scene: embedded default missing: " + err.Error())
	}
	spec, err := Parse(data)
	if err != nil {
		panic("scene: embedded default invalid: " + err.Error())
	}
	return spec
}

// Parse decodes a scene, fills unset fields with defaults and validates it.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *Spec) applyDefaults() {
	if s.Window.Width == 0 {
		s.Window.Width = 1270
	}
	if s.Window.Height == 0 {
		s.Window.Height = 720
	}
	if s.Window.Title == "" {
		s.Window.Title = "Map Example"
	}
	if s.AssetsDir == "" {
		s.AssetsDir = "assets"
	}
	if s.TexturesDir == "" {
		s.TexturesDir = "textures"
	}
	if s.TileTexture == "" {
		s.TileTexture = "textures/lime.png"
	}
	if s.Atlas.InitialSize == 0 {
		s.Atlas.InitialSize = 256
	}
	if s.Atlas.MaxSize == 0 {
		s.Atlas.MaxSize = 2048
	}
	if s.Map.Size == (UintVec{}) {
		s.Map.Size = UintVec{X: 2, Y: 2}
	}
	if s.Map.ChunkSize == (UintVec{}) {
		s.Map.ChunkSize = UintVec{X: 8, Y: 8}
	}
	if s.Map.TileSize == (Vec{}) {
		s.Map.TileSize = Vec{X: 16, Y: 16}
	}
	if s.Map.Fill.Policy == "" {
		s.Map.Fill.Policy = FillUniform
	}
	if s.Camera.Scale == 0 {
		s.Camera.Scale = 1
	}
	if s.SpritePreview.Scale == 0 {
		s.SpritePreview.Scale = 1
	}
}

func (s *Spec) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	case s.Atlas.InitialSize <= 0 || s.Atlas.MaxSize < s.Atlas.InitialSize:
		return fmt.Errorf("%w: atlas size %d..%d", ErrInvalid, s.Atlas.InitialSize, s.Atlas.MaxSize)
	case s.Atlas.Padding < 0:
		return fmt.Errorf("%w: atlas padding %d", ErrInvalid, s.Atlas.Padding)
	case s.Map.Size.X == 0 || s.Map.Size.Y == 0:
		return fmt.Errorf("%w: map size %dx%d", ErrInvalid, s.Map.Size.X, s.Map.Size.Y)
	case s.Map.ChunkSize.X == 0 || s.Map.ChunkSize.Y == 0:
		return fmt.Errorf("%w: chunk size %dx%d", ErrInvalid, s.Map.ChunkSize.X, s.Map.ChunkSize.Y)
	case s.Map.TileSize.X <= 0 || s.Map.TileSize.Y <= 0:
		return fmt.Errorf("%w: tile size %gx%g", ErrInvalid, s.Map.TileSize.X, s.Map.TileSize.Y)
	case s.Camera.Scale < 0:
		return fmt.Errorf("%w: camera scale %g", ErrInvalid, s.Camera.Scale)
	}

	switch s.Map.Fill.Policy {
	case FillUniform:
	case FillScript:
		if s.Map.Fill.Script == "" {
			return fmt.Errorf("%w: script fill needs a script path", ErrInvalid)
		}
	case FillTMX:
		if s.Map.Fill.TMX == "" {
			return fmt.Errorf("%w: tmx fill needs a tmx path", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown fill policy %q", ErrInvalid, s.Map.Fill.Policy)
	}
	return nil
}
