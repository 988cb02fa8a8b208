package atlas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path"

	"github.com/milk9111/atlasmap/loader"
	"gopkg.in/yaml.v3"
)

// TextureAtlas is a packed image plus the region of every texture in it.
type TextureAtlas struct {
	Texture  *image.RGBA
	Size     image.Point
	Textures []image.Rectangle

	handles []loader.Handle
	index   map[loader.HandleID]int
}

// Len returns the number of textures in the atlas.
func (a *TextureAtlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Textures)
}

// TextureIndex returns the index of the region packed for h.
func (a *TextureAtlas) TextureIndex(h loader.Handle) (int, bool) {
	if a == nil {
		return 0, false
	}
	i, ok := a.index[h.ID]
	return i, ok
}

// TextureIndexByName finds a texture by asset path or by file name.
func (a *TextureAtlas) TextureIndexByName(name string) (int, bool) {
	if a == nil || name == "" {
		return 0, false
	}
	if i, ok := a.TextureIndex(loader.NewHandle(name)); ok {
		return i, true
	}
	base := path.Base(name)
	for i, h := range a.handles {
		if h.Name() == base {
			return i, true
		}
	}
	return 0, false
}

// Region returns the rectangle of texture i.
func (a *TextureAtlas) Region(i int) (image.Rectangle, bool) {
	if a == nil || i < 0 || i >= len(a.Textures) {
		return image.Rectangle{}, false
	}
	return a.Textures[i], true
}

// Handle returns the handle that texture i was packed from.
func (a *TextureAtlas) Handle(i int) (loader.Handle, bool) {
	if a == nil || i < 0 || i >= len(a.handles) {
		return loader.Handle{}, false
	}
	return a.handles[i], true
}

// SubImage returns the pixels of texture i, sharing the atlas buffer.
func (a *TextureAtlas) SubImage(i int) (image.Image, bool) {
	r, ok := a.Region(i)
	if !ok {
		return nil, false
	}
	return a.Texture.SubImage(r), true
}

// Names returns the file names of every texture in index order.
func (a *TextureAtlas) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, len(a.handles))
	for i, h := range a.handles {
		names[i] = h.Name()
	}
	return names
}

// WritePNG encodes the packed texture.
func (a *TextureAtlas) WritePNG(w io.Writer) error {
	if a == nil || a.Texture == nil {
		return ErrNoTextures
	}
	if err := png.Encode(w, a.Texture); err != nil {
		return fmt.Errorf("atlas: encode png: %w", err)
	}
	return nil
}

// Manifest describes a packed atlas on disk.
type Manifest struct {
	Image   string           `yaml:"image"`
	Width   int              `yaml:"width"`
	Height  int              `yaml:"height"`
	Regions []ManifestRegion `yaml:"regions"`
}

type ManifestRegion struct {
	Index  int    `yaml:"index"`
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Manifest returns the region table of the atlas. imageName is the file the
// packed texture is stored in.
func (a *TextureAtlas) Manifest(imageName string) Manifest {
	m := Manifest{Image: imageName}
	if a == nil {
		return m
	}
	m.Width, m.Height = a.Size.X, a.Size.Y
	m.Regions = make([]ManifestRegion, 0, len(a.Textures))
	for i, r := range a.Textures {
		h, ok := a.Handle(i)
		if !ok {
			continue
		}
		m.Regions = append(m.Regions, ManifestRegion{
			Index:  i,
			Name:   h.Name(),
			Path:   h.Path,
			X:      r.Min.X,
			Y:      r.Min.Y,
			Width:  r.Dx(),
			Height: r.Dy(),
		})
	}
	return m
}

// Marshal encodes the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("atlas: marshal manifest: %w", err)
	}
	return data, nil
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("atlas: unmarshal manifest: %w", err)
	}
	return m, nil
}
