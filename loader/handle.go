package loader

import (
	"hash/fnv"
	"path"
	"strings"
)

// HandleID identifies an asset by its cleaned path.
type HandleID uint64

// Handle is an opaque reference to an image asset.
type Handle struct {
	ID   HandleID
	Path string
}

// NewHandle returns the handle for an asset path. The same path always maps
// to the same handle, whether or not it has been loaded.
func NewHandle(p string) Handle {
	clean := cleanPath(p)
	h := fnv.New64a()
	_, _ = h.Write([]byte(clean))
	return Handle{ID: HandleID(h.Sum64()), Path: clean}
}

// Name returns the file name of the asset.
func (h Handle) Name() string {
	return path.Base(h.Path)
}

func (h Handle) String() string {
	return h.Path
}

func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return strings.TrimPrefix(p, "./")
}

// LoadState is the progress of one asset or a group of assets.
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not_loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
