package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"runtime"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound  = errors.New("loader: asset not found")
	ErrNotLoaded = errors.New("loader: asset not loaded")
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

type asset struct {
	state LoadState
	img   image.Image
	err   error
	done  chan struct{}
}

// Server loads image assets from a file system in the background and
// reports their state to callers that poll it every frame.
type Server struct {
	fsys    fs.FS
	workers int

	mu     sync.Mutex
	assets map[HandleID]*asset
}

type Option func(*Server)

// WithWorkers bounds the number of concurrent decodes.
func WithWorkers(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewServer creates a loader rooted at fsys.
func NewServer(fsys fs.FS, opts ...Option) *Server {
	s := &Server{
		fsys:    fsys,
		workers: runtime.GOMAXPROCS(0),
		assets:  make(map[HandleID]*asset),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsImage reports whether a file name has a supported image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(path.Ext(name))]
}

// LoadFolder enumerates every image below dir and starts loading them.
// Handles are returned in lexical path order.
func (s *Server) LoadFolder(dir string) ([]Handle, error) {
	dir = cleanPath(dir)
	var handles []Handle
	err := fs.WalkDir(s.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImage(p) {
			return nil
		}
		handles = append(handles, NewHandle(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: load folder %s: %w", dir, err)
	}
	s.start(handles)
	return handles, nil
}

// Load starts loading a single asset and returns its handle.
func (s *Server) Load(p string) Handle {
	h := NewHandle(p)
	s.start([]Handle{h})
	return h
}

// Handle returns the handle for a path without loading it.
func (s *Server) Handle(p string) Handle {
	return NewHandle(p)
}

func (s *Server) start(handles []Handle) {
	pending := make([]Handle, 0, len(handles))
	s.mu.Lock()
	for _, h := range handles {
		if a, ok := s.assets[h.ID]; ok && a.state != Failed {
			continue
		}
		s.assets[h.ID] = &asset{state: Loading, done: make(chan struct{})}
		pending = append(pending, h)
	}
	s.mu.Unlock()
	if len(pending) == 0 {
		return
	}

	go func() {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for _, h := range pending {
			g.Go(func() error {
				img, err := s.decode(h)
				s.finish(h, img, err)
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (s *Server) decode(h Handle) (image.Image, error) {
	b, err := fs.ReadFile(s.fsys, h.Path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", h.Path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", h.Path, err)
	}
	return img, nil
}

func (s *Server) finish(h Handle, img image.Image, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[h.ID]
	if !ok {
		return
	}
	if err != nil {
		a.state = Failed
		a.err = err
	} else {
		a.state = Loaded
		a.img = img
	}
	close(a.done)
}

// LoadState returns the state of a single asset.
func (s *Server) LoadState(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[h.ID]
	if !ok {
		return NotLoaded
	}
	return a.state
}

// GroupLoadState folds the states of a set of handles: Failed if any
// failed, NotLoaded if any was never requested, Loaded only when all are
// loaded.
func (s *Server) GroupLoadState(handles []Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	loaded := 0
	missing := false
	for _, h := range handles {
		a, ok := s.assets[h.ID]
		if !ok {
			missing = true
			continue
		}
		switch a.state {
		case Failed:
			return Failed
		case Loaded:
			loaded++
		}
	}
	switch {
	case missing:
		return NotLoaded
	case loaded == len(handles):
		return Loaded
	default:
		return Loading
	}
}

// Image returns the decoded image for a loaded asset.
func (s *Server) Image(h Handle) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[h.ID]
	if !ok || a.state != Loaded {
		return nil, false
	}
	return a.img, true
}

// Err returns the load error of a failed asset.
func (s *Server) Err(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[h.ID]
	if !ok {
		return ErrNotFound
	}
	return a.err
}

// GroupErr returns the errors of every failed asset in handles.
func (s *Server) GroupErr(handles []Handle) error {
	var errs []error
	for _, h := range handles {
		if s.LoadState(h) == Failed {
			errs = append(errs, s.Err(h))
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until every handle finished loading or ctx is done.
func (s *Server) Wait(ctx context.Context, handles []Handle) error {
	for _, h := range handles {
		s.mu.Lock()
		a, ok := s.assets[h.ID]
		s.mu.Unlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotLoaded, h.Path)
		}
		select {
		case <-a.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.GroupErr(handles)
}
