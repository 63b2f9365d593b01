// Package assets resolves the screenshot references used by guide steps.
//
// A reference is a path relative to the asset root (usually the directory the
// guide was started from). Resolving it means opening the file and decoding
// its image header; the pixels are never read.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"

	"github.com/vanderheijden86/alertguide/pkg/debug"
	"github.com/vanderheijden86/alertguide/pkg/metrics"
)

// Status is the load state of one image region.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound    = errors.New("image not found")
	ErrUndecodable = errors.New("not a decodable image")
	ErrInvalidRef  = errors.New("invalid image reference")
)

// LoadError reports that a reference could not be turned into an image.
type LoadError struct {
	Ref string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %q: %v", e.Ref, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Image describes a successfully resolved reference.
type Image struct {
	Ref    string
	Format string // "png", "jpeg", ...
	Width  int
	Height int
}

// Resolver turns a reference into image metadata.
type Resolver interface {
	Resolve(ref string) (Image, error)
}

// FSResolver resolves references inside a file system.
type FSResolver struct {
	FS fs.FS
}

// NewDirResolver resolves references relative to dir.
func NewDirResolver(dir string) FSResolver {
	if dir == "" {
		dir = "."
	}
	return FSResolver{FS: os.DirFS(dir)}
}

// Resolve opens ref and decodes its header. Failures are *LoadError.
func (r FSResolver) Resolve(ref string) (Image, error) {
	name := strings.TrimPrefix(path.Clean(strings.ReplaceAll(ref, "\\", "/")), "./")
	if ref == "" || !fs.ValidPath(name) {
		return Image{}, &LoadError{Ref: ref, Err: ErrInvalidRef}
	}

	f, err := r.FS.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Image{}, &LoadError{Ref: ref, Err: ErrNotFound}
		}
		return Image{}, &LoadError{Ref: ref, Err: err}
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, &LoadError{Ref: ref, Err: fmt.Errorf("%w: %v", ErrUndecodable, err)}
	}
	return Image{Ref: ref, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

type outcome struct {
	img Image
	err error
}

// Store memoizes resolution outcomes. Concurrent loads of one reference share
// a single resolution. A failure stays cached until Forget or Reset; nothing
// is retried on its own.
type Store struct {
	resolver Resolver
	group    singleflight.Group

	mu    sync.RWMutex
	cache map[string]outcome
}

// NewStore wraps r.
func NewStore(r Resolver) *Store {
	return &Store{resolver: r, cache: make(map[string]outcome)}
}

// Load returns the outcome for ref, resolving it on first use. Safe for
// concurrent use.
func (s *Store) Load(ref string) (Image, error) {
	s.mu.RLock()
	o, ok := s.cache[ref]
	s.mu.RUnlock()
	if ok {
		metrics.ImageCache.Hit()
		return o.img, o.err
	}
	metrics.ImageCache.Miss()

	v, _, _ := s.group.Do(ref, func() (any, error) {
		stop := metrics.Timer(metrics.ImageResolve)
		img, err := s.resolver.Resolve(ref)
		stop()
		o := outcome{img: img, err: err}
		s.mu.Lock()
		s.cache[ref] = o
		s.mu.Unlock()
		debug.LogIf(err != nil, "assets: %v", err)
		return o, nil
	})
	o = v.(outcome)
	return o.img, o.err
}

// Peek returns the cached status of ref without resolving it.
func (s *Store) Peek(ref string) (Status, Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.cache[ref]
	switch {
	case !ok:
		return StatusLoading, Image{}, nil
	case o.err != nil:
		return StatusFailed, Image{}, o.err
	default:
		return StatusLoaded, o.img, nil
	}
}

// ForgetFailed drops every cached failure and returns the affected refs.
func (s *Store) ForgetFailed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var refs []string
	for ref, o := range s.cache {
		if o.err != nil {
			refs = append(refs, ref)
			delete(s.cache, ref)
		}
	}
	return refs
}
