package recording

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// BackendFactory returns a fresh backend for one render.
type BackendFactory func() Backend

// format is one registry entry: a backend and the file extensions that
// select it.
type format struct {
	factory BackendFactory
	exts    []string
}

var (
	registryMu sync.RWMutex
	formats    = make(map[string]format)
	extensions = make(map[string]string) // ".png" -> "png"
)

// Register makes a backend available under a format name such as "png".
// Backend packages call it from init, so a blank import is enough to
// enable a format:
//
//	func init() {
//	    recording.Register("eps", func() recording.Backend {
//	        return NewBackend()
//	    }, ".eps", ".ps")
//	}
//
// The extensions are matched case-insensitively, with or without the
// leading dot. Register panics on a nil factory, a name registered
// twice, or an extension already claimed by another format.
func Register(name string, factory BackendFactory, exts ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: nil factory for format " + name)
	}
	if _, dup := formats[name]; dup {
		panic("recording: format " + name + " registered twice")
	}
	f := format{factory: factory}
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if owner, taken := extensions[ext]; taken {
			panic("recording: extension " + ext + " of " + name + " already belongs to " + owner)
		}
		f.exts = append(f.exts, ext)
	}
	for _, ext := range f.exts {
		extensions[ext] = name
	}
	formats[name] = f
}

// Unregister drops a format and its extensions. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, ext := range formats[name].exts {
		delete(extensions, ext)
	}
	delete(formats, name)
}

// NewBackend returns a new backend for the named format. A name nobody
// registered gives an error wrapping ErrUnknownBackend; usually the
// backend package was never imported:
//
//	import _ "github.com/gogpu/sketch/recording/backends/pdf"
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	f, ok := formats[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	Logger().Debug("recording: backend created", "name", name)
	return f.factory(), nil
}

// MustBackend is NewBackend for formats known to be linked in.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		panic(err)
	}
	return b
}

// FormatForExtension returns the format registered for a file extension
// such as ".svg" or "SVG".
func FormatForExtension(ext string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := extensions[normalizeExt(ext)]
	return name, ok
}

// Extensions returns the extensions registered for a format, in
// registration order.
func Extensions(name string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Clone(formats[name].exts)
}

// Backends returns the registered format names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name is a registered format.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := formats[name]
	return ok
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
