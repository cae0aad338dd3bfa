package text

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// DefaultFont is the name used when no font has been selected.
const DefaultFont = "Go"

// builtin maps the Go font family names to their TTF data. These are
// parsed on first lookup.
var builtin = map[string][]byte{
	"Go":                  goregular.TTF,
	"Go-Bold":             gobold.TTF,
	"Go-Italic":           goitalic.TTF,
	"Go-Bold-Italic":      gobolditalic.TTF,
	"Go-Medium":           gomedium.TTF,
	"Go-Medium-Italic":    gomediumitalic.TTF,
	"Go-Mono":             gomono.TTF,
	"Go-Mono-Bold":        gomonobold.TTF,
	"Go-Mono-Italic":      gomonoitalic.TTF,
	"Go-Mono-Bold-Italic": gomonobolditalic.TTF,
	"Go-Smallcaps":        gosmallcaps.TTF,
	"Go-Smallcaps-Italic": gosmallcapsitalic.TTF,
}

// aliases maps generic family names to builtin fonts. The Go family has
// no serif face, so "serif" resolves to the regular face.
var aliases = map[string]string{
	"sans":       "Go",
	"sans-serif": "Go",
	"serif":      "Go",
	"mono":       "Go-Mono",
	"monospace":  "Go-Mono",
}

var registryMu sync.RWMutex

// registry is keyed by lowercase name; display keeps the name as given.
var (
	registry = map[string]*FontSource{}
	display  = map[string]string{}
)

// Register makes src available under name. Names are matched without
// regard to case; registering an existing name replaces it.
func Register(name string, src *FontSource) {
	if src == nil {
		panic("text: Register source is nil")
	}
	key := strings.ToLower(name)

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = src
	display[key] = name
	Logger().Debug("text: font registered", "name", name, "family", src.Name())
}

// Lookup returns the font registered under name. The Go fonts and the
// generic aliases are available without registration.
func Lookup(name string) (*FontSource, error) {
	key := strings.ToLower(name)
	if target, ok := aliases[key]; ok {
		key = strings.ToLower(target)
	}

	registryMu.RLock()
	src, ok := registry[key]
	registryMu.RUnlock()
	if ok {
		return src, nil
	}

	for bname, data := range builtin {
		if strings.ToLower(bname) != key {
			continue
		}
		return loadBuiltin(bname, data)
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFont, name)
}

func loadBuiltin(name string, data []byte) (*FontSource, error) {
	key := strings.ToLower(name)

	registryMu.Lock()
	defer registryMu.Unlock()
	if src, ok := registry[key]; ok {
		return src, nil
	}
	src, err := NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("text: builtin font %q: %w", name, err)
	}
	registry[key] = src
	display[key] = name
	Logger().Debug("text: builtin font loaded", "name", name)
	return src, nil
}

// Names returns the sorted names of all registered and builtin fonts.
func Names() []string {
	seen := make(map[string]bool)
	var names []string
	for name := range builtin {
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}

	registryMu.RLock()
	for key, name := range display {
		if !seen[key] {
			names = append(names, name)
		}
	}
	registryMu.RUnlock()

	slices.Sort(names)
	return names
}

// Default returns the default font source.
func Default() *FontSource {
	src, err := Lookup(DefaultFont)
	if err != nil {
		// The Go fonts are embedded; failing to parse them is a build defect.
		panic(err)
	}
	return src
}
