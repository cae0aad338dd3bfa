package sketch

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/sketch/recording"

	// Output backends.
	_ "github.com/gogpu/sketch/recording/backends/eps"
	_ "github.com/gogpu/sketch/recording/backends/pdf"
	_ "github.com/gogpu/sketch/recording/backends/raster"
	_ "github.com/gogpu/sketch/recording/backends/svg"
)

// FormatForFilename returns the backend name for the extension of name,
// as claimed by the backend when it registered. An unknown extension
// returns an error wrapping ErrUnknownFormat.
func FormatForFilename(name string) (string, error) {
	ext := filepath.Ext(name)
	format, ok := recording.FormatForExtension(ext)
	if !ok {
		return "", fmt.Errorf("%w: extension %q of %q", ErrUnknownFormat, ext, name)
	}
	return format, nil
}

// Formats returns the sorted names of the registered output backends.
func Formats() []string {
	return recording.Backends()
}
