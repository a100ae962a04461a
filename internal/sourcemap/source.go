// Package sourcemap loads assembly source files and resolves byte offsets
// within them to 1-based line/column positions for diagnostics.
package sourcemap

import (
	"errors"
	"os"
	"strings"
)

var (
	osStat     = os.Stat
	osReadFile = os.ReadFile
)

// Source represents a validated, loaded source file. If a Source value
// exists, it is guaranteed to hold a valid path and its file content.
// There is no unloaded or partially-initialised state.
//
// Create a Source exclusively through Load().
type Source struct {
	path    string
	content string
}

// Load validates the path, reads the file, and returns a ready-to-use
// Source — or an error. This is the only way to construct a Source.
func Load(path string) (Source, error) {
	if !strings.HasSuffix(path, ".asm") {
		return Source{}, errors.New("sourcemap: source file must have a .asm extension")
	}

	info, err := osStat(path)
	if err != nil {
		return Source{}, err
	}
	if info.IsDir() {
		return Source{}, errors.New("sourcemap: source path is a directory where a file is expected")
	}

	content, err := osReadFile(path)
	if err != nil {
		return Source{}, err
	}

	return Source{path: path, content: string(content)}, nil
}

// Path returns the file path of the source.
func (s Source) Path() string { return s.path }

// Content returns the loaded content of the source file.
func (s Source) Content() string { return s.content }
