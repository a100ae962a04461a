package sourcemap

import "github.com/cisasm/assembler/internal/debugcontext"

// Tracker resolves 1-based line numbers (and an optional byte offset within
// a line) to debugcontext.Location values for a single loaded Source.
//
// Create a Tracker exclusively through Track().
type Tracker struct {
	source Source
	lines  []string
}

// Track loads the file at path and returns a ready-to-use *Tracker, or an
// error if the file cannot be loaded.
func Track(path string) (*Tracker, error) {
	src, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &Tracker{
		source: src,
		lines:  splitLines(src.Content()),
	}, nil
}

// splitLines splits on '\n', dropping a trailing empty line produced by a
// final newline in the source.
func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// FilePath returns the path passed to Track.
func (t *Tracker) FilePath() string { return t.source.Path() }

// Lines returns the source split into lines, in order.
func (t *Tracker) Lines() []string { return t.lines }

// Line returns the 1-based line's text, or "" if out of range.
func (t *Tracker) Line(lineNumber int) string {
	if lineNumber < 1 || lineNumber > len(t.lines) {
		return ""
	}
	return t.lines[lineNumber-1]
}

// Loc resolves a 1-based line number and a byte offset within that line
// (0 for "entire line") into a debugcontext.Location anchored to this
// tracker's file path. The byte offset becomes the Location's column
// unchanged, so it is 0-based rather than 1-based, and a token at the very
// start of a line gets column 0, which Location renders as the whole line.
func (t *Tracker) Loc(lineNumber, byteOffset int) debugcontext.Location {
	return debugcontext.Loc(t.source.Path(), lineNumber, byteOffset)
}
