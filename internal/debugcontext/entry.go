package debugcontext

import "fmt"

// Severity constants for entry classification. Only "error" and "trace"
// are ever recorded by this assembler: one error entry for the first
// fatal reduction failure, one trace entry per completed fixed-point
// iteration.
const (
	SeverityError = "error"
	SeverityTrace = "trace"
)

// Entry is a single diagnostic event recorded by the assembler pipeline.
// It captures what happened, where it happened, and how severe it is.
//
// Entries are append-only - once created, their fields are immutable.
type Entry struct {
	severity string   // "error" | "trace"
	phase    string   // Pipeline phase at recording time.
	message  string   // Human-readable description.
	location Location // Source position the entry refers to.
}

// String returns a single-line human-readable representation for quick debugging.
// Format: "severity [phase] location: message"
func (e *Entry) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", e.severity, e.phase, e.location.String(), e.message)
}
