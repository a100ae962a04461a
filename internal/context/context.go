// Package context holds the assembler's mutable per-run state: the current
// emission address, the label and allocation tables, the hierarchical local
// label scope, and the fixed-point iteration budget.
package context

import (
	"fmt"
	"strings"

	"github.com/cisasm/assembler/internal/cis"
)

// Context is the single mutable owner of the label table, the pending
// allocation queue, and the current emission address for one assemble run.
//
// Create a Context exclusively through New() or NewWithIterations().
type Context struct {
	is *cis.InstructionSet

	address uint32

	// labels maps a canonical label path to its resolved address. A
	// label present in this map with placed=false is declared but not
	// yet placed (a pending allocation).
	labels map[string]*labelEntry

	// allocations queues alloc targets until SetAllocationOffset drains
	// them. order preserves declaration order since map iteration order
	// is not guaranteed.
	allocations map[string]uint32
	order       []string

	// labelOrder preserves the order labels were first placed, for the
	// symbol listing.
	labelOrder []string

	allocationOffset    uint32
	allocationOffsetSet bool

	path []string

	counter int
}

type labelEntry struct {
	addr   uint32
	placed bool
}

// DefaultFixedPointIterations is the default bound on the forward-reference
// retry loop.
const DefaultFixedPointIterations = 100

// New returns a ready-to-use *Context bound to the given instruction set,
// with the fixed-point iteration counter set to DefaultFixedPointIterations.
func New(is *cis.InstructionSet) *Context {
	return NewWithIterations(is, DefaultFixedPointIterations)
}

// NewWithIterations is like New but lets the caller override the
// fixed-point iteration bound.
func NewWithIterations(is *cis.InstructionSet, iterations int) *Context {
	return &Context{
		is:          is,
		labels:      make(map[string]*labelEntry),
		allocations: make(map[string]uint32),
		counter:     iterations,
	}
}

// --- Address ---

// Address returns the next emission address in 16-bit words.
func (c *Context) Address() uint32 { return c.address }

// ResetAddress sets the address back to 0, as done at the start of every
// pass_once.
func (c *Context) ResetAddress() { c.address = 0 }

// Advance moves the emission address forward by n words.
func (c *Context) Advance(n uint32) { c.address += n }

// --- Symbols (delegates to the bound instruction set) ---

// Symbol looks up a named symbolic operand case-insensitively.
func (c *Context) Symbol(name string) (cis.Symbol, bool) {
	return c.is.Symbol(name)
}

// InstructionSet returns the instruction set this context validates
// instructions against.
func (c *Context) InstructionSet() *cis.InstructionSet { return c.is }

// --- Scope & canonicalisation ---

// Depth returns the current local-label scope depth.
func (c *Context) Depth() int { return len(c.path) }

// Canonicalise resolves name against the current scope: a name with no
// leading dots is used verbatim. A name with k >= 1 leading dots requires
// k == Depth(); on match it splices to the joined scope path plus the
// remainder of name after the dots. Any other case is an invalid-label
// error.
func (c *Context) Canonicalise(name string) (string, error) {
	k := 0
	for k < len(name) && name[k] == '.' {
		k++
	}
	if k == 0 {
		return name, nil
	}
	if k != c.Depth() {
		return "", fmt.Errorf("invalid local label %q: dot depth %d does not match scope depth %d", name, k, c.Depth())
	}
	return strings.Join(c.path, ".") + "." + name[k:], nil
}

// --- Labels ---

// Label returns the resolved address for a canonical label path, or
// ok=false if the label is unknown or declared but not yet placed.
func (c *Context) Label(canonicalPath string) (uint32, bool) {
	entry, ok := c.labels[canonicalPath]
	if !ok || !entry.placed {
		return 0, false
	}
	return entry.addr, true
}

// RegisterLabel places key at the context's current address. If
// preregistered is true, or the key is not already placed, the placement
// succeeds and the context's scope path advances to key's own components
// (enabling deeper dotted locals to nest under it). Otherwise it is a
// label-redeclaration error.
func (c *Context) RegisterLabel(key string, preregistered bool) error {
	entry, exists := c.labels[key]
	if exists && entry.placed && !preregistered {
		return fmt.Errorf("label %q is already declared", key)
	}

	if !exists || !entry.placed {
		c.labelOrder = append(c.labelOrder, key)
	}
	c.labels[key] = &labelEntry{addr: c.address, placed: true}
	c.path = strings.Split(key, ".")
	return nil
}

// DeclareLabel registers key as known but unplaced (an allocation target),
// without assigning it an address yet.
func (c *Context) DeclareLabel(key string) {
	if _, exists := c.labels[key]; !exists {
		c.labels[key] = &labelEntry{}
	}
}

// AllPlaced reports whether every registered label has a resolved address.
func (c *Context) AllPlaced() bool {
	for _, e := range c.labels {
		if !e.placed {
			return false
		}
	}
	return true
}

// PlacedLabels returns every resolved label and its address. Iteration
// order over the returned map is not meaningful; use OrderedLabels for a
// deterministic, insertion-ordered listing.
func (c *Context) PlacedLabels() map[string]uint32 {
	out := make(map[string]uint32, len(c.labels))
	for name, e := range c.labels {
		if e.placed {
			out[name] = e.addr
		}
	}
	return out
}

// Label pairs a label name with its resolved address, for ordered listing.
type Label struct {
	Name string
	Addr uint32
}

// OrderedLabels returns every resolved label and its address, in the order
// each label was first placed.
func (c *Context) OrderedLabels() []Label {
	out := make([]Label, 0, len(c.labelOrder))
	for _, name := range c.labelOrder {
		if e, ok := c.labels[name]; ok && e.placed {
			out = append(out, Label{Name: name, Addr: e.addr})
		}
	}
	return out
}

// --- Allocations ---

// Allocate queues label as a pending allocation of size words. If an
// allocation offset has already been set, the label is placed immediately
// at the current end of the allocation region instead of being queued.
func (c *Context) Allocate(label string, size uint32) {
	c.DeclareLabel(label)

	if c.allocationOffsetSet {
		c.labels[label] = &labelEntry{addr: c.allocationOffset, placed: true}
		c.labelOrder = append(c.labelOrder, label)
		c.allocationOffset += size
		return
	}

	if _, queued := c.allocations[label]; !queued {
		c.order = append(c.order, label)
	}
	c.allocations[label] = size
}

// SetAllocationOffset drains every queued allocation in declaration order,
// assigning each an address starting at base, and records the next free
// word as the allocation offset for any allocations registered afterward.
func (c *Context) SetAllocationOffset(base uint32) {
	offset := base
	for _, label := range c.order {
		size := c.allocations[label]
		c.labels[label] = &labelEntry{addr: offset, placed: true}
		c.labelOrder = append(c.labelOrder, label)
		offset += size
	}
	c.allocations = make(map[string]uint32)
	c.order = nil
	c.allocationOffset = offset
	c.allocationOffsetSet = true
}

// --- Fixed-point iteration budget ---

// RemainingIterations returns the number of fixed-point retries left.
func (c *Context) RemainingIterations() int { return c.counter }

// ConsumeIteration decrements the remaining iteration count by one.
func (c *Context) ConsumeIteration() { c.counter-- }
