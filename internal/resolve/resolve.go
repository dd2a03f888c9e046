// Package resolve picks concrete clipboard slots for logical formats.
//
// Resolution is a pure function of a captured Snapshot plus the static
// descriptor table: the same snapshot always yields the same result, and
// "nothing matched" is an ordinary outcome rather than an error. Callers
// take one snapshot per logical operation and reuse it for every candidate
// check, so a clipboard owner changing contents mid-operation cannot make
// the walk contradict itself.
package resolve

import (
	"go.klb.dev/imgclip/internal/format"
)

// Snapshot is the sequence of slots advertised by the clipboard at one
// instant. Enumeration order is whatever the OS reports and carries no
// priority; priority comes solely from the descriptor table.
type Snapshot []format.Slot

// Contains reports whether the snapshot advertises the given slot.
func (s Snapshot) Contains(slot format.Slot) bool {
	for _, have := range s {
		if have.Equal(slot) {
			return true
		}
	}
	return false
}

// Resolved is the outcome of a successful resolution: the logical format,
// the single slot chosen for it, and whether that representation preserves
// alpha.
type Resolved struct {
	Format format.Format
	Slot   format.Slot
	Alpha  bool
}

// Resolve returns the best available representation of f in the snapshot:
// the first candidate, in table order, whose slot the snapshot advertises.
// The second return is false when no candidate is present.
func Resolve(snap Snapshot, f format.Format) (Resolved, bool) {
	for _, c := range format.Candidates(f) {
		if snap.Contains(c.Slot) {
			return Resolved{Format: c.Format, Slot: c.Slot, Alpha: c.Alpha}, true
		}
	}
	return Resolved{}, false
}

// ResolveAny walks the caller's preference list in order and returns the
// first format that resolves. This lets a caller express "richest acceptable
// format" without this package hard-coding any cross-format priority.
func ResolveAny(snap Snapshot, prefs []format.Format) (Resolved, bool) {
	for _, f := range prefs {
		if r, ok := Resolve(snap, f); ok {
			return r, true
		}
	}
	return Resolved{}, false
}

// Target returns the candidate to publish when writing f to the clipboard:
// always the top-ranked one, regardless of whether the source image has
// alpha. Bmp therefore always targets CF_DIBV5 and consumers perform any
// needed conversion.
func Target(f format.Format) (format.Candidate, error) {
	cands := format.Candidates(f)
	if len(cands) == 0 {
		return format.Candidate{}, format.ErrUnknown
	}
	return cands[0], nil
}
