// Package clip provides scoped access to the system clipboard. Build
// constraints select the appropriate implementation:
//
//	clip_windows.go   — Windows via user32/kernel32 syscalls, full slot model
//	clip_portable.go  — Linux/macOS via golang.design/x/clipboard (text + PNG)
//	clip_other.go     — headless / container stub backed by Memory
//
// The clipboard is a process-wide exclusive resource. All enumeration,
// reading and writing happens inside a Session: open, operate, close on
// every exit path. A Session captures its snapshot once at open time; every
// candidate check within one logical operation uses that capture, never the
// live clipboard.
package clip

import (
	"errors"
	"fmt"
	"time"

	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

var (
	errSlotEmpty       = errors.New("slot not present")
	errSlotUnsupported = errors.New("slot not supported by this backend")
)

// Backend opens clipboard sessions.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Open acquires the clipboard and returns a session. Acquisition
	// retries a bounded number of times with backoff when another process
	// holds the clipboard, then fails with an *AccessError.
	Open() (Session, error)
}

// Session is one scoped clipboard acquisition. Methods must only be called
// between Open and Close; Close must run on every exit path so the OS lock
// is never left held.
type Session interface {
	// Snapshot returns the slots advertised at acquisition time.
	Snapshot() resolve.Snapshot

	// Read returns the raw payload of a slot.
	Read(slot format.Slot) ([]byte, error)

	// Write publishes a payload under a slot.
	Write(slot format.Slot, data []byte) error

	// Clear empties the clipboard, claiming ownership.
	Clear() error

	// Close releases the clipboard.
	Close() error
}

// AccessError reports that the OS collaborator could not open, read or
// write the clipboard — e.g. another process holds it. Recoverable by
// retrying the whole operation.
type AccessError struct {
	Op   string
	Slot format.Slot
	Err  error
}

func (e *AccessError) Error() string {
	if e.Slot != (format.Slot{}) {
		return fmt.Sprintf("clipboard %s %s: %v", e.Op, e.Slot, e.Err)
	}
	return fmt.Sprintf("clipboard %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// Bounded acquisition policy shared by the platform backends.
const (
	openAttempts = 5
	openBackoff  = 20 * time.Millisecond
)

// backoffFor returns the sleep before retry attempt n (0-based).
func backoffFor(n int) time.Duration {
	return openBackoff << n
}
