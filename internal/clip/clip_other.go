//go:build !windows && !linux && !darwin

package clip

// New returns an in-memory backend for platforms without a system clipboard
// (headless containers, CI).
func New() Backend { return NewMemory() }
