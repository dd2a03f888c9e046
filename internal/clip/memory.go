package clip

import (
	"errors"
	"strings"
	"sync"

	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

// Memory is an in-memory Backend that stores exactly what is written to it.
// It backs the headless build and tests; named slots are case-insensitive
// like the real clipboard.
type Memory struct {
	mu    sync.Mutex
	order []format.Slot
	data  map[string][]byte
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (*Memory) Name() string { return "in-memory clipboard" }

// Open acquires the clipboard. The lock is held until Session.Close, mirroring
// the exclusive OS acquisition.
func (m *Memory) Open() (Session, error) {
	m.mu.Lock()
	s := &memorySession{m: m, snap: m.snapshotLocked()}
	return s, nil
}

// Seed stores a slot payload directly, bypassing the session discipline.
// Test hook for building synthetic clipboard states.
func (m *Memory) Seed(slot format.Slot, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeLocked(slot, data)
}

func slotKey(slot format.Slot) string {
	if slot.Numeric() {
		return slot.String()
	}
	return strings.ToLower(slot.Name)
}

func (m *Memory) snapshotLocked() resolve.Snapshot {
	snap := make(resolve.Snapshot, len(m.order))
	copy(snap, m.order)
	return snap
}

func (m *Memory) storeLocked(slot format.Slot, data []byte) {
	key := slotKey(slot)
	if _, ok := m.data[key]; !ok {
		m.order = append(m.order, slot)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.data[key] = buf
}

type memorySession struct {
	m      *Memory
	snap   resolve.Snapshot
	closed bool
}

func (s *memorySession) Snapshot() resolve.Snapshot { return s.snap }

func (s *memorySession) Read(slot format.Slot) ([]byte, error) {
	data, ok := s.m.data[slotKey(slot)]
	if !ok {
		return nil, &AccessError{Op: "read", Slot: slot, Err: errSlotEmpty}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memorySession) Write(slot format.Slot, data []byte) error {
	s.m.storeLocked(slot, data)
	return nil
}

func (s *memorySession) Clear() error {
	s.m.order = nil
	s.m.data = make(map[string][]byte)
	return nil
}

func (s *memorySession) Close() error {
	if s.closed {
		return errors.New("clipboard session already closed")
	}
	s.closed = true
	s.m.mu.Unlock()
	return nil
}
