//go:build linux || darwin

package clip

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"

	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

// portableBackend adapts golang.design/x/clipboard, which exposes exactly
// two formats: UTF-8 text and PNG image data. The snapshot therefore
// advertises at most the unicode-text slot and "image/png". Richer slots
// exist only on Windows.
type portableBackend struct {
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
}

// New returns the portable clipboard backend, or the in-memory stub when no
// display environment is available (headless server, container). Init runs
// on first Open rather than package init so that sub-commands that never
// touch the clipboard don't log spurious warnings.
func New() Backend { return &portableBackend{} }

func (*portableBackend) Name() string { return "portable clipboard (text + PNG)" }

func (b *portableBackend) Open() (Session, error) {
	b.initOnce.Do(func() {
		b.initErr = clipboard.Init()
		if b.initErr != nil {
			slog.Warn("clipboard unavailable", "err", b.initErr)
		}
	})
	if b.initErr != nil {
		return nil, &AccessError{Op: "open", Err: b.initErr}
	}

	// One session at a time: the OS clipboard is exclusive.
	b.mu.Lock()
	s := &portableSession{backend: b}
	s.capture()
	return s, nil
}

type portableSession struct {
	backend *portableBackend
	text    []byte
	img     []byte
	snap    resolve.Snapshot
	closed  bool
}

func (s *portableSession) capture() {
	s.text = clipboard.Read(clipboard.FmtText)
	s.img = clipboard.Read(clipboard.FmtImage)
	if s.img != nil {
		s.snap = append(s.snap, format.NamedSlot("image/png"))
	}
	if s.text != nil {
		s.snap = append(s.snap, format.SlotUnicodeText)
	}
}

func (s *portableSession) Snapshot() resolve.Snapshot { return s.snap }

// portableRoute maps a slot to one of the two payload routes this backend
// supports.
type portableRoute int

const (
	routeNone portableRoute = iota
	routeText
	routeImage
)

// routeFor treats every Png candidate slot as the image route, not just the
// "image/png" name the snapshot advertises: the write path targets the
// top-ranked candidate ("PNG"), and both names mean the same PNG payload
// here.
func routeFor(slot format.Slot) portableRoute {
	if slot.Equal(format.SlotUnicodeText) {
		return routeText
	}
	for _, c := range format.Candidates(format.Png) {
		if slot.Equal(c.Slot) {
			return routeImage
		}
	}
	return routeNone
}

func (s *portableSession) Read(slot format.Slot) ([]byte, error) {
	switch routeFor(slot) {
	case routeText:
		if s.text == nil {
			return nil, &AccessError{Op: "read", Slot: slot, Err: errSlotEmpty}
		}
		return s.text, nil
	case routeImage:
		if s.img == nil {
			return nil, &AccessError{Op: "read", Slot: slot, Err: errSlotEmpty}
		}
		return s.img, nil
	}
	return nil, &AccessError{Op: "read", Slot: slot, Err: errSlotUnsupported}
}

func (s *portableSession) Write(slot format.Slot, data []byte) error {
	switch routeFor(slot) {
	case routeText:
		clipboard.Write(clipboard.FmtText, data)
		return nil
	case routeImage:
		clipboard.Write(clipboard.FmtImage, data)
		return nil
	}
	return &AccessError{Op: "write", Slot: slot, Err: errSlotUnsupported}
}

func (s *portableSession) Clear() error {
	clipboard.Write(clipboard.FmtText, nil)
	return nil
}

func (s *portableSession) Close() error {
	if s.closed {
		return fmt.Errorf("clipboard session already closed")
	}
	s.closed = true
	s.backend.mu.Unlock()
	return nil
}
