//go:build windows

package clip

import (
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

const (
	gmemMoveable = 0x0002

	// Registered format ids live at 0xC000 and above; everything below is
	// a predefined CF_* constant.
	registeredFirst = 0xC000

	bmpFileHeaderLen = 14
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	openClipboard           = user32.NewProc("OpenClipboard")
	closeClipboard          = user32.NewProc("CloseClipboard")
	emptyClipboard          = user32.NewProc("EmptyClipboard")
	enumClipboardFormats    = user32.NewProc("EnumClipboardFormats")
	getClipboardFormatName  = user32.NewProc("GetClipboardFormatNameW")
	registerClipboardFormat = user32.NewProc("RegisterClipboardFormatW")
	getClipboardData        = user32.NewProc("GetClipboardData")
	setClipboardData        = user32.NewProc("SetClipboardData")

	gLock   = kernel32.NewProc("GlobalLock")
	gUnlock = kernel32.NewProc("GlobalUnlock")
	gAlloc  = kernel32.NewProc("GlobalAlloc")
	gFree   = kernel32.NewProc("GlobalFree")
	gSize   = kernel32.NewProc("GlobalSize")
	memMove = kernel32.NewProc("RtlMoveMemory")
)

type windowsBackend struct{}

// New returns the Windows clipboard backend.
func New() Backend { return &windowsBackend{} }

func (*windowsBackend) Name() string { return "Windows clipboard" }

// Open acquires the clipboard with bounded retry. The session owns the OS
// thread until Close: clipboard handles are thread-affine.
func (*windowsBackend) Open() (Session, error) {
	runtime.LockOSThread()
	var lastErr error
	for i := 0; i < openAttempts; i++ {
		if i > 0 {
			time.Sleep(backoffFor(i - 1))
		}
		r, _, err := openClipboard.Call(0)
		if r != 0 {
			s := &windowsSession{}
			s.snap = enumerate()
			return s, nil
		}
		lastErr = err
	}
	runtime.UnlockOSThread()
	return nil, &AccessError{Op: "open", Err: lastErr}
}

type windowsSession struct {
	snap   resolve.Snapshot
	closed bool
}

// enumerate walks the advertised format ids. Registered ids are reported by
// name so they match the descriptor table's string slots; predefined ids
// stay numeric.
func enumerate() resolve.Snapshot {
	var snap resolve.Snapshot
	id := uintptr(0)
	for {
		r, _, _ := enumClipboardFormats.Call(id)
		if r == 0 {
			return snap
		}
		id = r
		if id >= registeredFirst {
			if name := formatName(uint32(id)); name != "" {
				snap = append(snap, format.NamedSlot(name))
				continue
			}
		}
		snap = append(snap, format.NumericSlot(uint32(id)))
	}
}

func formatName(id uint32) string {
	var buf [256]uint16
	n, _, _ := getClipboardFormatName.Call(
		uintptr(id),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if n == 0 {
		return ""
	}
	return string(utf16.Decode(buf[:n]))
}

// slotID maps a slot to its numeric id for this process. Registering an
// already-registered name returns the existing id, so reads and writes of
// named slots both go through RegisterClipboardFormatW.
func slotID(slot format.Slot) (uintptr, error) {
	if slot.Numeric() {
		return uintptr(slot.ID), nil
	}
	name, err := syscall.UTF16PtrFromString(slot.Name)
	if err != nil {
		return 0, err
	}
	r, _, callErr := registerClipboardFormat.Call(uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return 0, callErr
	}
	return r, nil
}

func (s *windowsSession) Snapshot() resolve.Snapshot { return s.snap }

func (s *windowsSession) Read(slot format.Slot) ([]byte, error) {
	id, err := slotID(slot)
	if err != nil {
		return nil, &AccessError{Op: "read", Slot: slot, Err: err}
	}

	h, _, callErr := getClipboardData.Call(id)
	if h == 0 {
		return nil, &AccessError{Op: "read", Slot: slot, Err: callErr}
	}
	p, _, callErr := gLock.Call(h)
	if p == 0 {
		return nil, &AccessError{Op: "lock", Slot: slot, Err: callErr}
	}
	defer gUnlock.Call(h)

	n, _, _ := gSize.Call(h)
	raw := unsafe.Slice((*byte)(unsafe.Pointer(p)), n)

	if slot.Equal(format.SlotUnicodeText) {
		return decodeUTF16(raw), nil
	}

	data := make([]byte, len(raw))
	copy(data, raw)

	// DIB slots carry a headerless bitmap; synthesize the BITMAPFILEHEADER
	// so the codec sees an ordinary BMP file.
	if slot.Equal(format.SlotDIBV5) || slot.Equal(format.SlotDIB) {
		return dibToBMP(data), nil
	}
	return data, nil
}

func (s *windowsSession) Write(slot format.Slot, data []byte) error {
	id, err := slotID(slot)
	if err != nil {
		return &AccessError{Op: "write", Slot: slot, Err: err}
	}

	payload := data
	switch {
	case slot.Equal(format.SlotUnicodeText):
		payload, err = encodeUTF16(data)
		if err != nil {
			return &AccessError{Op: "write", Slot: slot, Err: err}
		}
	case slot.Equal(format.SlotDIBV5) || slot.Equal(format.SlotDIB):
		payload = bmpToDIB(data)
	}

	// Nothing to publish; the preceding Clear already emptied the slot.
	if len(payload) == 0 {
		return nil
	}

	hMem, _, callErr := gAlloc.Call(gmemMoveable, uintptr(len(payload)))
	if hMem == 0 {
		return &AccessError{Op: "alloc", Slot: slot, Err: callErr}
	}
	p, _, callErr := gLock.Call(hMem)
	if p == 0 {
		gFree.Call(hMem)
		return &AccessError{Op: "lock", Slot: slot, Err: callErr}
	}
	memMove.Call(p, uintptr(unsafe.Pointer(&payload[0])), uintptr(len(payload)))
	gUnlock.Call(hMem)

	// On success the system owns the memory handle.
	r, _, callErr := setClipboardData.Call(id, hMem)
	if r == 0 {
		gFree.Call(hMem)
		return &AccessError{Op: "write", Slot: slot, Err: callErr}
	}
	return nil
}

func (s *windowsSession) Clear() error {
	r, _, callErr := emptyClipboard.Call()
	if r == 0 {
		return &AccessError{Op: "clear", Err: callErr}
	}
	return nil
}

func (s *windowsSession) Close() error {
	if s.closed {
		return errors.New("clipboard session already closed")
	}
	s.closed = true
	closeClipboard.Call()
	runtime.UnlockOSThread()
	return nil
}

// decodeUTF16 converts a NUL-terminated UTF-16LE payload to UTF-8 bytes.
func decodeUTF16(raw []byte) []byte {
	u := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		c := uint16(raw[i]) | uint16(raw[i+1])<<8
		if c == 0 {
			break
		}
		u = append(u, c)
	}
	return []byte(string(utf16.Decode(u)))
}

// encodeUTF16 converts UTF-8 bytes to a NUL-terminated UTF-16LE payload.
func encodeUTF16(data []byte) ([]byte, error) {
	u, err := syscall.UTF16FromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("utf16 conversion: %w", err)
	}
	out := make([]byte, len(u)*2)
	for i, c := range u {
		binary.LittleEndian.PutUint16(out[i*2:], c)
	}
	return out, nil
}

// dibToBMP prepends a BITMAPFILEHEADER to a clipboard DIB so it parses as a
// BMP file. The pixel array offset accounts for optional palette and color
// profile data between the info header and the pixels.
func dibToBMP(dib []byte) []byte {
	if len(dib) < 24 {
		return dib
	}
	headerSize := binary.LittleEndian.Uint32(dib[0:4])
	sizeImage := binary.LittleEndian.Uint32(dib[20:24])
	total := uint32(len(dib))

	pixelOffset := bmpFileHeaderLen + headerSize
	if sizeImage != 0 && sizeImage < total {
		pixelOffset = bmpFileHeaderLen + (total - sizeImage)
	}

	out := make([]byte, bmpFileHeaderLen, bmpFileHeaderLen+len(dib))
	out[0], out[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(out[2:6], bmpFileHeaderLen+total)
	binary.LittleEndian.PutUint32(out[10:14], pixelOffset)
	return append(out, dib...)
}

// bmpToDIB strips the BITMAPFILEHEADER from a BMP file, leaving the DIB the
// clipboard expects.
func bmpToDIB(data []byte) []byte {
	if len(data) > bmpFileHeaderLen && data[0] == 'B' && data[1] == 'M' {
		return data[bmpFileHeaderLen:]
	}
	return data
}
