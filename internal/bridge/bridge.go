// Package bridge routes payloads between the OS clipboard, the format
// resolver and the image codec. It owns the caller-facing read/write API:
// one clipboard session per logical operation, one snapshot per session,
// resolution against that snapshot, then a single slot read or write.
//
// Absence is an outcome, not a fault: when no candidate slot is present the
// bridge returns ErrNotAvailable and the caller decides whether to retry
// with a reduced preference list, prompt the user, or give up. The bridge
// never falls back to a lower-priority candidate after a decode failure.
package bridge

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"go.klb.dev/imgclip/internal/clip"
	"go.klb.dev/imgclip/internal/codec"
	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

// ErrNotAvailable indicates that no candidate slot for the requested
// format(s) is present on the clipboard. Expected and recoverable.
var ErrNotAvailable = errors.New("clipboard: requested format not available")

// DecodeError reports that a slot matched but the codec rejected its bytes
// (corrupt or unsupported variant of the nominally-matched format). It is
// tagged with the slot and format that were attempted.
type DecodeError struct {
	Format format.Format
	Slot   format.Slot
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s from %s: %v", e.Format, e.Slot, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client binds a clipboard backend to a codec.
type Client struct {
	backend clip.Backend
	codec   codec.Codec
}

// New returns a Client over the given backend and codec.
func New(backend clip.Backend, c codec.Codec) *Client {
	return &Client{backend: backend, codec: c}
}

// Default returns a Client over the platform clipboard and the default codec.
func Default() *Client {
	return New(clip.New(), codec.New())
}

// ReadImage resolves the best available image format in the caller's
// preference order, reads its slot and decodes it. Textual formats (svg,
// text) have no pixel representation; use ReadRaw or ReadText for those.
func (c *Client) ReadImage(prefs []format.Format) (format.Format, image.Image, error) {
	for _, f := range prefs {
		if f.Textual() {
			return 0, nil, fmt.Errorf("read image: %s carries no pixel data", f)
		}
	}

	res, data, err := c.ReadRaw(prefs)
	if err != nil {
		return 0, nil, err
	}
	img, err := c.codec.Decode(res.Format, data)
	if err != nil {
		return 0, nil, &DecodeError{Format: res.Format, Slot: res.Slot, Err: err}
	}
	return res.Format, img, nil
}

// ReadRaw resolves the best available format and returns its undecoded slot
// payload. This is the path for textual image formats such as svg.
func (c *Client) ReadRaw(prefs []format.Format) (resolve.Resolved, []byte, error) {
	session, err := c.backend.Open()
	if err != nil {
		return resolve.Resolved{}, nil, err
	}
	defer session.Close()

	snap := session.Snapshot()
	res, ok := resolve.ResolveAny(snap, prefs)
	if !ok {
		return resolve.Resolved{}, nil, ErrNotAvailable
	}
	slog.Debug("clipboard read resolved", "format", res.Format, "slot", res.Slot, "alpha", res.Alpha)

	data, err := session.Read(res.Slot)
	if err != nil {
		return resolve.Resolved{}, nil, err
	}
	return res, data, nil
}

// ReadText returns the clipboard's unicode text payload.
func (c *Client) ReadText() (string, error) {
	_, data, err := c.ReadRaw([]format.Format{format.Text})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteImage encodes img as f and publishes it under the write-path target
// slot: always the top-ranked candidate, regardless of whether img has
// alpha. Bmp therefore always lands in CF_DIBV5.
func (c *Client) WriteImage(f format.Format, img image.Image) error {
	if f.Textual() {
		return fmt.Errorf("write image: %s carries no pixel data", f)
	}
	data, err := c.codec.Encode(f, img)
	if err != nil {
		return err
	}
	return c.WriteRaw(f, data)
}

// WriteRaw publishes already-encoded bytes under f's write-path target slot.
func (c *Client) WriteRaw(f format.Format, data []byte) error {
	cand, err := resolve.Target(f)
	if err != nil {
		return err
	}

	session, err := c.backend.Open()
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Clear(); err != nil {
		return err
	}
	slog.Debug("clipboard write", "format", f, "slot", cand.Slot, "bytes", len(data))
	return session.Write(cand.Slot, data)
}

// WriteText publishes s to the unicode text slot. Never touches the codec.
func (c *Client) WriteText(s string) error {
	return c.WriteRaw(format.Text, []byte(s))
}
