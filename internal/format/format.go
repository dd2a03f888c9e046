// Package format defines the closed set of logical clipboard formats and the
// descriptor table mapping each one to the clipboard slots that may carry it.
//
// Producers disagree about how the same image lands on the clipboard:
// Snip & Sketch registers the name "PNG", browsers and GTK apps register
// "image/png", legacy applications publish only a device-independent bitmap
// under a fixed numeric id. The table records every known route per logical
// format, ordered by preference, so that picking a representation is a single
// table walk instead of ad-hoc name probing at call sites.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a logical clipboard format, independent of how any particular
// producer encodes it on the clipboard.
type Format int

const (
	Bmp Format = iota
	Png
	Jpeg
	Gif
	Ico
	WebP
	Svg
	Text
)

// ErrUnknown is returned when a caller names a format outside the closed set.
var ErrUnknown = errors.New("unknown clipboard format")

// Fixed numeric clipboard format ids. Registered (string-named) formats live
// in a disjoint id range assigned by the OS at registration time.
const (
	CFDib         uint32 = 8
	CFUnicodeText uint32 = 13
	CFDibV5       uint32 = 17
)

// Slot identifies a clipboard format slot: either one of the fixed numeric
// ids above or a registered, case-insensitive string name. Exactly one of
// the two fields is set.
type Slot struct {
	ID   uint32
	Name string
}

// NumericSlot returns the slot for a fixed numeric format id.
func NumericSlot(id uint32) Slot { return Slot{ID: id} }

// NamedSlot returns the slot for a registered format name.
func NamedSlot(name string) Slot { return Slot{Name: name} }

// Numeric reports whether the slot is addressed by a fixed numeric id.
func (s Slot) Numeric() bool { return s.Name == "" }

// Equal reports whether two slots address the same clipboard format.
// Name comparison is case-insensitive and exact; no substring matching.
func (s Slot) Equal(o Slot) bool {
	if s.Numeric() != o.Numeric() {
		return false
	}
	if s.Numeric() {
		return s.ID == o.ID
	}
	return strings.EqualFold(s.Name, o.Name)
}

func (s Slot) String() string {
	if !s.Numeric() {
		return s.Name
	}
	switch s.ID {
	case CFDib:
		return "CF_DIB"
	case CFUnicodeText:
		return "CF_UNICODETEXT"
	case CFDibV5:
		return "CF_DIBV5"
	}
	return fmt.Sprintf("CF#%d", s.ID)
}

// Well-known slots used across packages.
var (
	SlotDIB         = NumericSlot(CFDib)
	SlotDIBV5       = NumericSlot(CFDibV5)
	SlotUnicodeText = NumericSlot(CFUnicodeText)
)

// Candidate pairs a logical format with one clipboard slot that may carry
// it, tagged with whether that representation is known to preserve an alpha
// channel. Rank is the position within the format's candidate list; lower
// ranks are preferred and ranks are distinct per format by construction.
type Candidate struct {
	Format Format
	Slot   Slot
	Alpha  bool
	Rank   int
}

// The descriptor table. Order within each list encodes the "best available"
// policy: alpha-capable representations ahead of non-alpha ones, and for Bmp
// the extended bitmap (CF_DIBV5) is pinned first — the OS converts whichever
// raw bitmap the producer actually populated. Synonymous string names are
// tie-broken by declaration order.
var table = map[Format][]Candidate{
	Bmp: {
		{Format: Bmp, Slot: SlotDIBV5, Alpha: true},
		{Format: Bmp, Slot: SlotDIB, Alpha: false},
	},
	Png: {
		{Format: Png, Slot: NamedSlot("PNG"), Alpha: true},
		{Format: Png, Slot: NamedSlot("image/png"), Alpha: true},
	},
	Jpeg: {
		{Format: Jpeg, Slot: NamedSlot("JFIF"), Alpha: false},
		{Format: Jpeg, Slot: NamedSlot("image/jpeg"), Alpha: false},
	},
	Gif: {
		{Format: Gif, Slot: NamedSlot("GIF"), Alpha: false},
		{Format: Gif, Slot: NamedSlot("image/gif"), Alpha: false},
	},
	Ico: {
		{Format: Ico, Slot: NamedSlot("image/x-icon"), Alpha: true},
	},
	WebP: {
		{Format: WebP, Slot: NamedSlot("image/webp"), Alpha: true},
	},
	Svg: {
		{Format: Svg, Slot: NamedSlot("image/svg+xml"), Alpha: false},
	},
	Text: {
		{Format: Text, Slot: SlotUnicodeText, Alpha: false},
	},
}

func init() {
	for f, cands := range table {
		for i := range cands {
			cands[i].Rank = i
		}
		table[f] = cands
	}
}

// Candidates returns the ordered candidate list for f, best first. The
// returned slice is shared and must not be mutated. Known formats always
// have at least one candidate.
func Candidates(f Format) []Candidate {
	return table[f]
}

// KnownSlots returns every slot the table knows about, for enumerators that
// want to skip slots no logical format could ever resolve to.
func KnownSlots() []Slot {
	var slots []Slot
	for _, f := range Formats() {
		for _, c := range table[f] {
			slots = append(slots, c.Slot)
		}
	}
	return slots
}

// Formats returns all logical formats in declaration order.
func Formats() []Format {
	return []Format{Bmp, Png, Jpeg, Gif, Ico, WebP, Svg, Text}
}

// Textual reports whether the format carries a string payload that bypasses
// the image codec entirely (SVG markup, plain text).
func (f Format) Textual() bool {
	return f == Svg || f == Text
}

func (f Format) String() string {
	switch f {
	case Bmp:
		return "bmp"
	case Png:
		return "png"
	case Jpeg:
		return "jpeg"
	case Gif:
		return "gif"
	case Ico:
		return "ico"
	case WebP:
		return "webp"
	case Svg:
		return "svg"
	case Text:
		return "text"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Parse converts a user-supplied format name to a Format.
func Parse(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "bmp", "dib":
		return Bmp, nil
	case "png":
		return Png, nil
	case "jpeg", "jpg":
		return Jpeg, nil
	case "gif":
		return Gif, nil
	case "ico", "icon":
		return Ico, nil
	case "webp":
		return WebP, nil
	case "svg":
		return Svg, nil
	case "text", "txt":
		return Text, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, s)
}
