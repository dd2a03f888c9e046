package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesNeverEmpty(t *testing.T) {
	for _, f := range Formats() {
		require.NotEmpty(t, Candidates(f), "format %s has no candidates", f)
	}
}

func TestRanksDistinctAndOrdered(t *testing.T) {
	for _, f := range Formats() {
		for i, c := range Candidates(f) {
			assert.Equal(t, i, c.Rank, "format %s candidate %d", f, i)
			assert.Equal(t, f, c.Format)
		}
	}
}

func TestAlphaBeforeNonAlpha(t *testing.T) {
	// Once a format's candidate list drops alpha capability it never
	// regains it: alpha-capable variants rank above non-alpha ones.
	for _, f := range Formats() {
		seenNonAlpha := false
		for _, c := range Candidates(f) {
			if !c.Alpha {
				seenNonAlpha = true
			} else {
				assert.False(t, seenNonAlpha, "format %s ranks alpha candidate below non-alpha", f)
			}
		}
	}
}

func TestBmpPinnedToExtendedBitmap(t *testing.T) {
	cands := Candidates(Bmp)
	require.Equal(t, SlotDIBV5, cands[0].Slot)
	assert.True(t, cands[0].Alpha)
}

func TestPngNamesInDeclarationOrder(t *testing.T) {
	cands := Candidates(Png)
	require.Len(t, cands, 2)
	assert.Equal(t, "PNG", cands[0].Slot.Name)
	assert.Equal(t, "image/png", cands[1].Slot.Name)
}

func TestSlotEqualCaseInsensitive(t *testing.T) {
	assert.True(t, NamedSlot("PNG").Equal(NamedSlot("png")))
	assert.True(t, NamedSlot("image/png").Equal(NamedSlot("Image/PNG")))
	assert.False(t, NamedSlot("PNG").Equal(NamedSlot("image/png")))
	assert.False(t, NamedSlot("13").Equal(SlotUnicodeText))
	assert.True(t, SlotUnicodeText.Equal(NumericSlot(CFUnicodeText)))
}

func TestKnownSlotsCoversTable(t *testing.T) {
	slots := KnownSlots()
	for _, f := range Formats() {
		for _, c := range Candidates(f) {
			found := false
			for _, s := range slots {
				if s.Equal(c.Slot) {
					found = true
					break
				}
			}
			assert.True(t, found, "slot %s missing from KnownSlots", c.Slot)
		}
	}
}

func TestTextual(t *testing.T) {
	assert.True(t, Svg.Textual())
	assert.True(t, Text.Textual())
	assert.False(t, Png.Textual())
	assert.False(t, Bmp.Textual())
}

func TestParse(t *testing.T) {
	for _, f := range Formats() {
		got, err := Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := Parse("JPG")
	require.NoError(t, err)
	assert.Equal(t, Jpeg, got)

	_, err = Parse("tiff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestSlotString(t *testing.T) {
	assert.Equal(t, "CF_DIBV5", SlotDIBV5.String())
	assert.Equal(t, "CF_UNICODETEXT", SlotUnicodeText.String())
	assert.Equal(t, "image/png", NamedSlot("image/png").String())
	assert.Equal(t, "CF#2", NumericSlot(2).String())
}
