package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/imgclip/internal/format"
)

func TestResolveTopRankedWins(t *testing.T) {
	// Both PNG synonyms present: the top-ranked one wins even though the
	// snapshot lists the lower-ranked name first.
	snap := Snapshot{format.NamedSlot("image/png"), format.NamedSlot("PNG")}

	res, ok := Resolve(snap, format.Png)
	require.True(t, ok)
	assert.Equal(t, format.NamedSlot("PNG"), res.Slot)
	assert.True(t, res.Alpha)
}

func TestResolveNotAvailable(t *testing.T) {
	snap := Snapshot{format.NamedSlot("Rich Text Format"), format.SlotUnicodeText}

	_, ok := Resolve(snap, format.Png)
	assert.False(t, ok)
	_, ok = Resolve(snap, format.WebP)
	assert.False(t, ok)
}

func TestResolveAnyOrderSensitive(t *testing.T) {
	prefs := []format.Format{format.Png, format.Bmp}

	bmpOnly := Snapshot{format.SlotDIBV5}
	res, ok := ResolveAny(bmpOnly, prefs)
	require.True(t, ok)
	assert.Equal(t, format.Bmp, res.Format)

	both := Snapshot{format.SlotDIBV5, format.NamedSlot("PNG")}
	res, ok = ResolveAny(both, prefs)
	require.True(t, ok)
	assert.Equal(t, format.Png, res.Format)
}

func TestResolveCaseInsensitiveNames(t *testing.T) {
	snap := Snapshot{format.NamedSlot("png")}

	res, ok := Resolve(snap, format.Png)
	require.True(t, ok)
	assert.Equal(t, "PNG", res.Slot.Name, "resolution reports the table's canonical slot")
}

func TestResolveNoSubstringMatching(t *testing.T) {
	snap := Snapshot{format.NamedSlot("PNG+Extra"), format.NamedSlot("image/png-preview")}

	_, ok := Resolve(snap, format.Png)
	assert.False(t, ok)
}

func TestSnipAndSketchScenario(t *testing.T) {
	// Snip & Sketch publishes both CF_DIBV5 and a registered "PNG" slot.
	// A caller preferring png over bmp gets the PNG representation.
	snap := Snapshot{format.SlotDIBV5, format.NamedSlot("PNG")}

	res, ok := ResolveAny(snap, []format.Format{format.Png, format.Bmp})
	require.True(t, ok)
	assert.Equal(t, format.Png, res.Format)
	assert.Equal(t, format.NamedSlot("PNG"), res.Slot)
	assert.True(t, res.Alpha)
}

func TestTextOnlySnapshot(t *testing.T) {
	snap := Snapshot{format.SlotUnicodeText}

	_, ok := Resolve(snap, format.Png)
	assert.False(t, ok)

	res, ok := Resolve(snap, format.Text)
	require.True(t, ok)
	assert.Equal(t, format.SlotUnicodeText, res.Slot)
}

func TestBmpFallsBackToDIB(t *testing.T) {
	snap := Snapshot{format.SlotDIB}

	res, ok := Resolve(snap, format.Bmp)
	require.True(t, ok)
	assert.Equal(t, format.SlotDIB, res.Slot)
	assert.False(t, res.Alpha)
}

func TestResolveDeterministic(t *testing.T) {
	snap := Snapshot{
		format.SlotDIBV5,
		format.NamedSlot("image/png"),
		format.NamedSlot("PNG"),
		format.SlotUnicodeText,
	}
	prefs := []format.Format{format.Png, format.Bmp, format.Text}

	first, ok := ResolveAny(snap, prefs)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := ResolveAny(snap, prefs)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestTargetAlwaysTopRanked(t *testing.T) {
	// Write path ignores source alpha: Bmp always targets CF_DIBV5.
	cand, err := Target(format.Bmp)
	require.NoError(t, err)
	assert.Equal(t, format.SlotDIBV5, cand.Slot)

	cand, err = Target(format.Png)
	require.NoError(t, err)
	assert.Equal(t, format.NamedSlot("PNG"), cand.Slot)

	cand, err = Target(format.Text)
	require.NoError(t, err)
	assert.Equal(t, format.SlotUnicodeText, cand.Slot)
}

func TestTargetUnknownFormat(t *testing.T) {
	_, err := Target(format.Format(99))
	assert.ErrorIs(t, err, format.ErrUnknown)
}
