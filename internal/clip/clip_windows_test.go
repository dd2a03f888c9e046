//go:build windows

package clip

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDIB fabricates a headerless DIB: info header of headerSize bytes with
// SizeImage at offset 20, followed by pixelBytes of pixel data.
func buildDIB(headerSize, pixelBytes int, declareSize bool) []byte {
	dib := make([]byte, headerSize+pixelBytes)
	binary.LittleEndian.PutUint32(dib[0:4], uint32(headerSize))
	if declareSize {
		binary.LittleEndian.PutUint32(dib[20:24], uint32(pixelBytes))
	}
	return dib
}

func TestDibToBMPFrames(t *testing.T) {
	dib := buildDIB(124, 64, true)

	out := dibToBMP(dib)
	require.Len(t, out, bmpFileHeaderLen+len(dib))
	assert.Equal(t, byte('B'), out[0])
	assert.Equal(t, byte('M'), out[1])

	fileSize := binary.LittleEndian.Uint32(out[2:6])
	assert.Equal(t, uint32(len(out)), fileSize)

	pixelOffset := binary.LittleEndian.Uint32(out[10:14])
	assert.Equal(t, uint32(bmpFileHeaderLen+124), pixelOffset)
}

func TestDibToBMPZeroSizeImage(t *testing.T) {
	// BI_RGB bitmaps may leave SizeImage zero; the pixel offset then falls
	// back to file header + info header.
	dib := buildDIB(40, 64, false)

	out := dibToBMP(dib)
	pixelOffset := binary.LittleEndian.Uint32(out[10:14])
	assert.Equal(t, uint32(bmpFileHeaderLen+40), pixelOffset)
}

func TestBmpToDIBStripsFileHeader(t *testing.T) {
	dib := buildDIB(40, 16, true)
	bmp := dibToBMP(dib)

	assert.Equal(t, dib, bmpToDIB(bmp))
}

func TestBmpToDIBLeavesBareDIBAlone(t *testing.T) {
	dib := buildDIB(40, 16, true)
	assert.Equal(t, dib, bmpToDIB(dib))
}

func TestDecodeEncodeUTF16(t *testing.T) {
	const text = "héllo 日本語"

	raw, err := encodeUTF16([]byte(text))
	require.NoError(t, err)
	// NUL-terminated UTF-16LE.
	require.Equal(t, byte(0), raw[len(raw)-1])
	require.Equal(t, byte(0), raw[len(raw)-2])

	assert.Equal(t, []byte(text), decodeUTF16(raw))
}
