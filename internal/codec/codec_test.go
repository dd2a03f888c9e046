package codec

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/imgclip/internal/format"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestPngRoundTrip(t *testing.T) {
	c := New()
	src := testImage()

	data, err := c.Encode(format.Png, src)
	require.NoError(t, err)

	got, err := c.Decode(format.Png, data)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			gr, gg, gb, ga := got.At(x, y).RGBA()
			assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga})
		}
	}
}

func TestBmpRoundTrip(t *testing.T) {
	c := New()
	src := testImage()

	data, err := c.Encode(format.Bmp, src)
	require.NoError(t, err)
	require.Equal(t, byte('B'), data[0])
	require.Equal(t, byte('M'), data[1])

	got, err := c.Decode(format.Bmp, data)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
}

func TestJpegEncodeDecode(t *testing.T) {
	c := New()

	data, err := c.Encode(format.Jpeg, testImage())
	require.NoError(t, err)

	// Lossy: only check it decodes to the right dimensions.
	got, err := c.Decode(format.Jpeg, data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
}

func TestGifEncodeDecode(t *testing.T) {
	c := New()

	data, err := c.Encode(format.Gif, testImage())
	require.NoError(t, err)

	got, err := c.Decode(format.Gif, data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), got.Bounds())
}

func TestWebPEncodeUnsupported(t *testing.T) {
	_, err := New().Encode(format.WebP, testImage())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestIcoUnsupportedBothWays(t *testing.T) {
	c := New()
	_, err := c.Encode(format.Ico, testImage())
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = c.Decode(format.Ico, []byte{0, 0, 1, 0})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestTextualFormatsRejected(t *testing.T) {
	c := New()
	_, err := c.Decode(format.Svg, []byte("<svg/>"))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = c.Decode(format.Text, []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeMalformed(t *testing.T) {
	c := New()
	_, err := c.Decode(format.Png, []byte("definitely not a png"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupported)
}
