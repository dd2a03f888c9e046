// Package codec encodes and decodes clipboard image payloads.
//
// It is a thin routing layer over the standard image codecs plus
// golang.org/x/image for BMP and WebP. It never partially succeeds: a call
// returns a complete image (or byte slice) or an explicit error. Textual
// formats (svg, text) have no pixel representation and are rejected here;
// they travel through the payload bridge untouched.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"

	"go.klb.dev/imgclip/internal/format"
)

// ErrUnsupported is returned for formats this codec cannot transform in the
// requested direction (WebP encode, Ico either way, textual formats).
var ErrUnsupported = errors.New("codec: unsupported image format")

// Codec converts between encoded payload bytes and in-memory images.
type Codec interface {
	Decode(f format.Format, data []byte) (image.Image, error)
	Encode(f format.Format, img image.Image) ([]byte, error)
}

type stdCodec struct{}

// New returns the default codec.
func New() Codec { return stdCodec{} }

func (stdCodec) Decode(f format.Format, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch f {
	case format.Png:
		return png.Decode(r)
	case format.Jpeg:
		return jpeg.Decode(r)
	case format.Gif:
		return gif.Decode(r)
	case format.Bmp:
		return bmp.Decode(r)
	case format.WebP:
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("%w: decode %s", ErrUnsupported, f)
}

func (stdCodec) Encode(f format.Format, img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case format.Png:
		err = png.Encode(&buf, img)
	case format.Jpeg:
		err = jpeg.Encode(&buf, img, nil)
	case format.Gif:
		err = gif.Encode(&buf, img, nil)
	case format.Bmp:
		err = bmp.Encode(&buf, img)
	default:
		// x/image ships no WebP or ICO encoder.
		return nil, fmt.Errorf("%w: encode %s", ErrUnsupported, f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f, err)
	}
	return buf.Bytes(), nil
}
