package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when there are no bytes to decode.
var ErrEmptyImage = errors.New("empty image data")

// Decode parses JPEG, PNG or WebP bytes.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	return image.Decode(bytes.NewReader(data))
}

// ResizeToFit scales the image down so its longer dimension does not exceed
// maxDim, preserving aspect ratio. Images already within the bound are
// returned untouched; downloads never upscale.
func ResizeToFit(img image.Image, maxDim uint) image.Image {
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return resize.Resize(maxDim, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, maxDim, img, resize.Lanczos3)
}

// EncodeJPEG renders the image as JPEG at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWebP renders the image as lossy WebP, used for display thumbnails.
func EncodeWebP(img image.Image, quality float32) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResizeAndEncode is the whole transcode path behind instant downloads:
// decode, bound to maxDim, re-encode as JPEG.
func ResizeAndEncode(data []byte, maxDim uint, quality int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(ResizeToFit(img, maxDim), quality)
}
