package imaging

import (
	"image"

	"github.com/bbrks/go-blurhash"
)

const (
	// placeholderDecodeWidth matches the fixed decode width the web gallery
	// paints under each tile.
	placeholderDecodeWidth = 32

	blurhashXComponents = 4
	blurhashYComponents = 3
)

// Placeholder decodes a blurhash into a small raster sized proportionally to
// the photo's natural dimensions. Deterministic for the same inputs. A
// malformed hash returns an error and the caller simply shows no placeholder.
func Placeholder(hash string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	decodeHeight := placeholderDecodeWidth * height / width
	if decodeHeight < 1 {
		decodeHeight = 1
	}
	return blurhash.Decode(hash, placeholderDecodeWidth, decodeHeight, 1)
}

// EncodeBlurhash produces the compact perceptual hash stored per photo at
// ingestion time.
func EncodeBlurhash(img image.Image) (string, error) {
	return blurhash.Encode(blurhashXComponents, blurhashYComponents, img)
}
