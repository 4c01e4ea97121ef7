package processor

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/chai2010/webp"
)

// encode writes img in the named codec. quality applies to lossy codecs
// only; quality <= 0 means the codec's default (and lossless mode for webp).
func encode(w io.Writer, img image.Image, codec string, quality int) error {
	switch codec {
	case "jpeg", "jpg":
		if quality > 0 {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}
		return jpeg.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	case "webp":
		if quality > 0 {
			return webp.Encode(w, img, &webp.Options{Quality: float32(quality)})
		}
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("unsupported codec %q", codec)
	}
}
