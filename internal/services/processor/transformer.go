package processor

import (
	"bytes"
	"context"
	"image"
	"math"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"imagebatch/internal/models"
)

// Transformer converts a single source image according to a TransformSpec.
// The batch orchestrator drives one implementation per run.
type Transformer interface {
	Transform(ctx context.Context, src *models.SourceImage, spec models.TransformSpec) (*Output, error)
}

// Output is the product of one transform. Dimensions are populated in
// resize mode only.
type Output struct {
	Data               []byte
	OriginalSize       int64
	ConvertedSize      int64
	OriginalDimensions *models.Dimensions
	NewDimensions      *models.Dimensions
}

// ImageProcessor is the in-process raster backend: stdlib codecs plus
// imaging for resampling and chai2010/webp for WebP output. It shares the
// batch-scoped Prober with its orchestrator.
type ImageProcessor struct {
	prober *Prober
}

func NewImageProcessor(prober *Prober) *ImageProcessor {
	return &ImageProcessor{prober: prober}
}

func (p *ImageProcessor) Transform(ctx context.Context, src *models.SourceImage, spec models.TransformSpec) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Output{OriginalSize: int64(len(src.Data))}

	if spec.Mode == models.ModeResize {
		dims, err := p.prober.Probe(src)
		if err != nil {
			return nil, err
		}
		scaled := scaleDimensions(dims, spec.Scale)
		out.OriginalDimensions = &dims
		out.NewDimensions = &scaled
	}

	img, format, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, &DecodeError{Name: src.Name, Err: err}
	}

	if out.NewDimensions != nil {
		img = imaging.Resize(img, out.NewDimensions.Width, out.NewDimensions.Height, imaging.Lanczos)
	}

	codec, quality := outputCodec(format, spec)

	buf := &bytes.Buffer{}
	if err := encode(buf, img, codec, quality); err != nil {
		return nil, &EncodeError{Name: src.Name, Codec: codec, Err: err}
	}

	out.Data = buf.Bytes()
	out.ConvertedSize = int64(buf.Len())
	return out, nil
}

// scaleDimensions applies the same percentage to both axes, rounding each
// independently. A sub-pixel result clamps to 1.
func scaleDimensions(d models.Dimensions, percent int) models.Dimensions {
	scale := float64(percent) / 100
	return models.Dimensions{
		Width:  max(1, int(math.Round(float64(d.Width)*scale))),
		Height: max(1, int(math.Round(float64(d.Height)*scale))),
	}
}

// outputCodec picks the encode codec. The "original" target re-encodes with
// the source's own codec and no quality parameter.
func outputCodec(sourceFormat string, spec models.TransformSpec) (codec string, quality int) {
	if spec.TargetFormat == models.FormatWebP {
		return "webp", spec.Quality
	}
	return sourceFormat, 0
}
