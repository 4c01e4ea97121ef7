package processor

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagebatch/internal/models"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, image.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTransformer() *ImageProcessor {
	return NewImageProcessor(NewProber())
}

func decodedConfig(t *testing.T, data []byte) (image.Config, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg, format
}

func TestTransformResizeHalvesDimensions(t *testing.T) {
	src := &models.SourceImage{Name: "photo.jpg", Data: jpegBytes(t, 1000, 800)}
	spec := models.TransformSpec{
		Mode:         models.ModeResize,
		TargetFormat: models.FormatOriginal,
		Scale:        50,
	}

	out, err := newTransformer().Transform(context.Background(), src, spec)

	require.NoError(t, err)
	require.NotNil(t, out.OriginalDimensions)
	require.NotNil(t, out.NewDimensions)
	assert.Equal(t, models.Dimensions{Width: 1000, Height: 800}, *out.OriginalDimensions)
	assert.Equal(t, models.Dimensions{Width: 500, Height: 400}, *out.NewDimensions)

	cfg, format := decodedConfig(t, out.Data)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 500, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
	assert.Equal(t, int64(len(src.Data)), out.OriginalSize)
	assert.Equal(t, int64(len(out.Data)), out.ConvertedSize)
}

func TestScaleDimensionsRoundsAxesIndependently(t *testing.T) {
	tests := []struct {
		name    string
		in      models.Dimensions
		percent int
		want    models.Dimensions
	}{
		{"half", models.Dimensions{Width: 1000, Height: 800}, 50, models.Dimensions{Width: 500, Height: 400}},
		{"third-ish", models.Dimensions{Width: 10, Height: 20}, 33, models.Dimensions{Width: 3, Height: 7}},
		{"rounds half up per axis", models.Dimensions{Width: 99, Height: 101}, 50, models.Dimensions{Width: 50, Height: 51}},
		{"full", models.Dimensions{Width: 7, Height: 9}, 100, models.Dimensions{Width: 7, Height: 9}},
		{"sub-pixel clamps to 1", models.Dimensions{Width: 10, Height: 10}, 1, models.Dimensions{Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaleDimensions(tt.in, tt.percent))
		})
	}
}

func TestTransformConvertToWebP(t *testing.T) {
	src := &models.SourceImage{Name: "photo.png", Data: pngBytes(t, 40, 30)}
	spec := models.TransformSpec{
		Mode:         models.ModeConvert,
		TargetFormat: models.FormatWebP,
		Quality:      80,
	}

	out, err := newTransformer().Transform(context.Background(), src, spec)

	require.NoError(t, err)
	assert.Nil(t, out.OriginalDimensions)
	assert.Nil(t, out.NewDimensions)

	cfg, format := decodedConfig(t, out.Data)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestTransformConvertOnlyKeepsSourceCodec(t *testing.T) {
	src := &models.SourceImage{Name: "photo.jpg", Data: jpegBytes(t, 16, 16)}
	spec := models.TransformSpec{
		Mode:         models.ModeConvert,
		TargetFormat: models.FormatOriginal,
	}

	out, err := newTransformer().Transform(context.Background(), src, spec)

	require.NoError(t, err)
	_, format := decodedConfig(t, out.Data)
	assert.Equal(t, "jpeg", format)
}

func TestTransformQualityBounds(t *testing.T) {
	for _, quality := range []int{1, 100} {
		src := &models.SourceImage{Name: "photo.png", Data: pngBytes(t, 20, 20)}
		spec := models.TransformSpec{
			Mode:         models.ModeConvert,
			TargetFormat: models.FormatWebP,
			Quality:      quality,
		}

		out, err := newTransformer().Transform(context.Background(), src, spec)

		require.NoError(t, err, "quality %d", quality)
		assert.NotEmpty(t, out.Data)
	}
}

func TestTransformDeterministic(t *testing.T) {
	src := &models.SourceImage{Name: "photo.png", Data: pngBytes(t, 50, 50)}
	spec := models.TransformSpec{
		Mode:         models.ModeConvert,
		TargetFormat: models.FormatWebP,
		Quality:      75,
	}

	first, err := newTransformer().Transform(context.Background(), src, spec)
	require.NoError(t, err)
	second, err := newTransformer().Transform(context.Background(), src, spec)
	require.NoError(t, err)

	assert.Equal(t, first.ConvertedSize, second.ConvertedSize)
}

func TestTransformUndecodableBytes(t *testing.T) {
	src := &models.SourceImage{Name: "broken.jpg", Data: []byte("definitely not a jpeg")}
	spec := models.TransformSpec{Mode: models.ModeConvert, TargetFormat: models.FormatWebP, Quality: 80}

	_, err := newTransformer().Transform(context.Background(), src, spec)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "broken.jpg", decodeErr.Name)
}

func TestEncodeUnsupportedCodec(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err := encode(&bytes.Buffer{}, img, "bmp", 0)
	assert.Error(t, err)
}
