package processor

import (
	"bytes"
	"image"

	"imagebatch/internal/models"
)

// Prober determines the pixel dimensions of source images. Results are
// cached keyed by the original file name, so the Prober must be scoped to a
// single batch run. Two files sharing a name within one batch resolve to the
// first file's dimensions; the collision-on-duplicate-name behavior is
// intentional and pinned by tests.
type Prober struct {
	cache map[string]models.Dimensions
}

func NewProber() *Prober {
	return &Prober{cache: make(map[string]models.Dimensions)}
}

// Probe returns the dimensions of src, consulting the name-keyed cache
// first. Undecodable bytes yield a DecodeError.
func (p *Prober) Probe(src *models.SourceImage) (models.Dimensions, error) {
	if d, ok := p.cache[src.Name]; ok {
		return d, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src.Data))
	if err != nil {
		return models.Dimensions{}, &DecodeError{Name: src.Name, Err: err}
	}

	d := models.Dimensions{Width: cfg.Width, Height: cfg.Height}
	p.cache[src.Name] = d
	return d, nil
}
