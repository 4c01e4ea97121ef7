package batch

import (
	"path/filepath"
	"strings"

	"imagebatch/internal/models"
)

// OutputName derives the delivered file name: the original extension is
// replaced with .webp when converting to WebP, otherwise it is kept as-is.
func OutputName(original string, target models.TargetFormat) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	if target == models.FormatWebP {
		return base + ".webp"
	}
	return base + ext
}
