package models

type Mode string

const (
	ModeConvert Mode = "convert-only"
	ModeResize  Mode = "resize"
)

type TargetFormat string

const (
	FormatOriginal TargetFormat = "original"
	FormatWebP     TargetFormat = "webp"
)

// TransformSpec holds the parameters governing every item of one batch run.
// Immutable once the batch starts.
type TransformSpec struct {
	Mode         Mode
	TargetFormat TargetFormat
	Quality      int // 1-100, applies to lossy target codecs
	Scale        int // 1-100, resize mode only
}
