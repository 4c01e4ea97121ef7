package models

// SourceImage is one uploaded file as received, immutable for the lifetime
// of a batch run.
type SourceImage struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}
