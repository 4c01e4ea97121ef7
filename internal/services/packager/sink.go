package packager

import (
	"fmt"
	"strings"
	"time"
)

// OutputSink receives encoded outputs in submission order as a batch
// produces them. The orchestrator selects one sink per batch run and calls
// Close exactly once after the last item.
type OutputSink interface {
	Add(name string, data []byte) error
	Close() error
}

// PackagingError reports a failed archive write or finalization. Unlike
// per-item failures it is fatal to the whole batch.
type PackagingError struct {
	Err error
}

func (e *PackagingError) Error() string {
	return "packaging: " + e.Err.Error()
}

func (e *PackagingError) Unwrap() error { return e.Err }

var timestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// ArchiveName returns "<kind>-<timestamp>.zip" for the batch start time at
// second precision, with ':' and '.' replaced for filesystem safety.
func ArchiveName(kind string, start time.Time) string {
	return fmt.Sprintf("%s-%s.zip", kind, timestampReplacer.Replace(start.Format(time.RFC3339)))
}
