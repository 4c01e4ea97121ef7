package models

import "time"

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ItemResult is the per-file outcome of one batch. A non-empty Error marks
// the item as failed; all other fields are then zero.
type ItemResult struct {
	OriginalName       string      `json:"original_name"`
	OutputName         string      `json:"output_name,omitempty"`
	OriginalSize       int64       `json:"original_size,omitempty"`
	ConvertedSize      int64       `json:"converted_size,omitempty"`
	CompressionRatio   float64     `json:"compression_ratio,omitempty"`
	OriginalDimensions *Dimensions `json:"original_dimensions,omitempty"`
	NewDimensions      *Dimensions `json:"new_dimensions,omitempty"`
	Payload            string      `json:"payload,omitempty"`
	Error              string      `json:"error,omitempty"`
}

func (r ItemResult) Succeeded() bool {
	return r.Error == ""
}

// BatchResult summarizes one batch run. SuccessfulCount+FailedCount always
// equals TotalFiles, and Results keeps the submission order of the inputs.
type BatchResult struct {
	BatchID         string       `json:"batch_id"`
	TotalFiles      int          `json:"total_files"`
	SuccessfulCount int          `json:"successful"`
	FailedCount     int          `json:"failed"`
	StartedAt       time.Time    `json:"started_at"`
	Results         []ItemResult `json:"results"`
}
