package processor

import "fmt"

// DecodeError reports source bytes that could not be decoded as an image.
// It is a per-item failure and never aborts a batch.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a target encode that produced no output, typically an
// unsupported codec. Per-item, never aborts a batch.
type EncodeError struct {
	Name  string
	Codec string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s as %s: %v", e.Name, e.Codec, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
