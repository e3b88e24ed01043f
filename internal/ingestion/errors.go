package ingestion

import "fmt"

// DecodeError is returned when document bytes cannot be turned into text.
type DecodeError struct {
	Format  string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to decode %s document: %s", e.Format, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError is returned for documents of an unknown type.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.Name)
}
