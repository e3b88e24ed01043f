package parsing

import "fmt"

// OracleError wraps a failed or unusable external oracle parse.
// It is logged and never returned from Parser.Parse.
type OracleError struct {
	Message string
	Cause   error
}

func (e *OracleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle parse failed: %s", e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}
