package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ats/internal/db"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
	Cause   error
}

func (e *ErrValidation) Error() string {
	return "invalid request: " + e.Message
}

func (e *ErrValidation) Unwrap() error {
	return e.Cause
}

// ErrJobStoreUnavailable is returned when a job_id is given but no store is configured.
var ErrJobStoreUnavailable = errors.New("job store not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var notFound *db.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrJobStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// describeValidation flattens validator errors into one message.
func describeValidation(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ErrValidation{Message: err.Error(), Cause: err}
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return &ErrValidation{Message: strings.Join(problems, "; "), Cause: err}
}
