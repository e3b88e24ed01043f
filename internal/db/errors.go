package db

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a job ID with no matching row.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job %s not found", e.ID)
}
