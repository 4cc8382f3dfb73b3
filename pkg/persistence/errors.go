package persistence

import "errors"

// Standard error types every GraphStore implementation returns.
var (
	// ErrGraphNotFound indicates no graph exists for the given id.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrReportNotFound indicates no run report exists for the given run id.
	ErrReportNotFound = errors.New("run report not found")
)
