package engine

import (
	"errors"
	"fmt"
)

// RepositoryError reports that a repository could not be opened or its
// traversal could not be initialized. It maps to a client-side input error:
// the path is wrong, not a repository, or unreadable.
type RepositoryError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// AnalysisError reports a failure partway through a pass: a corrupt object,
// a missing parent, a diff that could not be computed. The pass fails
// atomically; no partial results are returned.
type AnalysisError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsRepositoryError reports whether err is a RepositoryError.
func IsRepositoryError(err error) bool {
	var repoErr *RepositoryError

	return errors.As(err, &repoErr)
}

// IsAnalysisError reports whether err is an AnalysisError.
func IsAnalysisError(err error) bool {
	var analysisErr *AnalysisError

	return errors.As(err, &analysisErr)
}
