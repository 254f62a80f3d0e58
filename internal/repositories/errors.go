package repositories

import "fmt"

type errorKind int

const (
	kindNotFound errorKind = iota
	kindCorrupted
	kindUnavailable
)

type repositoryError struct {
	kind errorKind
	msg  string
	err  error
}

func (e *repositoryError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *repositoryError) Unwrap() error       { return e.err }
func (e *repositoryError) IsNotFound() bool    { return e.kind == kindNotFound }
func (e *repositoryError) IsCorrupted() bool   { return e.kind == kindCorrupted }
func (e *repositoryError) IsUnavailable() bool { return e.kind == kindUnavailable }

// NewNotFoundError builds a categorised not-found repository error.
func NewNotFoundError(msg string, err error) RepositoryError {
	return &repositoryError{kind: kindNotFound, msg: msg, err: err}
}

// NewCorruptedError builds a categorised corruption repository error.
func NewCorruptedError(msg string, err error) RepositoryError {
	return &repositoryError{kind: kindCorrupted, msg: msg, err: err}
}

// NewUnavailableError builds a categorised unavailability repository error.
func NewUnavailableError(msg string, err error) RepositoryError {
	return &repositoryError{kind: kindUnavailable, msg: msg, err: err}
}
