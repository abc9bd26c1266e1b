package wikisearch

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeNotFound is returned (wrapped) by a GraphSource for unknown keys.
	ErrNodeNotFound = errors.New("node not found")

	// ErrContractViolation marks a collaborator returning a value outside its
	// contract. It is never recovered from.
	ErrContractViolation = errors.New("contract violation")

	ErrInvalidTimeLimit = errors.New("time limit must not be negative")
)

// UnknownNodeError reports a source or destination key that could not be
// resolved before the search started.
type UnknownNodeError struct {
	Role string
	Key  any
	Err  error
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown %s node %v: %v", e.Role, e.Key, e.Err)
}

func (e *UnknownNodeError) Unwrap() error { return e.Err }

// ContractViolationError carries the offending value of a cost or heuristic
// collaborator.
type ContractViolationError struct {
	Collaborator string
	From         any
	To           any
	Value        float64
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s returned %v for %v -> %v: %v", e.Collaborator, e.Value, e.From, e.To, ErrContractViolation)
}

func (e *ContractViolationError) Unwrap() error { return ErrContractViolation }

// GraphFetchError wraps a failure of GraphSource.Neighbors during an expansion.
type GraphFetchError struct {
	Node any
	Err  error
}

func (e *GraphFetchError) Error() string {
	return fmt.Sprintf("fetch neighbors of %v: %v", e.Node, e.Err)
}

func (e *GraphFetchError) Unwrap() error { return e.Err }
