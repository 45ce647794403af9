package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks,
// e.g. custom split amounts not summing to the bill total.
var ErrValidation = errors.New("validation error")

// ErrInvalidInput indicates structurally malformed input, e.g. an empty
// member list or a non-positive amount.
var ErrInvalidInput = errors.New("invalid input")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not permitted to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrPoolCapacity indicates the pool member plus pending invite cap would be exceeded.
var ErrPoolCapacity = errors.New("pool capacity exceeded")

// ErrTransient indicates an underlying store or network failure; callers may retry.
var ErrTransient = errors.New("transient storage error")
