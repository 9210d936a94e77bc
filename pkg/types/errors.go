// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Error kinds shared by the pipeline stages. Stages wrap the underlying
// cause together with one of these so callers can branch with errors.Is.
var (
	ErrInvalidURL     = errors.New("invalid url")
	ErrTransport      = errors.New("transport error")
	ErrExtraction     = errors.New("extraction error")
	ErrClassification = errors.New("classification error")
	ErrValidation     = errors.New("validation error")
	ErrIO             = errors.New("io error")
)

// ValidationError reports a record field that failed validation.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
