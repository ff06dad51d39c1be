// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// ErrorCode classifies a StructuredError.
type ErrorCode string

// Codes raised by the values engine.
const (
	// ErrCodeNotFound: a referenced catalog entry (executor, component, AU
	// type) does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeMalformedOverride: a deployment override value is neither a
	// number nor a recognized unit-suffixed quantity.
	ErrCodeMalformedOverride ErrorCode = "MALFORMED_OVERRIDE"
	// ErrCodeInvariantViolation: a derived value broke an engine invariant.
	// This points at a logic defect rather than bad input.
	ErrCodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
	// ErrCodeInvalidRequest: input could not be decoded or validated.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInternal: anything unclassified.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Codes raised by the transport layers.
const (
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUnavailable       ErrorCode = "SERVICE_UNAVAILABLE"
)

// StructuredError carries a code for programmatic handling, a message, the
// underlying cause and key/value context (component, executor, field, value).
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the cause for errors.Is and errors.As.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New returns an error without cause or context.
func New(code ErrorCode, message string) *StructuredError {
	return WrapWithContext(code, message, nil, nil)
}

// NewWithContext returns an error carrying context.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return WrapWithContext(code, message, nil, context)
}

// Wrap returns an error with cause as its underlying error.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return WrapWithContext(code, message, cause, nil)
}

// WrapWithContext returns an error with both a cause and context.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or ErrCodeInternal when the chain carries none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether any StructuredError in err's chain carries code.
func IsCode(err error, code ErrorCode) bool {
	found := false
	walk(err, func(se *StructuredError) bool {
		found = se.Code == code
		return !found
	})
	return found
}

// ContextOf merges the context of every StructuredError in err's chain.
// Outer errors win on key collisions. It returns nil when there is none.
func ContextOf(err error) map[string]any {
	var chain []*StructuredError
	walk(err, func(se *StructuredError) bool {
		chain = append(chain, se)
		return true
	})

	var out map[string]any
	for i := len(chain) - 1; i >= 0; i-- {
		if len(chain[i].Context) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(chain[i].Context))
		}
		maps.Copy(out, chain[i].Context)
	}
	return out
}

// walk calls fn for each StructuredError in err's chain, outermost first,
// until fn returns false.
func walk(err error, fn func(*StructuredError) bool) {
	for err != nil {
		var se *StructuredError
		if !stderrors.As(err, &se) {
			return
		}
		if !fn(se) {
			return
		}
		err = se.Cause
	}
}
