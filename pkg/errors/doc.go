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

// Package errors defines StructuredError, the coded error every layer of the
// values engine returns.
//
// Engine codes are raised while composing values and are never retried:
//
//   - ErrCodeNotFound: a deployment references an executor, component or AU
//     type the catalog does not define.
//   - ErrCodeMalformedOverride: an override resource value is neither a number
//     nor a parseable unit-suffixed quantity.
//   - ErrCodeInvariantViolation: a derived value broke an engine invariant,
//     such as requests differing from limits after normalization.
//   - ErrCodeInvalidRequest: the input document itself is unusable.
//
// Transport codes (timeout, rate limit, method, unavailable) are only raised
// by the HTTP server.
//
// Context attached with NewWithContext or WrapWithContext travels with the
// error. ContextOf collects it across a wrapped chain so callers can add
// their own keys without losing the inner ones:
//
//	err := errors.NewWithContext(errors.ErrCodeNotFound,
//	    "executor not found in catalog",
//	    map[string]any{"executor": name})
//
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    fields := errors.ContextOf(err)
//	    ...
//	}
package errors
