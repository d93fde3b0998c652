// Copyright 2025 walteh LLC
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

package sweep

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrTargetMissing marks a matched line whose target does not exist. The
	// line is kept in place and the run continues.
	ErrTargetMissing = errors.Base("target missing")

	// ErrSourceUnreadable aborts a run before anything is committed
	ErrSourceUnreadable = errors.Base("source unreadable")
)

// SourceError reports the source that could not be read
type SourceError struct {
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("reading source %s: %v", e.Name, e.Err)
}

func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnreadable, e.Err}
}
