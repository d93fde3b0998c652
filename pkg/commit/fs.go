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

package commit

import (
	"os"

	"gitlab.com/tozd/go/errors"
)

// 💾 FS is the filesystem surface the commit protocol relies on
type FS interface {
	// Exists reports whether path names an existing directory entry
	Exists(path string) (bool, error)

	// Replace atomically moves oldpath to newpath, replacing newpath if it
	// exists. Observers see either the old newpath or the new one, never a mix.
	Replace(oldpath, newpath string) error
}

// OSFS implements FS on the local filesystem
type OSFS struct{}

var _ FS = OSFS{}

func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking existence of %s: %w", path, err)
}

func (OSFS) Replace(oldpath, newpath string) error {
	return replaceFile(oldpath, newpath)
}
