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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gitlab.com/tozd/go/errors"
)

// 📦 Stage holds replacement content for logical files until it is committed
type Stage interface {
	// Create starts (or restarts) the staged content of name
	Create(name string) (io.WriteCloser, error)

	// ReadAll returns the staged content of name
	ReadAll(name string) ([]byte, error)

	// Discard drops the staged content of name
	Discard(name string) error
}

// DiskStage writes staged content next to the live file, as name+StagingSuffix
type DiskStage struct {
	Dir string
}

var _ Stage = (*DiskStage)(nil)

// NewDiskStage creates a stage rooted at dir
func NewDiskStage(dir string) *DiskStage {
	return &DiskStage{Dir: filepath.Clean(dir)}
}

// Path returns the staging path for name
func (s *DiskStage) Path(name string) string {
	return filepath.Join(s.Dir, StagingName(name))
}

func (s *DiskStage) Create(name string) (io.WriteCloser, error) {
	// keep the live file's permissions across the swap
	perm := os.FileMode(0o644)
	if info, err := os.Stat(filepath.Join(s.Dir, name)); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.OpenFile(s.Path(name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return nil, errors.Errorf("creating staging file: %w", err)
	}
	return &syncedFile{File: f}, nil
}

func (s *DiskStage) ReadAll(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, errors.Errorf("reading staging file: %w", err)
	}
	return data, nil
}

func (s *DiskStage) Discard(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("removing staging file: %w", err)
	}
	return nil
}

// syncedFile flushes to stable storage before closing so the later rename
// never exposes a file whose data is still in flight
type syncedFile struct {
	*os.File
}

func (f *syncedFile) Close() error {
	if err := f.File.Sync(); err != nil {
		f.File.Close()
		return errors.Errorf("syncing staging file: %w", err)
	}
	if err := f.File.Close(); err != nil {
		return errors.Errorf("closing staging file: %w", err)
	}
	return nil
}

// MemStage keeps staged content in memory. Dry runs use it so that nothing in
// the folder is touched.
type MemStage struct {
	files map[string]*bytes.Buffer
}

var _ Stage = (*MemStage)(nil)

// NewMemStage creates an empty in-memory stage
func NewMemStage() *MemStage {
	return &MemStage{files: make(map[string]*bytes.Buffer)}
}

func (s *MemStage) Create(name string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	s.files[name] = buf
	return nopCloser{buf}, nil
}

func (s *MemStage) ReadAll(name string) ([]byte, error) {
	buf, ok := s.files[name]
	if !ok {
		return nil, errors.Errorf("nothing staged for %s", name)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func (s *MemStage) Discard(name string) error {
	delete(s.files, name)
	return nil
}

// Names lists the staged names in lexical order
func (s *MemStage) Names() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
