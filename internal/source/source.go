/*
 * Copyright (c) 2024 shenjunzheng@gmail.com
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package source provides the byte-source abstraction every higher
// layer reads through: a positional, concurrency-safe read of N bytes
// at a given offset, backed either by the open file or by a fully
// preloaded in-memory buffer.
package source

import (
	"fmt"
	"io"
	"os"

	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// Source is an atomic positional byte reader. Multiple goroutines may
// call ReadAt concurrently; implementations must not share mutable
// cursor state across calls.
type Source interface {
	// ReadAt returns exactly n bytes starting at off, or an error.
	ReadAt(off int64, n int) ([]byte, error)
	// Size returns the total length of the underlying data.
	Size() int64
	// Close releases any underlying resources.
	Close() error
}

// fileSource serves reads with os.File.ReadAt, which performs a kernel
// pread and never mutates the file's shared seek offset. This makes it
// safe across concurrent goroutines, and across processes sharing the
// descriptor, without any locking.
type fileSource struct {
	f    *os.File
	size int64
}

// Open opens path for positional reads without loading it into memory.
func Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dberrors.ErrIO, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", dberrors.ErrIO, err)
	}
	return &fileSource{f: f, size: fi.Size()}, nil
}

func (s *fileSource) ReadAt(off int64, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+int64(n) > s.size {
		return nil, fmt.Errorf("%w: read of %d bytes at offset %d exceeds file size %d", dberrors.ErrIO, n, off, s.size)
	}
	buf := make([]byte, n)
	if _, err := s.f.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", dberrors.ErrIO, err)
	}
	return buf, nil
}

func (s *fileSource) Size() int64 { return s.size }

func (s *fileSource) Close() error {
	return s.f.Close()
}

// preloadSource serves reads from an immutable buffer read once at
// open time. The underlying file is closed immediately after loading,
// matching the teacher's sdk.Reader pattern of reading the whole file
// into r.data up front (format/czdb/sdk/reader.go's NewReader).
type preloadSource struct {
	data []byte
}

// Preload reads the entire file at path into memory and returns a
// Source backed by that immutable buffer.
func Preload(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dberrors.ErrIO, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dberrors.ErrIO, err)
	}
	return &preloadSource{data: data}, nil
}

func (s *preloadSource) ReadAt(off int64, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+int64(n) > int64(len(s.data)) {
		return nil, fmt.Errorf("%w: read of %d bytes at offset %d exceeds buffer size %d", dberrors.ErrIO, n, off, len(s.data))
	}
	out := make([]byte, n)
	copy(out, s.data[off:off+int64(n)])
	return out, nil
}

func (s *preloadSource) Size() int64 { return int64(len(s.data)) }

func (s *preloadSource) Close() error {
	s.data = nil
	return nil
}

// ReadAtMax reads up to n bytes starting at off, returning fewer bytes
// without error if the source ends before n bytes are available. Record
// decoders use this for variable-length, NUL-terminated fields near
// EOF (spec's "clamped to EOF" city/ASN/ISP reads).
func ReadAtMax(s Source, off int64, n int) ([]byte, error) {
	size := s.Size()
	if off >= size {
		return nil, nil
	}
	if off+int64(n) > size {
		n = int(size - off)
	}
	return s.ReadAt(off, n)
}
