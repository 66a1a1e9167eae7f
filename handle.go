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

// Package legacygeo reads the legacy, pre-MMDB MaxMind GeoIP binary
// database format: a packed binary radix trie over IPv4/IPv6 addresses
// terminating in edition-specific fixed- or variable-length records.
// See doc.go for the on-disk layout.
package legacygeo

import (
	"github.com/sjzar/legacygeo/internal/header"
	"github.com/sjzar/legacygeo/internal/logx"
	"github.com/sjzar/legacygeo/internal/source"
	"github.com/sjzar/legacygeo/refdata"
)

// Handle is a single opened GeoIP Legacy database. A Handle is safe for
// concurrent use by multiple goroutines: it holds no mutable query
// state, and its Source either reads positionally (pread, no shared
// cursor) or serves from an immutable preloaded buffer.
type Handle struct {
	src    source.Source
	info   header.Info
	tables refdata.Tables
	opt    Options
}

// Open opens the database file at path and detects its edition. The
// returned Handle must be closed with Close when no longer needed.
func Open(path string, opt Options) (*Handle, error) {
	var src source.Source
	var err error
	if opt.Preload {
		src, err = source.Preload(path)
	} else {
		src, err = source.Open(path)
	}
	if err != nil {
		return nil, err
	}

	log := opt.Logger
	if log == nil {
		log = logx.Default()
	}

	info, err := header.Detect(src, log)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	return &Handle{
		src:    src,
		info:   info,
		tables: refdata.Default(),
		opt:    opt,
	}, nil
}

// Close releases the underlying file or buffer.
func (h *Handle) Close() error {
	return h.src.Close()
}

// DatabaseType names the detected edition (e.g. "CITY_REV1", "ASNUM_V6").
func (h *Handle) DatabaseType() string {
	return h.info.Edition.String()
}

// WithTables returns a shallow copy of h that consults tables instead
// of the shared refdata.Default() for country/region/timezone lookups.
// Used to plug in a fuller reference dataset without forking this
// module (spec section 1 treats the reference tables as swappable).
func (h *Handle) WithTables(tables refdata.Tables) *Handle {
	clone := *h
	clone.tables = tables
	return &clone
}
