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

// Package header detects the GeoIP Legacy database edition by scanning
// the trailing STRUCTURE_INFO region for the 0xFF 0xFF 0xFF sentinel
// (spec section 4.4), and computes the edition's segment_base.
package header

import (
	"fmt"

	"github.com/sjzar/legacygeo/internal/bincodec"
	"github.com/sjzar/legacygeo/internal/edition"
	"github.com/sjzar/legacygeo/internal/logx"
	"github.com/sjzar/legacygeo/internal/source"
	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// structureInfoMaxSize bounds the backward scan for the sentinel.
const structureInfoMaxSize = 20

// Info is the memoised result of header detection: the database
// edition, its static attributes, and the boundary between the trie
// index region and the data region.
type Info struct {
	Edition     edition.Edition
	Attrs       edition.Attrs
	SegmentBase int64
}

// Detect scans src's trailing bytes for the structure sentinel and
// returns the database's Info. If no sentinel is found within
// structureInfoMaxSize iterations, it falls back to COUNTRY with
// segment_base = COUNTRY_BEGIN, exactly as spec 4.4 specifies.
func Detect(src source.Source, log logx.Logger) (Info, error) {
	size := src.Size()

	// pos is the marker's own start; pos+3 must stay in bounds for the
	// edition byte immediately following it, so the scan starts at
	// size-4 (not size-3) and walks backward one byte at a time.
	pos := size - 4
	for i := 0; i < structureInfoMaxSize; i++ {
		if pos < 0 {
			break
		}
		marker, err := src.ReadAt(pos, 3)
		if err != nil {
			return Info{}, err
		}
		if marker[0] == 0xFF && marker[1] == 0xFF && marker[2] == 0xFF {
			rawByte, err := src.ReadAt(pos+3, 1)
			if err != nil {
				return Info{}, err
			}
			ed, ok := edition.FromByte(rawByte[0])
			if !ok {
				return Info{}, fmt.Errorf("%w: raw edition byte %d", dberrors.ErrUnsupportedEdition, rawByte[0])
			}
			attrs, ok := ed.Attrs()
			if !ok {
				return Info{}, fmt.Errorf("%w: %s has no implementation entry", dberrors.ErrUnsupportedEdition, ed)
			}
			base, err := segmentBase(src, pos+4, attrs.Family)
			if err != nil {
				return Info{}, err
			}
			if base <= 0 {
				return Info{}, fmt.Errorf("%w: segment_base %d is not positive", dberrors.ErrCorruptDatabase, base)
			}
			return Info{Edition: ed, Attrs: attrs, SegmentBase: base}, nil
		}
		pos--
	}

	log.Warn("legacygeo: no structure marker found, defaulting to COUNTRY")
	return Info{
		Edition:     edition.Country,
		Attrs:       edition.Attrs{IPBits: 32, RecordLength: 3, Family: edition.CountryFamily},
		SegmentBase: edition.CountryBegin,
	}, nil
}

// segmentBase computes segment_base per spec 4.3's family rules. For
// VarSegFamily it reads the 3 bytes at segBytesOffset (immediately
// following the edition byte).
func segmentBase(src source.Source, segBytesOffset int64, family edition.SegmentFamily) (int64, error) {
	switch family {
	case edition.CountryFamily:
		return edition.CountryBegin, nil
	case edition.RegionRev0Family:
		return edition.StateBeginRev0, nil
	case edition.RegionRev1Family:
		return edition.StateBeginRev1, nil
	case edition.VarSegFamily:
		b, err := src.ReadAt(segBytesOffset, 3)
		if err != nil {
			return 0, err
		}
		return int64(bincodec.LE(b)), nil
	default:
		return 0, fmt.Errorf("%w: unknown segment family %d", dberrors.ErrCorruptDatabase, family)
	}
}
