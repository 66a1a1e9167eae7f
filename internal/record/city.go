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

package record

import (
	"bytes"
	"fmt"

	"github.com/sjzar/legacygeo/internal/bincodec"
	"github.com/sjzar/legacygeo/internal/source"
	"github.com/sjzar/legacygeo/model"
	dberrors "github.com/sjzar/legacygeo/pkg/errors"
	"github.com/sjzar/legacygeo/refdata"
)

// fullRecordLength is FULL_RECORD_LENGTH from spec section 4.6.
const fullRecordLength = 50

// City decodes a CITY_REV0/CITY_REV1/CITY_REV1_V6 terminal into a
// model.City. It returns (nil, nil) when the record is absent: the
// trie terminated at segmentBase (handled by the caller) or the read
// came up short with no NUL terminator found at all.
func City(src source.Source, tables refdata.Tables, absOffset int64, request, ip string, rev1 bool) (*model.City, error) {
	c, _, err := decodeCity(src, tables, absOffset, request, ip, rev1)
	return c, err
}

// ScanCity decodes one city record directly at absOffset for a linear,
// database-order walk of the data segment (spec 4.7's each(visit)),
// rather than via a trie descent. It returns the decoded record
// alongside the number of bytes it occupies, so the caller can advance
// to the next record; a nil record (absent/truncated/no NUL found)
// always carries a length of 0, signalling the scan has run out of
// decodable records.
func ScanCity(src source.Source, tables refdata.Tables, absOffset int64, rev1 bool) (*model.City, int, error) {
	return decodeCity(src, tables, absOffset, "", "", rev1)
}

func decodeCity(src source.Source, tables refdata.Tables, absOffset int64, request, ip string, rev1 bool) (*model.City, int, error) {
	raw, err := source.ReadAtMax(src, absOffset, fullRecordLength)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) < fullRecordLength && bytes.IndexByte(raw, 0) < 0 {
		return nil, 0, nil
	}
	if len(raw) < 1 {
		return nil, 0, nil
	}

	countryIdx := int(raw[0])
	pos := 1

	regionCodeRaw, pos, ok := nextCString(raw, pos)
	if !ok {
		return nil, 0, nil
	}
	cityRaw, pos, ok := nextCString(raw, pos)
	if !ok {
		return nil, 0, nil
	}
	postalRaw, pos, ok := nextCString(raw, pos)
	if !ok {
		return nil, 0, nil
	}

	if pos+6 > len(raw) {
		return nil, 0, nil
	}
	lat := float64(bincodec.LE(raw[pos:pos+3]))/10000.0 - 180
	lon := float64(bincodec.LE(raw[pos+3:pos+6]))/10000.0 - 180
	pos += 6

	regionCode, err := iso88591ToUTF8(regionCodeRaw)
	if err != nil {
		return nil, 0, err
	}
	cityName, err := iso88591ToUTF8(cityRaw)
	if err != nil {
		return nil, 0, err
	}
	postal, err := iso88591ToUTF8(postalRaw)
	if err != nil {
		return nil, 0, err
	}

	iso2, ok := tables.CountryCode(countryIdx)
	if !ok {
		return nil, 0, fmt.Errorf("%w: city country index %d out of range", dberrors.ErrCorruptDatabase, countryIdx)
	}
	iso3, _ := tables.CountryCode3(countryIdx)
	name, _ := tables.CountryName(countryIdx)
	continent, _ := tables.CountryContinent(countryIdx)
	regionName, _ := tables.RegionName(iso2, regionCode)

	c := &model.City{
		Request:    request,
		IP:         ip,
		CodeID:     countryIdx,
		ISO2:       iso2,
		ISO3:       iso3,
		Name:       name,
		Continent:  continent,
		RegionCode: regionCode,
		RegionName: regionName,
		City:       cityName,
		Postal:     postal,
		Latitude:   lat,
		Longitude:  lon,
		TimeZone:   timeZoneLookup(tables, iso2, regionCode),
	}

	if rev1 && iso2 == "US" && len(raw)-pos >= 3 {
		v := int(bincodec.LE(raw[pos : pos+3]))
		dma := v / 1000
		area := v % 1000
		c.DMACode = &dma
		c.AreaCode = &area
		pos += 3
	}

	return c, pos, nil
}

// nextCString returns the bytes of the NUL-terminated string starting
// at pos, the position just past its terminator, and whether a
// terminator was found within raw.
func nextCString(raw []byte, pos int) ([]byte, int, bool) {
	if pos > len(raw) {
		return nil, pos, false
	}
	rest := raw[pos:]
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return nil, pos, false
	}
	return rest[:i], pos + i + 1, true
}
