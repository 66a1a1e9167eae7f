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
	"fmt"

	dberrors "github.com/sjzar/legacygeo/pkg/errors"
	"github.com/sjzar/legacygeo/model"
	"github.com/sjzar/legacygeo/refdata"
)

// Region rev1 offsets, exactly as spec section 4.6.
const (
	usOffset     = 1
	canadaOffset = 677
	worldOffset  = 1353
	fipsRange    = 360
)

// base26Pair renders n as a two-letter uppercase code, the region-code
// scheme spec 4.6 uses for both US states and Canadian provinces.
func base26Pair(n int) string {
	return string(rune('A'+n/26)) + string(rune('A'+n%26))
}

// regionCodeAndCountry computes (countryCodeID, regionCode) from p =
// terminal_offset - segment_base, for rev0 or rev1 encoding.
func regionCodeAndCountry(p int, rev1 bool) (codeID int, regionCode string) {
	if !rev1 {
		if p >= 1000 {
			return 225, base26Pair(p - 1000)
		}
		return p, ""
	}
	switch {
	case p < usOffset:
		return 0, ""
	case p < canadaOffset:
		return 225, base26Pair(p - usOffset)
	case p < worldOffset:
		return 38, base26Pair(p - canadaOffset)
	default:
		return (p - worldOffset) / fipsRange, ""
	}
}

// timeZoneLookup performs the composite lookup every region-bearing
// result uses: try iso2+regionCode first, then iso2 alone.
func timeZoneLookup(tables refdata.Tables, iso2, regionCode string) string {
	if tz, ok := tables.TimeZone(iso2 + regionCode); ok {
		return tz
	}
	tz, _ := tables.TimeZone(iso2)
	return tz
}

// Region decodes a REGION_REV0/REGION_REV1 terminal into a
// model.Region.
func Region(tables refdata.Tables, request, ip string, terminal, segmentBase int64, rev1 bool) (*model.Region, error) {
	p := int(terminal - segmentBase)
	codeID, regionCode := regionCodeAndCountry(p, rev1)

	iso2, ok := tables.CountryCode(codeID)
	if !ok {
		return nil, fmt.Errorf("%w: region country code_id %d out of range", dberrors.ErrCorruptDatabase, codeID)
	}
	iso3, _ := tables.CountryCode3(codeID)
	name, _ := tables.CountryName(codeID)
	continent, _ := tables.CountryContinent(codeID)
	regionName, _ := tables.RegionName(iso2, regionCode)

	return &model.Region{
		Request:    request,
		IP:         ip,
		CodeID:     codeID,
		ISO2:       iso2,
		ISO3:       iso3,
		Name:       name,
		Continent:  continent,
		RegionCode: regionCode,
		RegionName: regionName,
		TimeZone:   timeZoneLookup(tables, iso2, regionCode),
	}, nil
}
