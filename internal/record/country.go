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

	"github.com/sjzar/legacygeo/model"
	"github.com/sjzar/legacygeo/refdata"
	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// CodeID computes the country-style index: terminal_offset -
// segment_base (spec 4.5's "country index"). A terminal equal to
// segmentBase gives code_id 0, which indexes the table's own "--"/"N/A"
// sentinel: Country queries return that row rather than absent data,
// and bounds-check code_id against the table. The City, Region, ASN,
// Organization and NetSpeedRev1 queries instead turn a segmentBase
// terminal into a nil result before decoding.
func CodeID(terminal, segmentBase int64) int {
	return int(terminal - segmentBase)
}

// Country decodes a country-style terminal (COUNTRY, PROXY, COUNTRY_V6,
// LARGE_COUNTRY, LARGE_COUNTRY_V6) into a model.Country, bounds-checking
// code_id against the reference tables (spec 4.5's tie-break: code_id
// must fall within the reference table bounds).
func Country(tables refdata.Tables, request, ip string, codeID int) (*model.Country, error) {
	iso2, ok := tables.CountryCode(codeID)
	if !ok {
		return nil, fmt.Errorf("%w: country code_id %d out of range [0,%d)", dberrors.ErrCorruptDatabase, codeID, tables.Len())
	}
	iso3, _ := tables.CountryCode3(codeID)
	name, _ := tables.CountryName(codeID)
	continent, _ := tables.CountryContinent(codeID)
	return &model.Country{
		Request:   request,
		IP:        ip,
		CodeID:    codeID,
		ISO2:      iso2,
		ISO3:      iso3,
		Name:      name,
		Continent: continent,
	}, nil
}

// NetSpeedLegacy decodes the NETSPEED edition's country-style terminal:
// the code_id IS the speed class (0..3), returned as-is (spec 4.6).
func NetSpeedLegacy(codeID int) *model.NetSpeed {
	n := codeID
	return &model.NetSpeed{Numeric: &n}
}
