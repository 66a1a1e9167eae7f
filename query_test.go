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

package legacygeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/legacygeo/model"
	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// varSegFixture builds a single-node, segment_base=1 database for any
// VarSegFamily edition: bit 0 of the address selects the data record
// (dataOffset=1, absolute offset = indexSize+1) or "absent"
// (terminal == segment_base exactly).
func varSegFixture(editionByte byte, recordLength int, record []byte) []byte {
	const segmentBase = 1
	indexSize := 2 * recordLength * segmentBase

	buf := make([]byte, indexSize)
	putLE3(buf, 0, segmentBase+1) // bit0=0 -> has data
	putLE3(buf, recordLength, segmentBase+0) // bit0=1 -> absent

	buf = append(buf, 0) // 1 padding byte so data starts at dataOffset=1
	buf = append(buf, record...)

	buf = append(buf, 0xFF, 0xFF, 0xFF, editionByte)
	buf = append(buf, byte(segmentBase), 0, 0)
	return buf
}

func buildCityRecordBytes(countryIdx int, regionCode, city, postal string, lat, long float64, dmaArea *int) []byte {
	var buf []byte
	buf = append(buf, byte(countryIdx))
	buf = append(buf, []byte(regionCode)...)
	buf = append(buf, 0)
	buf = append(buf, []byte(city)...)
	buf = append(buf, 0)
	buf = append(buf, []byte(postal)...)
	buf = append(buf, 0)

	tail := make([]byte, 6)
	putLE3(tail, 0, int((lat+180)*10000))
	putLE3(tail, 3, int((long+180)*10000))
	buf = append(buf, tail...)

	if dmaArea != nil {
		extra := make([]byte, 3)
		putLE3(extra, 0, *dmaArea)
		buf = append(buf, extra...)
	}
	return buf
}

func TestCityRev1EndToEnd(t *testing.T) {
	dmaArea := 803212
	record := buildCityRecordBytes(225, "CA", "Los Angeles", "90001", 34.05, -118.24, &dmaArea)
	path := writeFixtureFile(t, varSegFixture(2 /* CITY_REV1 */, 3, record))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()
	require.Equal(t, "CITY_REV1", h.DatabaseType())

	c, err := h.City("5.5.5.5") // bit0=0 -> has data
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Los Angeles", c.City)
	assert.Equal(t, "America/Los_Angeles", c.TimeZone)
	require.NotNil(t, c.DMACode)
	assert.Equal(t, 803, *c.DMACode)

	c, err = h.City("200.1.1.1") // bit0=1 -> absent
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestASNEndToEnd(t *testing.T) {
	record := append([]byte("AS15169 Google LLC"), 0)
	path := writeFixtureFile(t, varSegFixture(9 /* ASNUM */, 3, record))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	a, err := h.ASN("5.5.5.5")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "AS15169", a.Number)
	assert.Equal(t, "Google LLC", a.Description)

	a, err = h.ASN("200.1.1.1")
	require.NoError(t, err)
	assert.Nil(t, a)

	_, err = h.City("5.5.5.5")
	assert.Error(t, err, "ASN database must reject a City query")
}

func TestNetSpeedRev1EndToEnd(t *testing.T) {
	record := append([]byte("Cable/DSL"), 0)
	path := writeFixtureFile(t, varSegFixture(32 /* NETSPEED_REV1 */, 3, record))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	ns, err := h.NetSpeed("5.5.5.5")
	require.NoError(t, err)
	require.NotNil(t, ns)
	assert.Equal(t, "Cable/DSL", ns.Label)
}

func TestEachByIPVisitsBothLeaves(t *testing.T) {
	record := append([]byte("AS64512 Example Org"), 0)
	path := writeFixtureFile(t, varSegFixture(9, 3, record))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	var ips []string
	err = h.EachByIP(func(ip string, result interface{}) error {
		ips = append(ips, ip)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, ips, 2)
}

func TestCountryDelegatesToCityAndRegionEditions(t *testing.T) {
	record := buildCityRecordBytes(225, "CA", "Los Angeles", "90001", 34.05, -118.24, nil)
	path := writeFixtureFile(t, varSegFixture(2 /* CITY_REV1 */, 3, record))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	c, err := h.Country("5.5.5.5") // bit0=0 -> has data
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "US", c.ISO2)
	assert.Equal(t, 225, c.CodeID)

	r, err := h.Region("5.5.5.5")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "US", r.ISO2)
	assert.Equal(t, "CA", r.RegionCode)
	assert.Equal(t, "America/Los_Angeles", r.TimeZone)

	c, err = h.Country("200.1.1.1") // bit0=1 -> absent
	require.NoError(t, err)
	assert.Nil(t, c, "no city data for this address means no delegated country either")
}

func TestEachScansCityRecordsInDatabaseOrder(t *testing.T) {
	const segmentBase = 1
	const recordLength = 3
	indexSize := 2 * recordLength * segmentBase

	buf := make([]byte, indexSize)
	putLE3(buf, 0, segmentBase)
	putLE3(buf, recordLength, segmentBase)

	// A CITY_REV1 US record carries the 3-byte DMA/area trailer; the
	// non-US record does not.
	dmaArea := 803212
	rec1 := buildCityRecordBytes(225, "CA", "Los Angeles", "90001", 34.05, -118.24, &dmaArea)
	rec2 := buildCityRecordBytes(196, "", "Bratislava", "81101", 48.15, 17.12, nil)
	buf = append(buf, rec1...)
	buf = append(buf, rec2...)
	buf = append(buf, 0xFF, 0xFF, 0xFF, 2) // CITY_REV1
	buf = append(buf, byte(segmentBase), 0, 0)

	path := writeFixtureFile(t, buf)
	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	var cities []string
	err = h.Each(func(c *model.City) error {
		cities = append(cities, c.City)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Los Angeles", "Bratislava"}, cities)
}

func TestEachRejectsNonCityEdition(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0))
	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	err = h.Each(func(c *model.City) error { return nil })
	require.ErrorIs(t, err, dberrors.ErrInvalidForEdition)
}

func TestEachByIPEmitsNullForSegmentBaseTerminalOnCountryFamily(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0 /* terminal == segmentBase */))
	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	var results []interface{}
	err = h.EachByIP(func(ip string, result interface{}) error {
		results = append(results, result)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Nil(t, results[1], "terminal == segment_base must surface as a null record during iteration, even for a country-family edition")
}
