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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

func writeFixtureFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dat")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func putLE3(buf []byte, off int, v int) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
}

// countryFixture builds a minimal single-node COUNTRY-edition database:
// bit 0 of the address selects left (code_id leftCode) or right
// (code_id rightCode), terminating immediately.
func countryFixture(leftCode, rightCode int) []byte {
	const segmentBase = 16776960 // edition.CountryBegin
	buf := make([]byte, 6)
	putLE3(buf, 0, segmentBase+leftCode)
	putLE3(buf, 3, segmentBase+rightCode)
	buf = append(buf, 0xFF, 0xFF, 0xFF, 1) // edition byte 1 = COUNTRY
	return buf
}

func TestOpenCountryDatabase(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0))

	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	require.Equal(t, "COUNTRY", h.DatabaseType())

	c, err := h.Country("5.5.5.5") // bit0 = 0
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "SK", c.ISO2)
	require.Equal(t, "Slovakia", c.Name)

	c, err = h.Country("200.1.1.1") // bit0 = 1
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "--", c.ISO2, "code_id 0 is the table's own N/A sentinel, not an error")

	_, err = h.Region("5.5.5.5")
	require.ErrorIs(t, err, dberrors.ErrInvalidForEdition)
}

func TestOpenUnsupportedEdition(t *testing.T) {
	path := writeFixtureFile(t, []byte{0xFF, 0xFF, 0xFF, 99})

	_, err := Open(path, Options{})
	require.ErrorIs(t, err, dberrors.ErrUnsupportedEdition)
}

func TestOpenPreload(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0))

	h, err := Open(path, Options{Preload: true})
	require.NoError(t, err)
	defer h.Close()

	c, err := h.Country("5.5.5.5")
	require.NoError(t, err)
	require.Equal(t, "SK", c.ISO2)
}

func TestBadAddressWithoutResolver(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0))
	h, err := Open(path, Options{})
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Country("not-a-hostname-or-ip")
	require.ErrorIs(t, err, dberrors.ErrBadAddress)
}

func TestResolverHookUsedWhenAddressIsAHostname(t *testing.T) {
	path := writeFixtureFile(t, countryFixture(196, 0))
	h, err := Open(path, Options{
		Resolver: func(host string) (string, error) {
			require.Equal(t, "example.test", host)
			return "5.5.5.5", nil
		},
	})
	require.NoError(t, err)
	defer h.Close()

	c, err := h.Country("example.test")
	require.NoError(t, err)
	require.Equal(t, "SK", c.ISO2)
}
