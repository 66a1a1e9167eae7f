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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/legacygeo/refdata"
)

func TestCountryCodeID(t *testing.T) {
	assert.Equal(t, 196, CodeID(16776960+196, 16776960))
}

func TestCountrySlovakia(t *testing.T) {
	c, err := Country(refdata.Default(), "5.5.5.5", "5.5.5.5", 196)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "SK", c.ISO2)
	assert.Equal(t, "SVK", c.ISO3)
	assert.Equal(t, "Slovakia", c.Name)
	assert.Equal(t, "EU", c.Continent)
	assert.Equal(t, 196, c.CodeID)
}

func TestCountryOutOfRangeIsCorrupt(t *testing.T) {
	_, err := Country(refdata.Default(), "1.2.3.4", "1.2.3.4", refdata.Default().Len()+5)
	assert.Error(t, err)
}

func TestNetSpeedLegacy(t *testing.T) {
	ns := NetSpeedLegacy(2)
	require.NotNil(t, ns.Numeric)
	assert.Equal(t, 2, *ns.Numeric)
}
