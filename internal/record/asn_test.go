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
)

func TestASNNumberAndDescription(t *testing.T) {
	src := &memSource{data: append([]byte("AS15169 Google LLC"), 0)}
	a, err := ASN(src, 0)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "AS15169", a.Number)
	assert.Equal(t, "Google LLC", a.Description)
}

func TestASNWithoutDescription(t *testing.T) {
	src := &memSource{data: append([]byte("AS64512"), 0)}
	a, err := ASN(src, 0)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "AS64512", a.Number)
	assert.Empty(t, a.Description)
}

func TestASNNonStandardFallsBackToRawText(t *testing.T) {
	src := &memSource{data: append([]byte("Unallocated ASN Range"), 0)}
	a, err := ASN(src, 0)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Empty(t, a.Number)
	assert.Equal(t, "Unallocated ASN Range", a.Description)
}

func TestASNAbsentWithoutNUL(t *testing.T) {
	src := &memSource{data: []byte("AS123 no terminator")}
	a, err := ASN(src, 0)
	require.NoError(t, err)
	assert.Nil(t, a)
}
