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

package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/legacygeo/internal/bincodec"
)

// memSource is a minimal in-memory source.Source for trie tests, so
// fixtures can be built as plain byte slices without touching disk.
type memSource struct {
	data []byte
}

func (m *memSource) ReadAt(off int64, n int) ([]byte, error) {
	return m.data[off : off+int64(n)], nil
}
func (m *memSource) Size() int64  { return int64(len(m.data)) }
func (m *memSource) Close() error { return nil }

func putLE(buf []byte, off int, n int, v int64) {
	for i := 0; i < n; i++ {
		buf[off+i] = byte(v >> uint(8*i))
	}
}

// singleNodeFixture builds a one-node trie (record_length=3): bit 0 of
// the address routes to leftCode, bit 1 to rightCode, both expressed as
// segmentBase + code so the very first bit terminates the descent.
func singleNodeFixture(segmentBase int64, leftCode, rightCode int64) *memSource {
	buf := make([]byte, 6)
	putLE(buf, 0, 3, segmentBase+leftCode)
	putLE(buf, 3, 3, segmentBase+rightCode)
	return &memSource{data: buf}
}

func TestLookupTerminatesOnFirstQualifyingPointer(t *testing.T) {
	const segmentBase = 1000
	src := singleNodeFixture(segmentBase, 196, 0)

	addr, _ := bincodec.ParseIPv4("5.5.5.5") // bit 0 = 0
	terminal, err := Lookup(src, 3, 32, segmentBase, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(segmentBase+196), terminal)

	addr, _ = bincodec.ParseIPv4("200.1.1.1") // bit 0 = 1
	terminal, err = Lookup(src, 3, 32, segmentBase, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(segmentBase+0), terminal)
}

func TestLookupExhaustionFallsBackToSegmentBase(t *testing.T) {
	const segmentBase = 1000
	// Both children loop back to node 0 forever: never qualifies.
	buf := make([]byte, 6)
	src := &memSource{data: buf}

	addr, _ := bincodec.ParseIPv4("1.2.3.4")
	terminal, err := Lookup(src, 3, 32, segmentBase, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(segmentBase), terminal, "no-data fallback must equal segmentBase")
}

func TestWalkAscendingOrder(t *testing.T) {
	const segmentBase = 1000
	src := singleNodeFixture(segmentBase, 196, 5)

	var leaves []Leaf
	err := Walk(src, 3, 32, segmentBase, func(l Leaf) error {
		leaves = append(leaves, l)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, leaves, 2)

	assert.Equal(t, int64(segmentBase+196), leaves[0].Terminal, "bit-0 branch (ascending IPs) visited first")
	assert.Equal(t, int64(segmentBase+5), leaves[1].Terminal)
}

func TestWalkPropagatesVisitError(t *testing.T) {
	const segmentBase = 1000
	src := singleNodeFixture(segmentBase, 1, 2)

	stop := assert.AnError
	err := Walk(src, 3, 32, segmentBase, func(l Leaf) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
}
