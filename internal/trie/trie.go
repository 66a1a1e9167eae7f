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

// Package trie navigates the packed binary radix trie described in
// spec section 4.5: a perfect binary trie of depth ip_bits, where each
// internal node is two little-endian record_length-byte pointers.
package trie

import (
	"github.com/sjzar/legacygeo/internal/bincodec"
	"github.com/sjzar/legacygeo/internal/source"
)

// Lookup descends the trie from node 0, examining addr's bits
// most-significant first, and returns the terminal offset: the first
// child pointer encountered that is >= segmentBase. If the descent
// exhausts ipBits bits without terminating, it returns segmentBase,
// i.e. "no data" (spec 4.5's termination guarantee).
func Lookup(src source.Source, recordLength, ipBits int, segmentBase int64, addr bincodec.Addr) (int64, error) {
	node := int64(0)
	for i := 0; i < ipBits; i++ {
		bit := addr.Bit(i, ipBits)
		ptr, err := readPointer(src, recordLength, node, bit)
		if err != nil {
			return 0, err
		}
		if ptr >= segmentBase {
			return ptr, nil
		}
		node = ptr
	}
	return segmentBase, nil
}

// readPointer reads the record_length-byte child pointer for the given
// bit (0 = left, 1 = right) out of the node at index nodeIndex, reading
// only the half of the node the bit selects.
func readPointer(src source.Source, recordLength int, nodeIndex int64, bit int) (int64, error) {
	nodeOffset := 2 * int64(recordLength) * nodeIndex
	childOffset := nodeOffset
	if bit == 1 {
		childOffset += int64(recordLength)
	}
	b, err := src.ReadAt(childOffset, recordLength)
	if err != nil {
		return 0, err
	}
	return int64(bincodec.LE(b)), nil
}

// Leaf is one terminal encountered while walking the trie: ip is the
// integer value of the address prefix fixed by the path to this leaf,
// zero-extended over the remaining bits (i.e. the first address in the
// leaf's range). Terminal is the raw pointer value; Terminal ==
// segmentBase means "no data" for this range.
type Leaf struct {
	IP       bincodec.Addr
	Terminal int64
}

// Walk performs a depth-first traversal of the trie in ascending-IP
// order, invoking visit once per terminal encountered (spec 4.7's
// each_by_ip). The traversal descends left (bit 0) before right (bit 1)
// at every node, which is what yields ascending order.
func Walk(src source.Source, recordLength, ipBits int, segmentBase int64, visit func(Leaf) error) error {
	return walk(src, recordLength, ipBits, segmentBase, 0, 0, bincodec.Addr{}, visit)
}

func walk(src source.Source, recordLength, ipBits int, segmentBase int64, node int64, depth int, prefix bincodec.Addr, visit func(Leaf) error) error {
	for bit := 0; bit <= 1; bit++ {
		ptr, err := readPointer(src, recordLength, node, bit)
		if err != nil {
			return err
		}
		childPrefix := setBit(prefix, depth, ipBits, bit)
		if ptr >= segmentBase || depth+1 == ipBits {
			terminal := ptr
			if ptr < segmentBase {
				// Exhausted without terminating: treat as no-data,
				// matching Lookup's fallback.
				terminal = segmentBase
			}
			if err := visit(Leaf{IP: childPrefix, Terminal: terminal}); err != nil {
				return err
			}
			continue
		}
		if err := walk(src, recordLength, ipBits, segmentBase, ptr, depth+1, childPrefix, visit); err != nil {
			return err
		}
	}
	return nil
}

// setBit returns prefix with the bit at position depth (MSB-first over
// a width-bit address) set to v.
func setBit(prefix bincodec.Addr, depth, width, v int) bincodec.Addr {
	if width == 32 {
		shift := uint(31 - depth)
		mask := uint64(1) << shift
		if v == 1 {
			prefix.Lo |= mask
		} else {
			prefix.Lo &^= mask
		}
		return prefix
	}
	msbIndex := 127 - depth
	if msbIndex >= 64 {
		shift := uint(msbIndex - 64)
		mask := uint64(1) << shift
		if v == 1 {
			prefix.Hi |= mask
		} else {
			prefix.Hi &^= mask
		}
		return prefix
	}
	shift := uint(msbIndex)
	mask := uint64(1) << shift
	if v == 1 {
		prefix.Lo |= mask
	} else {
		prefix.Lo &^= mask
	}
	return prefix
}
