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

// Package bincodec implements the little/big-endian integer decoding
// and IPv4/IPv6 address parsing rules from spec section 4.2. IP
// addresses are represented as a 128-bit value split into (hi, lo)
// uint64 halves so IPv4 and IPv6 share one descent algorithm in
// internal/trie.
package bincodec

import (
	"net"
	"strings"

	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// LE decodes b as a little-endian unsigned integer: sum b[i]<<(8*i).
func LE(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * uint(i))
	}
	return v
}

// BE decodes b as a big-endian unsigned integer: sum b[i]<<(8*(n-1-i)).
func BE(b []byte) uint64 {
	var v uint64
	n := len(b)
	for i, c := range b {
		v |= uint64(c) << (8 * uint(n-1-i))
	}
	return v
}

// Addr is a 128-bit IP address value, used uniformly for IPv4 (which
// occupies the low 32 bits with the high bits zero) and IPv6.
type Addr struct {
	Hi uint64
	Lo uint64
}

// Bit returns the value (0 or 1) of the bit at index i, counting from
// the most significant bit of a width-bit address (width is 32 or
// 128). i ranges over [0, width).
func (a Addr) Bit(i, width int) int {
	// Bit 0 is the MSB of the address. For a 128-bit value laid out as
	// (Hi, Lo), bit index i (0 = MSB of the full 128 bits) maps to bit
	// (127-i) counting from the LSB. For a 32-bit address the value
	// lives in the low 32 bits of Lo.
	if width == 32 {
		shift := uint(31 - i)
		return int((a.Lo >> shift) & 1)
	}
	msbIndex := 127 - i
	if msbIndex >= 64 {
		return int((a.Hi >> uint(msbIndex-64)) & 1)
	}
	return int((a.Lo >> uint(msbIndex)) & 1)
}

// loopbackSpellings are the loopback spellings Normalize replaces with
// a caller-supplied alias. Without an alias only "::1" is rewritten
// (to 0.0.0.0).
var loopbackSpellings = map[string]bool{
	"127.0.0.1":               true,
	"localhost":               true,
	"::1":                     true,
	"0000::1":                 true,
	"0:0:0:0:0:0:0:1":         true,
}

// Normalize rewrites a loopback spelling to its replacement before
// parsing. If alias is non-empty it replaces any recognized loopback
// spelling; otherwise the literal "::1" is rewritten to "0.0.0.0" per
// spec 4.2, and other loopback spellings pass through unchanged.
func Normalize(address, alias string) string {
	if alias != "" && loopbackSpellings[address] {
		return alias
	}
	if address == "::1" {
		return "0.0.0.0"
	}
	return address
}

// ParseIPv4 parses a dotted-quad string into a 32-bit integer packed
// into the low bits of an Addr.
func ParseIPv4(s string) (Addr, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Addr{}, false
	}
	var v uint64
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return Addr{}, false
		}
		n := 0
		for _, c := range p {
			if c < '0' || c > '9' {
				return Addr{}, false
			}
			n = n*10 + int(c-'0')
			if n > 255 {
				return Addr{}, false
			}
		}
		v = v<<8 | uint64(n)
	}
	return Addr{Lo: v}, true
}

// ParseIPv6 parses standard IPv6 textual form into a 128-bit Addr.
func ParseIPv6(s string) (Addr, bool) {
	ip := net.ParseIP(s)
	if ip == nil {
		return Addr{}, false
	}
	ip16 := ip.To16()
	if ip16 == nil {
		return Addr{}, false
	}
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		hi = hi<<8 | uint64(ip16[i])
	}
	for i := 8; i < 16; i++ {
		lo = lo<<8 | uint64(ip16[i])
	}
	return Addr{Hi: hi, Lo: lo}, true
}

// Parse parses address as IPv4 first, then IPv6, returning the address
// and its bit width (32 or 128), or ErrBadAddress if neither parses.
func Parse(address string) (Addr, int, error) {
	if a, ok := ParseIPv4(address); ok {
		return a, 32, nil
	}
	if a, ok := ParseIPv6(address); ok {
		return a, 128, nil
	}
	return Addr{}, 0, dberrors.ErrBadAddress
}
