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

// Package refdata holds the reference tables the record decoders
// consult by index or composite key: country code/name/continent
// arrays, region names, and the timezone map. Spec section 1 treats
// these tables as an external, read-only resource rather than part of
// the core reader; this package supplies a workable default and a seam
// for callers to supply their own.
package refdata

import (
	"bytes"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Tables is the reference-data contract the record decoders depend
// on. It is an interface, not a concrete struct, so a caller can wire
// in a fuller dataset (e.g. the full upstream MaxMind tables) without
// forking this module.
type Tables interface {
	// CountryCode returns the two-letter ISO code at i, and whether i
	// is in range.
	CountryCode(i int) (string, bool)
	// CountryCode3 returns the three-letter ISO code at i.
	CountryCode3(i int) (string, bool)
	// CountryName returns the English country name at i.
	CountryName(i int) (string, bool)
	// CountryContinent returns the two-letter continent code at i.
	CountryContinent(i int) (string, bool)
	// Len returns the number of entries in the country tables (the
	// bound record decoders validate code_id against).
	Len() int
	// RegionName returns the region name for an ISO2 country plus a
	// region code (e.g. "US", "CA" -> "California").
	RegionName(iso2, regionCode string) (string, bool)
	// TimeZone returns the timezone for a composite iso2+regionCode
	// key, or for iso2 alone.
	TimeZone(key string) (string, bool)
}

type defaultTables struct {
	countryCode      []string
	countryCode3     []string
	countryName      []string
	countryContinent []string
	regionName       map[string]map[string]string
	timeZone         map[string]string

	mu sync.RWMutex
}

var (
	once   sync.Once
	shared *defaultTables
)

// Default returns the package-level default Tables implementation,
// built once and shared across all handles (spec 5's "reference tables
// are read-only; after initialisation they may be freely shared").
func Default() Tables {
	once.Do(func() {
		shared = newDefaultTables()
	})
	return shared
}

func (t *defaultTables) CountryCode(i int) (string, bool) {
	if i < 0 || i >= len(t.countryCode) {
		return "", false
	}
	return t.countryCode[i], true
}

func (t *defaultTables) CountryCode3(i int) (string, bool) {
	if i < 0 || i >= len(t.countryCode3) {
		return "", false
	}
	return t.countryCode3[i], true
}

func (t *defaultTables) CountryName(i int) (string, bool) {
	if i < 0 || i >= len(t.countryName) {
		return "", false
	}
	return t.countryName[i], true
}

func (t *defaultTables) CountryContinent(i int) (string, bool) {
	if i < 0 || i >= len(t.countryContinent) {
		return "", false
	}
	return t.countryContinent[i], true
}

func (t *defaultTables) Len() int {
	return len(t.countryCode)
}

func (t *defaultTables) RegionName(iso2, regionCode string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	byRegion, ok := t.regionName[iso2]
	if !ok {
		return "", false
	}
	name, ok := byRegion[regionCode]
	return name, ok
}

func (t *defaultTables) TimeZone(key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tz, ok := t.timeZone[key]
	return tz, ok
}

// Overlay is a caller-supplied correction/extension to the region-name
// and timezone tables, applied over the default data without
// replacing it outright. It is the one part of this package that
// round-trips through msgpack (mirroring the teacher's sdk.Geo
// auxiliary-lookup encoding in format/czdb/sdk/geo.go), because unlike
// the country arrays it is meant to be shipped as a small external
// blob a caller updates independently of this module's release cycle.
type Overlay struct {
	RegionName map[string]map[string]string `msgpack:"region_name"`
	TimeZone   map[string]string            `msgpack:"time_zone"`
}

// EncodeOverlay serializes an Overlay to msgpack bytes.
func EncodeOverlay(o Overlay) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeOverlay deserializes msgpack bytes produced by EncodeOverlay.
func DecodeOverlay(data []byte) (Overlay, error) {
	var o Overlay
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&o); err != nil {
		return Overlay{}, err
	}
	return o, nil
}

// ApplyOverlay returns a new Tables that prefers entries from o over
// base, falling back to base for anything o does not override.
func ApplyOverlay(base Tables, o Overlay) Tables {
	return &overlaid{base: base, overlay: o}
}

type overlaid struct {
	base    Tables
	overlay Overlay
}

func (o *overlaid) CountryCode(i int) (string, bool)      { return o.base.CountryCode(i) }
func (o *overlaid) CountryCode3(i int) (string, bool)     { return o.base.CountryCode3(i) }
func (o *overlaid) CountryName(i int) (string, bool)      { return o.base.CountryName(i) }
func (o *overlaid) CountryContinent(i int) (string, bool) { return o.base.CountryContinent(i) }
func (o *overlaid) Len() int                              { return o.base.Len() }

func (o *overlaid) RegionName(iso2, regionCode string) (string, bool) {
	if byRegion, ok := o.overlay.RegionName[iso2]; ok {
		if name, ok := byRegion[regionCode]; ok {
			return name, true
		}
	}
	return o.base.RegionName(iso2, regionCode)
}

func (o *overlaid) TimeZone(key string) (string, bool) {
	if tz, ok := o.overlay.TimeZone[key]; ok {
		return tz, true
	}
	return o.base.TimeZone(key)
}
