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
	"fmt"

	"github.com/sjzar/legacygeo/internal/bincodec"
	"github.com/sjzar/legacygeo/internal/edition"
	"github.com/sjzar/legacygeo/internal/record"
	"github.com/sjzar/legacygeo/internal/trie"
	"github.com/sjzar/legacygeo/model"
	dberrors "github.com/sjzar/legacygeo/pkg/errors"
)

// resolveAddr normalizes address (loopback alias rewrite), parses it as
// an IP, and falls back to h.opt.Resolver for a hostname. It returns
// the parsed Addr, its literal bit width (32 or 128), and the
// normalized address string used in results.
func (h *Handle) resolveAddr(address string) (bincodec.Addr, int, string, error) {
	normalized := bincodec.Normalize(address, h.opt.LocalIPAlias)

	if addr, width, err := bincodec.Parse(normalized); err == nil {
		return addr, width, normalized, nil
	}

	if h.opt.Resolver != nil {
		if host, rerr := h.opt.Resolver(normalized); rerr == nil {
			if addr, width, err := bincodec.Parse(host); err == nil {
				return addr, width, host, nil
			}
		}
	}

	return bincodec.Addr{}, 0, "", fmt.Errorf("%w: %s", dberrors.ErrBadAddress, address)
}

// v4InV6 maps a 32-bit address into the low bits of a 128-bit value the
// way an IPv4-mapped IPv6 address (::ffff:a.b.c.d) does, so a caller
// can query a *_V6 edition with a plain dotted-quad string.
func v4InV6(addr bincodec.Addr) bincodec.Addr {
	return bincodec.Addr{Hi: 0, Lo: 0x0000ffff00000000 | (addr.Lo & 0xffffffff)}
}

// terminalFor resolves address, adapts its width to the database
// edition's ip_bits, and descends the trie, returning the terminal
// offset alongside the edition's static attrs and the normalized
// address string.
func (h *Handle) terminalFor(address string) (int64, edition.Attrs, string, error) {
	addr, width, normalized, err := h.resolveAddr(address)
	if err != nil {
		return 0, edition.Attrs{}, "", err
	}

	a := h.info.Attrs
	switch {
	case a.IPBits == 128 && width == 32:
		addr = v4InV6(addr)
	case a.IPBits == 32 && width == 128:
		return 0, edition.Attrs{}, "", fmt.Errorf("%w: %s is a 32-bit edition, cannot query an IPv6 address", dberrors.ErrBadAddress, h.info.Edition)
	}

	terminal, err := trie.Lookup(h.src, a.RecordLength, a.IPBits, h.info.SegmentBase, addr)
	if err != nil {
		return 0, edition.Attrs{}, "", err
	}
	return terminal, a, normalized, nil
}

// Country looks up the country carried by any edition that has one.
// COUNTRY, PROXY, COUNTRY_V6, NETSPEED, LARGE_COUNTRY, and
// LARGE_COUNTRY_V6 descend and build Country directly, while City and
// Region editions delegate to City()/Region() and re-surface the
// country fields those records already carry (spec 4.7).
func (h *Handle) Country(address string) (*model.Country, error) {
	switch {
	case edition.IsCityFamily(h.info.Edition):
		city, err := h.City(address)
		if err != nil || city == nil {
			return nil, err
		}
		return &model.Country{
			Request:   city.Request,
			IP:        city.IP,
			CodeID:    city.CodeID,
			ISO2:      city.ISO2,
			ISO3:      city.ISO3,
			Name:      city.Name,
			Continent: city.Continent,
		}, nil
	case edition.IsRegionFamily(h.info.Edition):
		region, err := h.Region(address)
		if err != nil || region == nil {
			return nil, err
		}
		return &model.Country{
			Request:   region.Request,
			IP:        region.IP,
			CodeID:    region.CodeID,
			ISO2:      region.ISO2,
			ISO3:      region.ISO3,
			Name:      region.Name,
			Continent: region.Continent,
		}, nil
	case edition.IsCountryFamily(h.info.Edition):
		terminal, _, normalized, err := h.terminalFor(address)
		if err != nil {
			return nil, err
		}
		codeID := record.CodeID(terminal, h.info.SegmentBase)
		return record.Country(h.tables, address, normalized, codeID)
	default:
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
}

// Region looks up the region carried by a standalone region edition
// (REGION_REV0, REGION_REV1) or, delegating, by a City edition, whose
// records carry the same region_code/region_name/timezone fields
// (spec 4.7: "only defined for REGION_REV0/REV1 and the City
// editions"). It returns (nil, nil) when the address has no data.
func (h *Handle) Region(address string) (*model.Region, error) {
	switch {
	case edition.IsCityFamily(h.info.Edition):
		city, err := h.City(address)
		if err != nil || city == nil {
			return nil, err
		}
		return &model.Region{
			Request:    city.Request,
			IP:         city.IP,
			CodeID:     city.CodeID,
			ISO2:       city.ISO2,
			ISO3:       city.ISO3,
			Name:       city.Name,
			Continent:  city.Continent,
			RegionCode: city.RegionCode,
			RegionName: city.RegionName,
			TimeZone:   city.TimeZone,
		}, nil
	case edition.IsRegionFamily(h.info.Edition):
		terminal, _, normalized, err := h.terminalFor(address)
		if err != nil {
			return nil, err
		}
		if terminal == h.info.SegmentBase {
			return nil, nil
		}
		rev1 := h.info.Edition == edition.RegionRev1
		return record.Region(h.tables, address, normalized, terminal, h.info.SegmentBase, rev1)
	default:
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
}

// City looks up a city edition (CITY_REV0, CITY_REV1, and their _V6
// variants). It returns (nil, nil) when the address has no city data.
func (h *Handle) City(address string) (*model.City, error) {
	if !edition.IsCityFamily(h.info.Edition) {
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
	terminal, attrs, normalized, err := h.terminalFor(address)
	if err != nil {
		return nil, err
	}
	if terminal == h.info.SegmentBase {
		return nil, nil
	}
	abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
	rev1 := h.info.Edition == edition.CityRev1 || h.info.Edition == edition.CityRev1V6
	return record.City(h.src, h.tables, abs, address, normalized, rev1)
}

// ASN looks up an ASNUM/ASNUM_V6 edition. It returns (nil, nil) when
// the address has no ASN data.
func (h *Handle) ASN(address string) (*model.ASN, error) {
	if !edition.IsASNFamily(h.info.Edition) {
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
	terminal, attrs, _, err := h.terminalFor(address)
	if err != nil {
		return nil, err
	}
	if terminal == h.info.SegmentBase {
		return nil, nil
	}
	abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
	return record.ASN(h.src, abs)
}

// Organization looks up an ISP/Org-family edition: ISP, ORG (and
// _V6 variants), DOMAIN, REGISTRAR, USERTYPE, LOCATIONA,
// ACCURACYRADIUS, and the *CONF editions. It returns (nil, nil) when
// the address has no data.
func (h *Handle) Organization(address string) (*model.ISPOrg, error) {
	if !edition.IsISPOrgFamily(h.info.Edition) {
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
	terminal, attrs, _, err := h.terminalFor(address)
	if err != nil {
		return nil, err
	}
	if terminal == h.info.SegmentBase {
		return nil, nil
	}
	abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
	return record.ISPOrg(h.src, abs)
}

// ISP is an alias for Organization: the legacy ISP and Org editions
// share the same single-string record shape and decoder.
func (h *Handle) ISP(address string) (*model.ISPOrg, error) {
	return h.Organization(address)
}

// NetSpeed looks up either netspeed edition: the legacy numeric
// NETSPEED (country family) or the string-valued NETSPEED_REV1.
func (h *Handle) NetSpeed(address string) (*model.NetSpeed, error) {
	switch {
	case h.info.Edition == edition.NetSpeed:
		terminal, _, _, err := h.terminalFor(address)
		if err != nil {
			return nil, err
		}
		codeID := record.CodeID(terminal, h.info.SegmentBase)
		return record.NetSpeedLegacy(codeID), nil
	case edition.IsNetSpeedRev1(h.info.Edition):
		terminal, attrs, _, err := h.terminalFor(address)
		if err != nil {
			return nil, err
		}
		if terminal == h.info.SegmentBase {
			return nil, nil
		}
		abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
		return record.NetSpeedRev1(h.src, abs)
	default:
		return nil, fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
}

// Each performs a linear, database-order scan of a City database's
// data segment, decoding and yielding every packed City record once
// (spec 4.7's each(visit); only valid for CITY_REV0/CITY_REV1 and
// their _V6 variants). This is the data-segment walk, distinct from
// EachByIP's address-space trie walk: consecutive records here are
// neighbors in the file, not necessarily in IP order.
func (h *Handle) Each(visit func(city *model.City) error) error {
	if !edition.IsCityFamily(h.info.Edition) {
		return fmt.Errorf("%w: %s", dberrors.ErrInvalidForEdition, h.info.Edition)
	}
	rev1 := h.info.Edition == edition.CityRev1 || h.info.Edition == edition.CityRev1V6
	attrs := h.info.Attrs
	indexSize := int64(2*attrs.RecordLength) * h.info.SegmentBase
	size := h.src.Size()

	for offset := indexSize; offset < size; {
		c, n, err := record.ScanCity(h.src, h.tables, offset, rev1)
		if err != nil {
			return err
		}
		if n <= 0 {
			// No decodable record at offset (ran into the trailing
			// structure info, or a truncated tail): nothing further to
			// scan.
			break
		}
		if err := visit(c); err != nil {
			return err
		}
		offset += int64(n)
	}
	return nil
}

// EachByIP traverses the trie in ascending-IP order (spec 4.7's
// each_by_ip), invoking visit with the starting address of each leaf's
// range and its decoded result (the same type Country/Region/City/ASN/
// Organization/NetSpeed would return for that address, or nil if the
// leaf carries no data). Valid for any edition. EachByIP stops and
// returns visit's error as soon as it returns non-nil.
func (h *Handle) EachByIP(visit func(ip string, result interface{}) error) error {
	a := h.info.Attrs
	return trie.Walk(h.src, a.RecordLength, a.IPBits, h.info.SegmentBase, func(leaf trie.Leaf) error {
		ip := addrString(leaf.IP, a.IPBits)
		result, err := h.decodeTerminal(leaf.Terminal, a, ip, ip)
		if err != nil {
			return err
		}
		return visit(ip, result)
	})
}

// decodeTerminal decodes a raw trie terminal according to the database
// edition, without re-validating address family (the caller already
// has a terminal from a valid descent). The segmentBase-equality check
// runs first and uniformly across every family, since spec 4.7's
// each_by_ip defines it as "an offset equal to segment_base yields a
// null record" regardless of which decoder would otherwise apply.
func (h *Handle) decodeTerminal(terminal int64, attrs edition.Attrs, request, ip string) (interface{}, error) {
	switch {
	case terminal == h.info.SegmentBase:
		return nil, nil
	case edition.IsCountryFamily(h.info.Edition):
		codeID := record.CodeID(terminal, h.info.SegmentBase)
		if h.info.Edition == edition.NetSpeed {
			return record.NetSpeedLegacy(codeID), nil
		}
		return record.Country(h.tables, request, ip, codeID)
	case edition.IsRegionFamily(h.info.Edition):
		rev1 := h.info.Edition == edition.RegionRev1
		return record.Region(h.tables, request, ip, terminal, h.info.SegmentBase, rev1)
	case edition.IsCityFamily(h.info.Edition):
		abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
		rev1 := h.info.Edition == edition.CityRev1 || h.info.Edition == edition.CityRev1V6
		return record.City(h.src, h.tables, abs, request, ip, rev1)
	case edition.IsASNFamily(h.info.Edition):
		abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
		return record.ASN(h.src, abs)
	case edition.IsISPOrgFamily(h.info.Edition):
		abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
		return record.ISPOrg(h.src, abs)
	case edition.IsNetSpeedRev1(h.info.Edition):
		abs := record.AbsOffset(terminal, h.info.SegmentBase, attrs.RecordLength)
		return record.NetSpeedRev1(h.src, abs)
	default:
		return nil, fmt.Errorf("%w: %s", dberrors.ErrUnsupportedEdition, h.info.Edition)
	}
}

// addrString renders a trie leaf's address prefix as dotted-quad (32
// bits) or colon-hex (128 bits).
func addrString(addr bincodec.Addr, ipBits int) string {
	if ipBits == 32 {
		v := uint32(addr.Lo)
		return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	b := make([]byte, 16)
	for i := 0; i < 8; i++ {
		b[i] = byte(addr.Hi >> uint(8*(7-i)))
		b[8+i] = byte(addr.Lo >> uint(8*(7-i)))
	}
	return fmt.Sprintf("%x:%x:%x:%x:%x:%x:%x:%x",
		uint16(b[0])<<8|uint16(b[1]), uint16(b[2])<<8|uint16(b[3]),
		uint16(b[4])<<8|uint16(b[5]), uint16(b[6])<<8|uint16(b[7]),
		uint16(b[8])<<8|uint16(b[9]), uint16(b[10])<<8|uint16(b[11]),
		uint16(b[12])<<8|uint16(b[13]), uint16(b[14])<<8|uint16(b[15]))
}
