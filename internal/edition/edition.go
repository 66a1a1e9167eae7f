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

// Package edition is the closed tagged enumeration of GeoIP Legacy
// database editions (spec section 4.3 / 6.1), with the IP width,
// record length, and segment-base family each edition carries.
package edition

// Edition identifies the schema of a GeoIP Legacy database, detected
// from the trailing structure marker's edition byte.
type Edition uint8

const (
	Country Edition = iota + 1
	CityRev1
	RegionRev1
	ISP
	Org
	CityRev0
	RegionRev0
	Proxy
	ASNum
	NetSpeed
	Domain
	CountryV6
	LocationA
	AccuracyRadius
	LargeCountry
	LargeCountryV6
	ASNumV6
	ISPV6
	OrgV6
	DomainV6
	LocationAV6
	Registrar
	RegistrarV6
	UserType
	UserTypeV6
	CityRev1V6
	CityRev0V6
	NetSpeedRev1
	NetSpeedRev1V6
	CountryConf
	CityConf
	RegionConf
	PostalConf
	AccuracyRadiusV6
)

// rawByte maps the on-disk edition byte (after the >=106 legacy
// normalization described in spec 4.4) to an Edition. Built from the
// bit-exact table in spec section 6.1.
var rawByte = map[uint8]Edition{
	1:  Country,
	2:  CityRev1,
	3:  RegionRev1,
	4:  ISP,
	5:  Org,
	6:  CityRev0,
	7:  RegionRev0,
	8:  Proxy,
	9:  ASNum,
	10: NetSpeed,
	11: Domain,
	12: CountryV6,
	13: LocationA,
	14: AccuracyRadius,
	17: LargeCountry,
	18: LargeCountryV6,
	21: ASNumV6,
	22: ISPV6,
	23: OrgV6,
	24: DomainV6,
	25: LocationAV6,
	26: Registrar,
	27: RegistrarV6,
	28: UserType,
	29: UserTypeV6,
	30: CityRev1V6,
	31: CityRev0V6,
	32: NetSpeedRev1,
	33: NetSpeedRev1V6,
	34: CountryConf,
	35: CityConf,
	36: RegionConf,
	37: PostalConf,
	38: AccuracyRadiusV6,
}

// FromByte normalizes and resolves a raw trailing-marker edition byte.
// Per spec 4.4, bytes >= 106 have 105 subtracted before lookup.
func FromByte(raw uint8) (Edition, bool) {
	if raw >= 106 {
		raw -= 105
	}
	e, ok := rawByte[raw]
	return e, ok
}

// SegmentFamily groups editions that share a segment-base computation
// rule (spec 4.3).
type SegmentFamily int

const (
	// CountryFamily uses the fixed COUNTRY_BEGIN constant.
	CountryFamily SegmentFamily = iota
	// RegionRev0Family uses the fixed STATE_BEGIN_REV0 constant.
	RegionRev0Family
	// RegionRev1Family uses the fixed STATE_BEGIN_REV1 constant.
	RegionRev1Family
	// VarSegFamily reads segment_base from the 3 bytes following the
	// structure sentinel.
	VarSegFamily
)

// Fixed segment-base constants from spec 4.3 / 6.1.
const (
	CountryBegin    = 16_776_960
	StateBeginRev0  = 16_700_000
	StateBeginRev1  = 16_000_000
)

// Attrs describes the static, edition-dependent parameters needed to
// navigate the trie and locate the data region.
type Attrs struct {
	IPBits       int
	RecordLength int
	Family       SegmentFamily
}

// attrs is built directly from spec 4.3's family/record-length/IP-width
// rules, one row per edition.
var attrs = map[Edition]Attrs{
	Country:          {32, 3, CountryFamily},
	Proxy:            {128, 3, CountryFamily},
	CountryV6:        {128, 3, CountryFamily},
	NetSpeed:         {32, 3, CountryFamily},
	RegionRev0:       {32, 3, RegionRev0Family},
	RegionRev1:       {32, 3, RegionRev1Family},
	CityRev0:         {32, 3, VarSegFamily},
	CityRev1:         {32, 3, VarSegFamily},
	CityRev0V6:       {128, 3, VarSegFamily},
	CityRev1V6:       {128, 3, VarSegFamily},
	ASNum:            {32, 3, VarSegFamily},
	ASNumV6:          {128, 3, VarSegFamily},
	NetSpeedRev1:     {32, 3, VarSegFamily},
	NetSpeedRev1V6:   {128, 3, VarSegFamily},
	Domain:           {32, 4, VarSegFamily},
	DomainV6:         {128, 4, VarSegFamily},
	ISP:              {32, 4, VarSegFamily},
	ISPV6:            {128, 4, VarSegFamily},
	Org:              {32, 4, VarSegFamily},
	OrgV6:            {128, 4, VarSegFamily},
	Registrar:        {32, 4, VarSegFamily},
	RegistrarV6:      {128, 4, VarSegFamily},
	UserType:         {32, 4, VarSegFamily},
	UserTypeV6:       {128, 4, VarSegFamily},
	LocationA:        {32, 4, VarSegFamily},
	LocationAV6:      {128, 4, VarSegFamily},
	AccuracyRadius:   {32, 4, VarSegFamily},
	AccuracyRadiusV6: {128, 4, VarSegFamily},
	LargeCountry:     {32, 4, CountryFamily},
	LargeCountryV6:   {128, 4, CountryFamily},
	CountryConf:      {32, 4, VarSegFamily},
	CityConf:         {32, 4, VarSegFamily},
	RegionConf:       {32, 4, VarSegFamily},
	PostalConf:       {32, 4, VarSegFamily},
}

// Attrs returns the static parameters for e. The bool is false for an
// edition byte that decoded but has no implementation entry (should
// not occur given the table above is exhaustive over FromByte's range).
func (e Edition) Attrs() (Attrs, bool) {
	a, ok := attrs[e]
	return a, ok
}

// String names the edition for logging and error messages.
func (e Edition) String() string {
	switch e {
	case Country:
		return "COUNTRY"
	case CityRev1:
		return "CITY_REV1"
	case RegionRev1:
		return "REGION_REV1"
	case ISP:
		return "ISP"
	case Org:
		return "ORG"
	case CityRev0:
		return "CITY_REV0"
	case RegionRev0:
		return "REGION_REV0"
	case Proxy:
		return "PROXY"
	case ASNum:
		return "ASNUM"
	case NetSpeed:
		return "NETSPEED"
	case Domain:
		return "DOMAIN"
	case CountryV6:
		return "COUNTRY_V6"
	case LocationA:
		return "LOCATIONA"
	case AccuracyRadius:
		return "ACCURACYRADIUS"
	case LargeCountry:
		return "LARGE_COUNTRY"
	case LargeCountryV6:
		return "LARGE_COUNTRY_V6"
	case ASNumV6:
		return "ASNUM_V6"
	case ISPV6:
		return "ISP_V6"
	case OrgV6:
		return "ORG_V6"
	case DomainV6:
		return "DOMAIN_V6"
	case LocationAV6:
		return "LOCATIONA_V6"
	case Registrar:
		return "REGISTRAR"
	case RegistrarV6:
		return "REGISTRAR_V6"
	case UserType:
		return "USERTYPE"
	case UserTypeV6:
		return "USERTYPE_V6"
	case CityRev1V6:
		return "CITY_REV1_V6"
	case CityRev0V6:
		return "CITY_REV0_V6"
	case NetSpeedRev1:
		return "NETSPEED_REV1"
	case NetSpeedRev1V6:
		return "NETSPEED_REV1_V6"
	case CountryConf:
		return "COUNTRYCONF"
	case CityConf:
		return "CITYCONF"
	case RegionConf:
		return "REGIONCONF"
	case PostalConf:
		return "POSTALCONF"
	case AccuracyRadiusV6:
		return "ACCURACYRADIUS_V6"
	default:
		return "UNKNOWN"
	}
}

// IsCityFamily reports whether e is one of the four city editions.
func IsCityFamily(e Edition) bool {
	switch e {
	case CityRev0, CityRev1, CityRev0V6, CityRev1V6:
		return true
	}
	return false
}

// IsRegionFamily reports whether e is a standalone region edition.
func IsRegionFamily(e Edition) bool {
	return e == RegionRev0 || e == RegionRev1
}

// IsASNFamily reports whether e is an ASN edition.
func IsASNFamily(e Edition) bool {
	return e == ASNum || e == ASNumV6
}

// IsISPOrgFamily reports whether e is routed through the ISP/org
// decoder, including the *CONF editions per spec 9's resolved open
// question.
func IsISPOrgFamily(e Edition) bool {
	switch e {
	case ISP, Org, Domain, Registrar, UserType, LocationA, AccuracyRadius,
		ISPV6, OrgV6, DomainV6, RegistrarV6, UserTypeV6, LocationAV6, AccuracyRadiusV6,
		CountryConf, CityConf, RegionConf, PostalConf:
		return true
	}
	return false
}

// IsCountryFamily reports whether e is decoded by the country-style
// decoder (including NETSPEED legacy and LARGE_COUNTRY, which share its
// code_id-indexed-lookup shape).
func IsCountryFamily(e Edition) bool {
	switch e {
	case Country, Proxy, CountryV6, NetSpeed, LargeCountry, LargeCountryV6:
		return true
	}
	return false
}

// IsNetSpeedRev1 reports whether e is the string-valued netspeed
// edition, as opposed to the numeric legacy NetSpeed.
func IsNetSpeedRev1(e Edition) bool {
	return e == NetSpeedRev1 || e == NetSpeedRev1V6
}
