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

// Package model holds the result types a query returns, exactly as
// described in spec section 3: Country, Region, City, ASN, ISPOrg, and
// NetSpeed. Each is produced freshly per query and owned by the caller.
package model

// Country is the result of a country-family lookup.
type Country struct {
	Request   string
	IP        string
	CodeID    int
	ISO2      string
	ISO3      string
	Name      string
	Continent string
}

// Region is the result of a standalone region lookup, or of a City
// lookup's Region() delegation (spec section 4.7).
type Region struct {
	Request    string
	IP         string
	CodeID     int
	ISO2       string
	ISO3       string
	Name       string
	Continent  string
	RegionCode string
	RegionName string
	TimeZone   string
}

// City is the result of a city lookup. DMACode and AreaCode are only
// populated for CITY_REV1 US addresses (spec section 4.6). CodeID is
// the raw country-table index read from the record, carried along so
// Country()/Region() can delegate to City() without a second decode.
type City struct {
	Request    string
	IP         string
	CodeID     int
	ISO2       string
	ISO3       string
	Name       string
	Continent  string
	RegionCode string
	RegionName string
	City       string
	Postal     string
	Latitude   float64
	Longitude  float64
	DMACode    *int
	AreaCode   *int
	TimeZone   string
}

// ASN is the result of an ASNUM/ASNUM_V6 lookup.
type ASN struct {
	Number      string
	Description string
}

// ISPOrg is the result of an ISP/Org-family lookup (also covers DOMAIN,
// REGISTRAR, USERTYPE, LOCATIONA, ACCURACYRADIUS and the *CONF editions,
// per spec section 4.6/9).
type ISPOrg struct {
	Name string
}

// NetSpeed is the result of a NETSPEED/NETSPEED_REV1 lookup: legacy
// editions populate Numeric (0-3), rev1 editions populate Label.
type NetSpeed struct {
	Numeric *int
	Label   string
}

// Legacy netspeed numeric classes (spec section 3).
const (
	NetSpeedUnknown = 0
	NetSpeedDialup  = 1
	NetSpeedCable   = 2
	NetSpeedCorp    = 3
)
