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

/* GeoIP Legacy Format
	+--------------------------------+
	|           Trie Region           |
	|  (segment_base nodes, each two   |
	|   record_length-byte pointers)  |
	+--------------------------------+
	|           Data Region           |
	|  (edition-specific records,     |
	|   referenced by trie terminals) |
	+--------------------------------+
	|        Structure Info           |
	|  0xFF 0xFF 0xFF, edition byte,  |
	|  [segment_base (3 byte LE)]     |
	+--------------------------------+

* All multi-byte integers are little-endian unless noted otherwise
* A terminal pointer >= segment_base is not another trie node: it
  addresses the data region as (pointer - segment_base)
* Structure Info is found by scanning backward from EOF one byte at
  a time, looking for the 0xFF 0xFF 0xFF sentinel; country-family
  editions carry a fixed segment_base instead of encoding one

Trie Region (single node)
	+--------------------------------+--------------------------------+
	|   Left Pointer (record_length) |  Right Pointer (record_length) |
	+--------------------------------+--------------------------------+
* record_length is 3 bytes for most editions, 4 for the ISP/Org/Domain
  family and their _V6 variants
* Descent examines the query address one bit at a time, most
  significant first, choosing left (bit 0) or right (bit 1)

Data Region (country-style families: COUNTRY, PROXY, COUNTRY_V6,
NETSPEED, LARGE_COUNTRY, LARGE_COUNTRY_V6)
* No bytes are read here: the terminal pointer minus segment_base IS
  the code_id, an index into the reference country tables

Data Region (REGION_REV0 / REGION_REV1)
* No bytes are read here either: code_id and region_code are both
  derived arithmetically from terminal - segment_base

Data Region (CITY_REV0 / CITY_REV1 and _V6 variants, up to 50 bytes)
	+--------+------------------+------------------+------------------+
	| country|  region_code\0   |      city\0      |   postal_code\0  |
	+--------+------------------+------------------+------------------+
	|  latitude (3byte LE)  |  longitude (3byte LE) | dma/area (3byte) |
	+-----------------------+------------------------+-----------------+
* latitude/longitude decode as le_u(3 bytes)/10000 - 180
* dma_code/area_code only present for CITY_REV1 + country "US"
* strings are ISO-8859-1 on disk, re-encoded to UTF-8

Data Region (ASNUM / ASNUM_V6, up to 300 bytes)
	+--------------------------------+
	|      "AS<number> <name>\0"      |
	+--------------------------------+

Data Region (ISP/Org family, up to 300 bytes)
	+--------------------------------+
	|         name\0 or "*\0"         |
	+--------------------------------+
* a leading '*' means no data for this code_id

Data Region (NETSPEED_REV1, up to 20 bytes)
	+--------------------------------+
	|            label\0              |
	+--------------------------------+
*/
