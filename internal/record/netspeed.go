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
	"github.com/sjzar/legacygeo/internal/source"
	"github.com/sjzar/legacygeo/model"
)

// maxNetSpeedRecordLength bounds a NETSPEED_REV1 string record (spec
// section 4.6).
const maxNetSpeedRecordLength = 20

// NetSpeedRev1 decodes a NETSPEED_REV1 terminal at absOffset into its
// label string ("Dialup", "Cable", "Corporate", ...). It returns (nil,
// nil) if the record is absent.
func NetSpeedRev1(src source.Source, absOffset int64) (*model.NetSpeed, error) {
	raw, err := source.ReadAtMax(src, absOffset, maxNetSpeedRecordLength)
	if err != nil {
		return nil, err
	}
	payload, found := cString(raw)
	if !found {
		return nil, nil
	}
	label, err := iso88591ToUTF8(payload)
	if err != nil {
		return nil, err
	}
	if label == "" {
		return nil, nil
	}
	return &model.NetSpeed{Label: label}, nil
}
