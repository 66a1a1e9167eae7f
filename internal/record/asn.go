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
	"regexp"

	"github.com/sjzar/legacygeo/internal/source"
	"github.com/sjzar/legacygeo/model"
)

// maxASNRecordLength is MAX_ASN_RECORD_LENGTH from spec section 4.6.
const maxASNRecordLength = 300

var asnPattern = regexp.MustCompile(`^(AS\d+)(?:\s(.*))?$`)

// ASN decodes an ASNUM/ASNUM_V6 terminal at absOffset. It returns (nil,
// nil) if the record is absent (no NUL found within the clamped read).
func ASN(src source.Source, absOffset int64) (*model.ASN, error) {
	raw, err := source.ReadAtMax(src, absOffset, maxASNRecordLength)
	if err != nil {
		return nil, err
	}
	payload, found := cString(raw)
	if !found {
		return nil, nil
	}
	text, err := iso88591ToUTF8(payload)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	if m := asnPattern.FindStringSubmatch(text); m != nil {
		return &model.ASN{Number: m[1], Description: m[2]}, nil
	}
	return &model.ASN{Description: text}, nil
}
