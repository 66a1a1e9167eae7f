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
	"strings"

	"github.com/sjzar/legacygeo/internal/source"
	"github.com/sjzar/legacygeo/model"
)

// maxOrgRecordLength is MAX_ORG_RECORD_LENGTH from spec section 4.6. It
// covers the whole ISP/Org family: ISP, ORG, ORG_V6, DOMAIN, REGISTRAR,
// USERTYPE, LOCATIONA, ACCURACYRADIUS, and the *CONF editions, which
// all share the same single-string-record shape (spec section 9).
const maxOrgRecordLength = 300

// ISPOrg decodes an ISP/Org-family terminal at absOffset. A leading '*'
// marks the record absent, matching how the legacy databases encode
// "no ISP/Org data for this code_id" in-band rather than by pointing at
// segmentBase.
func ISPOrg(src source.Source, absOffset int64) (*model.ISPOrg, error) {
	raw, err := source.ReadAtMax(src, absOffset, maxOrgRecordLength)
	if err != nil {
		return nil, err
	}
	payload, found := cString(raw)
	if !found {
		return nil, nil
	}
	if len(payload) > 0 && payload[0] == '*' {
		return nil, nil
	}
	text, err := iso88591ToUTF8(payload)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	return &model.ISPOrg{Name: text}, nil
}
