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
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// iso88591ToUTF8 transcodes raw on-disk bytes (ISO-8859-1, per spec
// invariant 5) to a UTF-8 Go string.
func iso88591ToUTF8(raw []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// cString splits raw at the first NUL byte, returning the bytes before
// it (the C string payload) and whether a NUL was found at all.
func cString(raw []byte) ([]byte, bool) {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		return raw[:i], true
	}
	return raw, false
}
