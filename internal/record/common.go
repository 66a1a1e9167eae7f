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

// AbsOffset computes the absolute byte offset of a non-country-style
// record: the index region (recordLength bytes per pointer half, two
// halves per node, segmentBase nodes) followed by data_offset =
// terminal - segmentBase, per spec section 4.6.
func AbsOffset(terminal, segmentBase int64, recordLength int) int64 {
	indexSize := int64(2*recordLength) * segmentBase
	dataOffset := terminal - segmentBase
	return indexSize + dataOffset
}
