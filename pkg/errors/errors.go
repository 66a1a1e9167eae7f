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

// Package errors defines the sentinel error values returned by this
// module. Callers match against these with errors.Is; the concrete
// error returned usually wraps one of these with extra context via
// fmt.Errorf("...: %w", ...).
package errors

import (
	"errors"
)

var (
	// Database / format

	ErrUnsupportedEdition = errors.New("unsupported database edition")
	ErrCorruptDatabase    = errors.New("corrupt database")
	ErrInvalidForEdition  = errors.New("operation not valid for this database edition")

	// Address parsing

	ErrBadAddress = errors.New("invalid IP address or hostname")

	// I/O

	ErrIO = errors.New("database I/O error")
)
