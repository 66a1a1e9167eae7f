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

import "github.com/sjzar/legacygeo/internal/logx"

// Resolver resolves a hostname to a single address literal, used by
// Handle when a query address fails to parse as an IP. Open never
// installs one by itself; the only implementation in this module is the
// net.DefaultResolver-based one LoadOptions sets when resolve_hostnames
// is enabled (it returns the first address LookupHost finds).
type Resolver func(host string) (string, error)

// Options configures Open.
type Options struct {
	// Preload loads the whole database file into memory up front
	// instead of reading positionally from disk on every query.
	Preload bool

	// LocalIPAlias replaces any recognized loopback spelling (127.0.0.1,
	// ::1, localhost, ...) before parsing. Empty means "::1" still maps
	// to "0.0.0.0" but other loopback spellings pass through unchanged.
	LocalIPAlias string

	// Resolver resolves hostnames passed to query methods. Nil disables
	// hostname resolution; queries with a non-IP address then fail with
	// ErrBadAddress.
	Resolver Resolver

	// Logger receives the warning header detection emits when it finds
	// no structure marker. Defaults to logx.Default() (the logrus
	// standard logger) when nil.
	Logger logx.Logger
}
