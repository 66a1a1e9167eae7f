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

// Package logx is the thin logging seam used by header detection. It
// is a minimal subset of logrus.FieldLogger so callers
// can plug in their own logrus instance (or anything else satisfying
// the interface) without this module importing logrus at every call
// site.
package logx

import (
	"github.com/sirupsen/logrus"
)

// Logger is the subset of logrus.FieldLogger this module calls.
type Logger interface {
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
}

// Default returns the package-level logrus logger, used when callers
// do not supply their own via Options.Logger.
func Default() Logger {
	return logrus.StandardLogger()
}
