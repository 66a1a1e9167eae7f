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

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"
)

// LoadOptions builds an Options from environment variables namespaced
// under prefix (e.g. prefix "legacygeo" reads LEGACYGEO_PRELOAD,
// LEGACYGEO_LOCALIPALIAS and LEGACYGEO_RESOLVE_HOSTNAMES); no config
// file is read. When resolve_hostnames is true, Resolver is set to a
// net.DefaultResolver lookup returning the first address; otherwise it
// is left nil. Logger is always left nil (the default).
func LoadOptions(prefix string) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.AutomaticEnv()
	v.SetDefault("preload", false)
	v.SetDefault("localipalias", "")

	opt := Options{
		Preload:      v.GetBool("preload"),
		LocalIPAlias: v.GetString("localipalias"),
	}
	if v.GetBool("resolve_hostnames") {
		opt.Resolver = func(host string) (string, error) {
			ips, err := net.DefaultResolver.LookupHost(context.Background(), host)
			if err != nil {
				return "", err
			}
			if len(ips) == 0 {
				return "", fmt.Errorf("legacygeo: no addresses found for %s", host)
			}
			return ips[0], nil
		}
	}
	return opt, nil
}
