/*
 * Copyright 2025 The RuleGo Authors.
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

package engine

import (
	"github.com/rulego/rowparser/utils/cast"
	"github.com/rulego/rowparser/utils/maps"
)

// GetValue returns row[key], or def when the key is absent or nil.
// row is a *types.Record or a plain map. The result is coerced when trans is
// types.TransInt, types.TransString or types.TransFloat; any other token
// leaves it untouched.
//
//	GetValue(types.RecordOf("a", 1), "b", 0, "") // 0
//	GetValue(types.RecordOf("a", "12px"), "a", nil, types.TransInt) // 12
func GetValue(row any, key string, def any, trans string) any {
	return maps.GetValue(row, key, def, trans)
}

// GetValueRecursively is GetValue for dotted keys such as user.address.city.
// When a parent segment is missing or nil def is returned without coercion.
func GetValueRecursively(row any, key string, def any, trans string) any {
	return maps.GetValueRecursively(row, key, def, trans)
}

// Coerce converts v according to trans.
func Coerce(v any, trans string) any {
	return cast.Coerce(v, trans)
}
