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

package maps

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/cast"
)

// Getter is any keyed container, e.g. *types.Record.
// A nil *types.Record reports every key as missing.
type Getter interface {
	Get(key string) (any, bool)
}

// Map2Struct Decode takes an input structure and uses reflection to translate it to
// the output structure. output must be a pointer to a map or struct.
// Strings are converted to time.Duration and weakly typed input such as "3" for an int field is accepted.
func Map2Struct(input interface{}, output interface{}) error {
	config := &mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           output,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Lookup returns the value of one key of a map or Getter.
func Lookup(input interface{}, key string) (interface{}, bool) {
	switch m := input.(type) {
	case Getter:
		return m.Get(key)
	case map[string]interface{}:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	default:
		return nil, false
	}
}

// Get returns the value of a dotted field path such as address.city, nil when any segment is missing.
func Get(input interface{}, fieldName string) interface{} {
	if fieldName == "" {
		return nil
	}
	current := input
	for _, segment := range strings.Split(fieldName, types.PathSeparator) {
		if segment == "" {
			return nil
		}
		v, ok := Lookup(current, segment)
		if !ok {
			return nil
		}
		current = v
	}
	return current
}

// GetValue returns input[key], or def when the key is absent or nil, coerced by trans (see cast.Coerce).
func GetValue(input interface{}, key string, def interface{}, trans string) interface{} {
	v, ok := Lookup(input, key)
	if !ok || v == nil {
		v = def
	}
	return cast.Coerce(v, trans)
}

// GetValueRecursively is GetValue for dotted keys.
// A missing or nil parent segment returns def without coercion.
func GetValueRecursively(input interface{}, key string, def interface{}, trans string) interface{} {
	parent, child, nested := strings.Cut(key, types.PathSeparator)
	if !nested {
		return GetValue(input, key, def, trans)
	}
	v, ok := Lookup(input, parent)
	if !ok || v == nil {
		return def
	}
	return GetValueRecursively(v, child, def, trans)
}
