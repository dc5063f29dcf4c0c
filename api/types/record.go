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

package types

import (
	"fmt"
	"reflect"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Record is one data row: an ordered mapping from key to value.
// Setting an existing key keeps its position, new keys are appended.
type Record struct {
	*orderedmap.OrderedMap[string, any]
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{OrderedMap: orderedmap.New[string, any]()}
}

// RecordOf builds a record from alternating key/value arguments.
// Example: RecordOf("first", "A", "last", "B")
func RecordOf(kv ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return r
}

// RecordFromMap builds a record from a plain map. Keys are sorted since maps carry no order.
func RecordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := NewRecord()
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Get returns the value of key. A zero Record has no keys.
func (r *Record) Get(key string) (any, bool) {
	if r == nil || r.OrderedMap == nil {
		return nil, false
	}
	return r.OrderedMap.Get(key)
}

// Set sets key, keeping the position of an existing key.
// The map of a zero Record is created on first use.
func (r *Record) Set(key string, value any) (any, bool) {
	if r.OrderedMap == nil {
		r.OrderedMap = orderedmap.New[string, any]()
	}
	return r.OrderedMap.Set(key, value)
}

// Delete removes key and returns its previous value.
func (r *Record) Delete(key string) (any, bool) {
	if r == nil || r.OrderedMap == nil {
		return nil, false
	}
	return r.OrderedMap.Delete(key)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil || r.OrderedMap == nil {
		return 0
	}
	return r.OrderedMap.Len()
}

// Keys returns the keys in order.
func (r *Record) Keys() []string {
	if r == nil || r.OrderedMap == nil {
		return nil
	}
	keys := make([]string, 0, r.Len())
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Has reports whether the key is present, even with a nil value.
func (r *Record) Has(key string) bool {
	if r == nil || r.OrderedMap == nil {
		return false
	}
	_, ok := r.Get(key)
	return ok
}

// Value returns the value of key, nil when absent.
func (r *Record) Value(key string) any {
	if r == nil || r.OrderedMap == nil {
		return nil
	}
	v, _ := r.Get(key)
	return v
}

// Put sets key and returns the record for chaining.
func (r *Record) Put(key string, value any) *Record {
	r.Set(key, value)
	return r
}

// Clone copies the record. Nested values are shared.
func (r *Record) Clone() *Record {
	c := NewRecord()
	if r == nil || r.OrderedMap == nil {
		return c
	}
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		c.Set(pair.Key, pair.Value)
	}
	return c
}

// ToMap converts the record, and nested records, to plain maps.
// Script engines use it as their environment.
func (r *Record) ToMap() map[string]any {
	if r == nil || r.OrderedMap == nil {
		return map[string]any{}
	}
	m := make(map[string]any, r.Len())
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = plainValue(pair.Value)
	}
	return m
}

func plainValue(v any) any {
	switch x := v.(type) {
	case *Record:
		return x.ToMap()
	case []*Record:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = item.ToMap()
		}
		return items
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = plainValue(item)
		}
		return items
	default:
		return v
	}
}

// Equal compares keys, order and values. Nested records compare by content.
func (r *Record) Equal(o *Record) bool {
	rk, ok := r.Keys(), o.Keys()
	if len(rk) != len(ok) {
		return false
	}
	for i := range rk {
		if rk[i] != ok[i] {
			return false
		}
		if !reflect.DeepEqual(plainValue(r.Value(rk[i])), plainValue(o.Value(ok[i]))) {
			return false
		}
	}
	return true
}

func (r *Record) String() string {
	if r == nil || r.OrderedMap == nil {
		return "{}"
	}
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%v", r.ToMap())
	}
	return string(b)
}

// MarshalJSON encodes the record as a json object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil || r.OrderedMap == nil {
		return []byte("{}"), nil
	}
	return r.OrderedMap.MarshalJSON()
}

// UnmarshalJSON decodes a json object keeping the key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r.OrderedMap == nil {
		r.OrderedMap = orderedmap.New[string, any]()
	}
	return r.OrderedMap.UnmarshalJSON(data)
}

// UnmarshalYAML decodes a yaml mapping keeping the key order.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	if r.OrderedMap == nil {
		r.OrderedMap = orderedmap.New[string, any]()
	}
	return r.OrderedMap.UnmarshalYAML(value)
}

// MarshalYAML encodes the record as an ordered yaml mapping.
func (r *Record) MarshalYAML() (interface{}, error) {
	if r == nil || r.OrderedMap == nil {
		return map[string]any{}, nil
	}
	return r.OrderedMap.MarshalYAML()
}
