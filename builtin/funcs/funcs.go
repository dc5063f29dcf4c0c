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

package funcs

import (
	"sync"

	"github.com/rulego/rowparser/utils/cast"
	"github.com/rulego/rowparser/utils/mask"
)

// TemplateFuncMap 内置expr表达式和模板函数
var TemplateFuncMap funcMap

// UdfMap 内置Js用户函数
var UdfMap funcMap

func init() {
	builtin := map[string]any{
		"hideMobile": func(mobile string, bounds ...int) string {
			start, end := mask.DefaultMobileStart, mask.DefaultMobileEnd
			if len(bounds) > 0 {
				start = bounds[0]
			}
			if len(bounds) > 1 {
				end = bounds[1]
			}
			return mask.HideMobile(mobile, start, end)
		},
		"hideName": func(name string, mode ...string) string {
			m := mask.NameModeCenter
			if len(mode) > 0 {
				m = mode[0]
			}
			return mask.HideName(name, m)
		},
		"hideQq":   mask.HideQq,
		"intval":   cast.IntVal,
		"floatval": cast.FloatVal,
		"strval":   cast.StrVal,
	}
	TemplateFuncMap.RegisterAll(builtin)
	UdfMap.RegisterAll(builtin)
}

type funcMap struct {
	v map[string]any
	sync.RWMutex
}

func (x *funcMap) Register(name string, value any) {
	x.Lock()
	defer x.Unlock()
	if x.v == nil {
		x.v = make(map[string]any)
	}
	x.v[name] = value
}

func (x *funcMap) RegisterAll(values map[string]any) {
	x.Lock()
	defer x.Unlock()
	if x.v == nil {
		x.v = make(map[string]any)
	}
	for k, v := range values {
		x.v[k] = v
	}
}

func (x *funcMap) UnRegister(name string) {
	x.Lock()
	defer x.Unlock()
	if x.v != nil {
		delete(x.v, name)
	}
}

func (x *funcMap) Get(name string) (any, bool) {
	x.RLock()
	defer x.RUnlock()
	if x.v != nil {
		f, ok := x.v[name]
		return f, ok
	}
	return nil, false
}

// GetAll returns a copy of the registered functions.
func (x *funcMap) GetAll() map[string]any {
	x.RLock()
	defer x.RUnlock()
	if x.v == nil {
		return nil
	}
	cp := make(map[string]any, len(x.v))
	for k, v := range x.v {
		cp[k] = v
	}
	return cp
}

// MergeInto copies the registered functions into env without overwriting existing keys.
func (x *funcMap) MergeInto(env map[string]any) map[string]any {
	x.RLock()
	defer x.RUnlock()
	if env == nil {
		env = make(map[string]any, len(x.v))
	}
	for k, v := range x.v {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	return env
}

func (x *funcMap) Names() []string {
	x.RLock()
	defer x.RUnlock()
	var keys = make([]string, 0, len(x.v))
	for k := range x.v {
		keys = append(keys, k)
	}
	return keys
}
