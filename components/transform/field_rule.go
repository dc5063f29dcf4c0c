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

package transform

import (
	"errors"
	"strings"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/maps"
)

// ErrPathEmpty is returned by Init when no field path is configured.
var ErrPathEmpty = errors.New("path can not be empty")

func init() {
	Registry.Add(&FieldRule{})
}

// FieldRuleConfiguration 规则配置
type FieldRuleConfiguration struct {
	// Path 字段路径，嵌套字段使用`.`分隔，例如: address.city
	Path string
	// Default 字段不存在或者为空时的默认值
	Default interface{}
	// Trans 类型转换: intval, strval, floatval
	Trans string
}

// FieldRule 复制记录中的字段，支持嵌套路径、默认值和类型转换
type FieldRule struct {
	Config FieldRuleConfiguration
}

// Type 组件类型
func (x *FieldRule) Type() string {
	return "field"
}

func (x *FieldRule) New() types.RuleComponent {
	return &FieldRule{}
}

// Init 初始化
func (x *FieldRule) Init(_ types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	x.Config.Path = strings.TrimSpace(x.Config.Path)
	if x.Config.Path == "" {
		return ErrPathEmpty
	}
	return nil
}

func (x *FieldRule) Compute(row *types.Record) (any, error) {
	return maps.GetValueRecursively(row, x.Config.Path, x.Config.Default, x.Config.Trans), nil
}
