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

// Package transform provides the built-in rule components. A rule component
// computes one output field from a record and is declared in a parser
// definition by its type.
//
// Package transform 提供内置的规则组件，每个组件根据一行记录计算一个字段。
//
// Available Rule Components:
// 可用的规则组件：
//
//   - ExprRule (expr): expr-lang expression over the record fields
//     基于 expr 表达式计算字段
//   - JsRule (js): JavaScript function body receiving the record as `row`
//     基于 JavaScript 脚本计算字段
//   - TemplateRule (template): `${...}` string template
//     字符串模板
//   - FieldRule (field): nested field lookup with default and coercion
//     嵌套字段取值，支持默认值和类型转换
//   - MaskRule (mask): masks a mobile number, a name or a QQ number
//     手机号、姓名、QQ号脱敏
//
// Registration:
// 注册：
//
//	func init() {
//		Registry.Add(&ExprRule{})
//		Registry.Add(&JsRule{})
//		Registry.Add(&TemplateRule{})
//		Registry.Add(&FieldRule{})
//		Registry.Add(&MaskRule{})
//	}
//
// Usage Examples:
// 使用示例：
//
//	{"name": "full_name", "type": "expr", "configuration": {"expr": "first + ' ' + last"}}
//	{"name": "age_next", "type": "js", "configuration": {"jsScript": "return row.age + 1;"}}
//	{"name": "label", "type": "template", "configuration": {"template": "${first}-${id}"}}
//	{"name": "city", "type": "field", "configuration": {"path": "address.city", "default": "unknown"}}
//	{"name": "mobile", "type": "mask", "configuration": {"field": "mobile", "kind": "mobile"}}
package transform

import "github.com/rulego/rowparser/api/types"

// Registry collects the rule components of this package.
var Registry = &types.SafeComponentSlice{}
