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

//规则配置示例：
//{
//"name": "label",
//"type": "template",
//"configuration": {
//"template": "${first} (${hideMobile(mobile)})"
//}
//}

import (
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/components/base"
	"github.com/rulego/rowparser/utils/el"
	"github.com/rulego/rowparser/utils/maps"
)

func init() {
	Registry.Add(&TemplateRule{})
}

// TemplateRuleConfiguration 规则配置
type TemplateRuleConfiguration struct {
	// Template 模板内容，使用 ${expr} 引用字段
	Template string
}

// TemplateRule 使用 ${...} 模板计算字段
// 只有一个变量的模板保留表达式结果的类型，例如 `${age}` 返回数字
// 混合文本的模板返回字符串
type TemplateRule struct {
	Config        TemplateRuleConfiguration
	config        types.Config
	configuration types.Configuration
	template      el.Template
}

// Type 组件类型
func (x *TemplateRule) Type() string {
	return "template"
}

func (x *TemplateRule) New() types.RuleComponent {
	return &TemplateRule{}
}

// Init 初始化
func (x *TemplateRule) Init(ruleConfig types.Config, configuration types.Configuration) error {
	err := maps.Map2Struct(configuration, &x.Config)
	if err == nil {
		x.template, err = el.NewTemplate(x.Config.Template)
	}
	x.config = ruleConfig
	x.configuration = configuration
	return err
}

// Compute 渲染模板
func (x *TemplateRule) Compute(row *types.Record) (any, error) {
	if !x.template.HasVar() {
		return x.template.Execute(nil)
	}
	return x.template.Execute(base.RuleUtils.GetEnv(x.config, x.configuration, row))
}
