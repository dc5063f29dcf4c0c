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

// 规则配置示例：
// {
//   "name": "adult",
//   "type": "js",
//   "configuration": {
//     "jsScript": "return row.age >= 18;"
//   }
// }
import (
	"errors"
	"fmt"
	"strings"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/components/base"
	"github.com/rulego/rowparser/utils/js"
	"github.com/rulego/rowparser/utils/maps"
)

const (
	// JsRuleType 组件类型标识符
	JsRuleType = "js"
	// JsRuleFuncTemplate JS函数模板，用于包装用户脚本
	JsRuleFuncTemplate = "function Compute(row) { %s }"
	// JsRuleFuncName JS引擎中执行的函数名称
	JsRuleFuncName = "Compute"
)

// ErrJsScriptEmpty is returned by Init when no script is configured.
var ErrJsScriptEmpty = errors.New("jsScript can not be empty")

func init() {
	Registry.Add(&JsRule{})
}

// JsRuleConfiguration JS规则配置
type JsRuleConfiguration struct {
	// JsScript 函数体，会被包装成：function Compute(row) { ${JsScript} }
	// 返回值即字段值
	JsScript string
}

// JsRule 使用JavaScript脚本计算字段
// 脚本通过`row`参数访问记录，通过`vars`访问配置变量，可以调用内置函数和Config.Udf
// 执行时间超过Config.ScriptMaxExecutionTime时中断
type JsRule struct {
	// Config 规则配置
	Config JsRuleConfiguration
	// jsEngine JavaScript执行引擎实例
	jsEngine *js.GojaJsEngine
}

// Type 返回组件类型标识符
func (x *JsRule) Type() string {
	return JsRuleType
}

func (x *JsRule) New() types.RuleComponent {
	return &JsRule{}
}

// Init 初始化规则，编译脚本
func (x *JsRule) Init(ruleConfig types.Config, configuration types.Configuration) error {
	err := maps.Map2Struct(configuration, &x.Config)
	if err != nil {
		return err
	}
	if strings.TrimSpace(x.Config.JsScript) == "" {
		return ErrJsScriptEmpty
	}
	jsScript := fmt.Sprintf(JsRuleFuncTemplate, x.Config.JsScript)
	x.jsEngine, err = js.NewGojaJsEngine(ruleConfig, jsScript, base.RuleUtils.GetVars(configuration))
	return err
}

// Compute 执行脚本并返回字段值
func (x *JsRule) Compute(row *types.Record) (any, error) {
	return x.jsEngine.Execute(JsRuleFuncName, base.RuleUtils.PrepareJsData(row))
}
