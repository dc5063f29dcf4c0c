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
//	"name": "full_name",
//	"type": "expr",
//	"configuration": {
//		"expr": "upper(first) + ' ' + last"
//	}
//}
import (
	"errors"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/components/base"
	"github.com/rulego/rowparser/utils/maps"
)

// ErrExprEmpty is returned by Init when no expression is configured.
var ErrExprEmpty = errors.New("expr can not be empty")

func init() {
	Registry.Add(&ExprRule{})
}

// ExprRuleConfiguration 规则配置
type ExprRuleConfiguration struct {
	// Expr 计算字段的表达式
	Expr string
}

// ExprRule 使用expr表达式计算字段
// 记录的每个字段都是表达式变量，例如: `age > 18`
// 通过`row`变量访问整行记录，例如: `row["first name"]`
// 可以调用内置函数，例如: `hideMobile(mobile)`
type ExprRule struct {
	//规则配置
	Config        ExprRuleConfiguration
	config        types.Config
	configuration types.Configuration
	program       *vm.Program
}

// Type 组件类型
func (x *ExprRule) Type() string {
	return "expr"
}

func (x *ExprRule) New() types.RuleComponent {
	return &ExprRule{}
}

// Init 初始化
func (x *ExprRule) Init(ruleConfig types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	exprV := strings.TrimSpace(x.Config.Expr)
	if exprV == "" {
		return ErrExprEmpty
	}
	program, err := expr.Compile(exprV, expr.AllowUndefinedVariables())
	if err != nil {
		return err
	}
	x.program = program
	x.config = ruleConfig
	x.configuration = configuration
	return nil
}

// Compute 计算字段值
func (x *ExprRule) Compute(row *types.Record) (any, error) {
	var exprVm = vm.VM{}
	return exprVm.Run(x.program, base.RuleUtils.GetEnv(x.config, x.configuration, row))
}
