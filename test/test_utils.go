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

// Package test holds helpers for testing rule components and parsers.
package test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/test/assert"
)

// CreateAndInitRule 创建并初始化一个规则组件实例
func CreateAndInitRule(componentType string, initConfig types.Configuration, registry *types.SafeComponentSlice) (types.RuleComponent, error) {
	return CreateAndInitRuleWithConfig(types.NewConfig(types.WithLogger(types.DiscardLogger())), componentType, initConfig, registry)
}

// CreateAndInitRuleWithConfig is CreateAndInitRule with a custom Config.
func CreateAndInitRuleWithConfig(config types.Config, componentType string, initConfig types.Configuration, registry *types.SafeComponentSlice) (types.RuleComponent, error) {
	factory, ok := registry.Find(componentType)
	if !ok {
		return nil, fmt.Errorf("%w: componentType=%s", types.ErrComponentNotFound, componentType)
	}
	component := factory.New()
	err := component.Init(config, initConfig)
	return component, err
}

// RuleNew 测试创建规则组件实例
func RuleNew(t *testing.T, componentType string, target types.RuleComponent, registry *types.SafeComponentSlice) {
	factory, ok := registry.Find(target.Type())
	assert.True(t, ok)
	assert.Equal(t, componentType, factory.Type())

	component := factory.New()
	assert.True(t, reflect.TypeOf(component) == reflect.TypeOf(target))
}

// RowCase is one record and the value a rule is expected to compute from it.
type RowCase struct {
	Row      *types.Record
	Expected interface{}
	// WantErr expects Compute to fail.
	WantErr bool
}

// RuleCompute 测试规则计算
func RuleCompute(t *testing.T, component types.RuleComponent, cases []RowCase) {
	t.Helper()
	for i, c := range cases {
		v, err := component.Compute(c.Row)
		if c.WantErr {
			assert.NotNil(t, err, "case %d", i)
			continue
		}
		assert.Nil(t, err, "case %d", i)
		assert.Equal(t, c.Expected, v, "case %d", i)
	}
}
