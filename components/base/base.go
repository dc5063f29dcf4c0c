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

// Package base provides helpers shared by the rule components.
package base

import (
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/builtin/funcs"
)

var RuleUtils = &ruleUtils{}

type ruleUtils struct {
}

// GetVars returns the `vars` entry of the configuration as script globals, nil when absent.
func (n *ruleUtils) GetVars(configuration types.Configuration) map[string]interface{} {
	if v, ok := configuration[types.Vars]; ok {
		fromVars := make(map[string]interface{})
		fromVars[types.Vars] = v
		return fromVars
	} else {
		return nil
	}
}

// GetEnv builds the expression environment of a record:
// every field as a variable, the whole record as `row`, `vars`, the Go udfs
// of the config and the builtin functions. Fields win over functions of the same name.
func (n *ruleUtils) GetEnv(config types.Config, configuration types.Configuration, row *types.Record) map[string]interface{} {
	env := row.ToMap()
	if _, ok := env[types.RowKey]; !ok {
		env[types.RowKey] = row.ToMap()
	}
	for k, v := range n.GetVars(configuration) {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	for k, v := range config.Udf {
		// js source udfs are only compiled by js rules
		if _, isScript := v.(string); isScript {
			continue
		}
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	return funcs.TemplateFuncMap.MergeInto(env)
}

// PrepareJsData converts the record to the plain map handed to js rules.
func (n *ruleUtils) PrepareJsData(row *types.Record) interface{} {
	return row.ToMap()
}
