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

package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/json"
	"gopkg.in/yaml.v3"
)

// ParseDefinition decodes a definition from json or yaml.
// A document starting with `{` is json, anything else is yaml.
func ParseDefinition(dsl []byte) (types.Definition, error) {
	var def types.Definition
	trimmed := bytes.TrimSpace(dsl)
	if len(trimmed) == 0 {
		return def, types.ErrDslEmpty
	}
	var err error
	if trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &def)
	} else {
		err = yaml.Unmarshal(trimmed, &def)
	}
	if err != nil {
		return def, err
	}
	return def, ValidateDefinition(def)
}

// ValidateDefinition checks modes and rule declarations without building components.
func ValidateDefinition(def types.Definition) error {
	if _, err := types.ParseParseMode(def.ParseMode); err != nil {
		return err
	}
	if _, err := types.ParseReturnMode(def.ReturnMode); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(def.Rules))
	for i, rule := range def.Rules {
		if strings.TrimSpace(rule.Name) == "" {
			return fmt.Errorf("rules[%d]: name can not be empty", i)
		}
		if strings.TrimSpace(rule.Type) == "" {
			return fmt.Errorf("rules[%d] %s: type can not be empty", i, rule.Name)
		}
		if _, ok := seen[rule.Name]; ok {
			return fmt.Errorf("%w: %s", types.ErrDuplicateRule, rule.Name)
		}
		seen[rule.Name] = struct{}{}
	}
	return nil
}

// NewFromDsl creates a parser from a json or yaml definition.
func NewFromDsl(dsl []byte, opts ...Option) (*Parser, error) {
	def, err := ParseDefinition(dsl)
	if err != nil {
		return nil, err
	}
	return NewFromDefinition(def, opts...)
}

// NewFromDefinition creates a parser from a decoded definition. Each rule is
// built by the component registry of the config, engine.Registry by default.
// Options are applied after the definition, so they override its modes and keys.
func NewFromDefinition(def types.Definition, opts ...Option) (*Parser, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}
	parseMode, _ := types.ParseParseMode(def.ParseMode)
	returnMode, _ := types.ParseReturnMode(def.ReturnMode)

	defOpts := []Option{
		WithParseMode(parseMode),
		WithReturnMode(returnMode),
		WithDefaultKeys(def.Keys...),
	}
	if def.OriginalAttributes != nil && def.OriginalAttributes.Enabled {
		defOpts = append(defOpts, WithKeepOriginal(def.OriginalAttributes.Except...))
	}
	p := New(nil, append(defOpts, opts...)...)

	registry := p.config.ComponentsRegistry
	if registry == nil {
		registry = Registry
	}
	rules := make([]types.Rule, 0, len(def.Rules))
	for _, item := range def.Rules {
		component, err := registry.NewRule(item.Type, p.config, item.Configuration)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", item.Name, err)
		}
		rules = append(rules, types.Rule{Name: item.Name, Func: types.RuleFromComponent(component)})
	}
	ruleSet, err := types.NewRuleSet(rules...)
	if err != nil {
		return nil, err
	}
	p.ruleSet = ruleSet
	p.definition = &def
	return p, nil
}

// Definition returns the definition the parser was built from, nil for parsers built in code.
func (p *Parser) Definition() *types.Definition {
	return p.definition
}

// errNoDefinition is returned by DSL when the parser was not built from a definition.
var errNoDefinition = errors.New("parser has no definition")

// DSL encodes the definition of the parser as indented json.
func (p *Parser) DSL() ([]byte, error) {
	if p.definition == nil {
		return nil, errNoDefinition
	}
	return json.MarshalIndent(p.definition)
}
