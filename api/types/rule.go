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

import "fmt"

// RuleFunc computes one field from a record.
type RuleFunc func(row *Record) (any, error)

// RowFunc replaces a whole record.
type RowFunc func(row *Record) (*Record, error)

// Rule is a named RuleFunc. The name is also the output field name.
type Rule struct {
	Name string
	Func RuleFunc
}

// NewRule creates a rule from a function that cannot fail.
func NewRule(name string, fn func(row *Record) any) Rule {
	if fn == nil {
		return Rule{Name: name}
	}
	return Rule{Name: name, Func: func(row *Record) (any, error) {
		return fn(row), nil
	}}
}

// RuleSet is an immutable, ordered collection of rules with unique names.
type RuleSet struct {
	names []string
	rules map[string]RuleFunc
}

// NewRuleSet creates a RuleSet keeping the declaration order.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{
		names: make([]string, 0, len(rules)),
		rules: make(map[string]RuleFunc, len(rules)),
	}
	for _, rule := range rules {
		if _, ok := rs.rules[rule.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Name)
		}
		if rule.Func == nil {
			return nil, fmt.Errorf("%w: %s has no function", ErrRuleNotFound, rule.Name)
		}
		rs.names = append(rs.names, rule.Name)
		rs.rules[rule.Name] = rule.Func
	}
	return rs, nil
}

// MustRuleSet is like NewRuleSet but panics on error. Intended for package level declarations.
func MustRuleSet(rules ...Rule) *RuleSet {
	rs, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// EmptyRuleSet declares no rules.
func EmptyRuleSet() *RuleSet {
	return &RuleSet{rules: map[string]RuleFunc{}}
}

// Names returns the rule names in declaration order.
func (rs *RuleSet) Names() []string {
	if rs == nil {
		return nil
	}
	names := make([]string, len(rs.names))
	copy(names, rs.names)
	return names
}

func (rs *RuleSet) Has(name string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.rules[name]
	return ok
}

func (rs *RuleSet) Get(name string) (RuleFunc, bool) {
	if rs == nil {
		return nil, false
	}
	fn, ok := rs.rules[name]
	return fn, ok
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.names)
}

// Call evaluates the named rule against row.
func (rs *RuleSet) Call(name string, row *Record) (any, error) {
	fn, ok := rs.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, name)
	}
	return fn(row)
}
