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

import (
	"errors"
	"fmt"
)

var (
	// ErrRuleNotFound is returned when a rule is invoked that the RuleSet does not declare.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrDuplicateRule is returned when a RuleSet declares the same name twice.
	ErrDuplicateRule = errors.New("duplicate rule name")
	// ErrInvalidMode is returned by dsl decoding for an unknown parse or return mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrComponentNotFound is returned when a dsl names an unregistered rule component type.
	ErrComponentNotFound = errors.New("rule component not found")
	// ErrDslEmpty is returned when the parser dsl is empty.
	ErrDslEmpty = errors.New("dsl can not empty")
	// ErrDefinitionNotFound is returned when a definition id is unknown to the pool.
	ErrDefinitionNotFound = errors.New("definition not found")
)

// RuleError reports the rule and record that stopped a pass.
type RuleError struct {
	Rule  string
	Index int
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule=%s row=%d: %v", e.Rule, e.Index, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
