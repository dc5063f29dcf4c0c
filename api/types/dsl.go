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

// Definition describes a parser: its rules, modes and default keys.
//
//	{
//	  "id": "user",
//	  "name": "user list",
//	  "parseMode": "only",
//	  "returnMode": "withKeys",
//	  "keys": ["full_name"],
//	  "rules": [
//	    {"name": "full_name", "type": "expr", "configuration": {"expr": "first + ' ' + last"}}
//	  ]
//	}
type Definition struct {
	// Id identifies the definition in a DefinitionPool.
	Id string `json:"id" yaml:"id"`
	// Name is a human readable name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// ParseMode: all, only or except. Defaults to only.
	ParseMode string `json:"parseMode,omitempty" yaml:"parseMode,omitempty"`
	// ReturnMode: all or withKeys. Defaults to withKeys.
	ReturnMode string `json:"returnMode,omitempty" yaml:"returnMode,omitempty"`
	// Keys are the selection keys used by ParseDefault.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`
	// OriginalAttributes keeps the keys of the source rows in the output.
	OriginalAttributes *OriginalAttributes `json:"originalAttributes,omitempty" yaml:"originalAttributes,omitempty"`
	// Rules in declaration order.
	Rules []RuleDef `json:"rules" yaml:"rules"`
}

// OriginalAttributes configures the pass-through of source keys.
type OriginalAttributes struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Except  []string `json:"except,omitempty" yaml:"except,omitempty"`
}

// RuleDef declares one rule backed by a registered RuleComponent.
type RuleDef struct {
	// Name is the output field name.
	Name string `json:"name" yaml:"name"`
	// Type is the RuleComponent type, e.g. expr, js, template, field, mask.
	Type string `json:"type" yaml:"type"`
	// Configuration is decoded by the component.
	Configuration Configuration `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}
