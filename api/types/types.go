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

// Package types defines the data model shared by the parser engine, the rule
// components and the batch sources.
package types

// Configuration is the raw configuration of a rule component, as found in the dsl.
type Configuration map[string]interface{}

// RuleComponent is a configurable rule implementation registered by type,
// e.g. expr, js, template.
type RuleComponent interface {
	// Type returns the component type used in the dsl.
	Type() string
	// New returns a fresh, uninitialised instance.
	New() RuleComponent
	// Init decodes configuration and prepares the component.
	Init(config Config, configuration Configuration) error
	// Compute evaluates the rule against a record.
	Compute(row *Record) (any, error)
}

// RuleComponentRegistry holds the rule component prototypes.
type RuleComponentRegistry interface {
	Register(component RuleComponent) error
	Unregister(componentType string) error
	// NewRule creates and initialises a component of the given type.
	NewRule(componentType string, config Config, configuration Configuration) (RuleComponent, error)
	Components() map[string]RuleComponent
}

// Pool runs tasks on a goroutine pool.
type Pool interface {
	// Submit hands a task to the pool, returning an error when the pool is full.
	Submit(task func()) error
	Release()
}
