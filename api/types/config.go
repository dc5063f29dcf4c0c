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
	"math"
	"time"

	"github.com/rulego/rowparser/utils/pool"
)

// OnDebugFunc receives the outcome of every rule evaluation.
//   - runId: id of the parse pass
//   - ruleName: the evaluated rule
//   - index: position of the record in the batch
//   - row: the record after the rule wrote its value
//   - err: rule error, if any
type OnDebugFunc func(runId string, ruleName string, index int, row *Record, err error)

// Config defines the configuration shared by parsers and rule components.
type Config struct {
	// OnDebug is called after each rule evaluation. Nil disables it.
	OnDebug OnDebugFunc
	// ScriptMaxExecutionTime is the maximum execution time of a js rule, defaulting to 2000 milliseconds.
	ScriptMaxExecutionTime time.Duration
	// Pool processes the records of a pass in parallel. If not configured, records are processed in order
	// on the caller goroutine.
	Pool Pool
	// ComponentsRegistry resolves dsl rule types, defaulting to `engine.Registry`.
	ComponentsRegistry RuleComponentRegistry
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// Udf registers custom functions callable from expr and js rules.
	Udf map[string]interface{}
}

// RegisterUdf registers a custom function for expr and js rules.
func (c *Config) RegisterUdf(name string, value interface{}) {
	if c.Udf == nil {
		c.Udf = make(map[string]interface{})
	}
	c.Udf[name] = value
}

// NewConfig creates a new Config with default values and applies the provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		ScriptMaxExecutionTime: time.Millisecond * 2000,
		Logger:                 DefaultLogger(),
	}

	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}

// DefaultPool provides a default goroutine pool.
func DefaultPool() Pool {
	wp := &pool.WorkerPool{MaxWorkersCount: math.MaxInt32}
	wp.Start()
	return wp
}
