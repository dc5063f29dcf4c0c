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

// Package rowparser transforms batches of records with named rules.
//
// # Usage
//
// A parser is built from rules written in Go, or from a json/yaml definition
// whose rules are backed by registered components (expr, js, template, field, mask):
//
//	{
//	  "id": "user",
//	  "parseMode": "only",
//	  "returnMode": "withKeys",
//	  "keys": ["full_name", "mobile"],
//	  "rules": [
//	    {"name": "full_name", "type": "expr", "configuration": {"expr": "first + ' ' + last"}},
//	    {"name": "mobile", "type": "mask", "configuration": {"field": "phone"}}
//	  ]
//	}
//
// Create a parser from the definition:
//
//	parser, err := rowparser.NewFromDsl(def, rowparser.WithRows(rows))
//
// Parse with the definition keys:
//
//	rows, err := parser.ParseDefault()
//
// Or create it from rules:
//
//	ruleSet := types.MustRuleSet(types.NewRule("full_name", func(row *types.Record) any {
//		return fmt.Sprint(row.Value("first"), " ", row.Value("last"))
//	}))
//	rows, err := rowparser.New(ruleSet, rowparser.WithRows(rows)).ParseWithRules("full_name")
//
// Load all definitions of a folder and create parsers by id:
//
//	err := rowparser.Load("./definitions")
//	parser, err := rowparser.Get("user", rowparser.WithRows(rows))
package rowparser

import (
	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/engine"
)

// Parser applies a RuleSet to a batch of records.
type Parser = engine.Parser

// Option configures a Parser.
type Option = engine.Option

var (
	WithConfig       = engine.WithConfig
	WithRows         = engine.WithRows
	WithBeforeParse  = engine.WithBeforeParse
	WithRowFunc      = engine.WithRowFunc
	WithParseMode    = engine.WithParseMode
	WithReturnMode   = engine.WithReturnMode
	WithDefaultKeys  = engine.WithDefaultKeys
	WithKeepOriginal = engine.WithKeepOriginal
)

// DefaultRowParser is the default parser pool.
var DefaultRowParser = &RowParser{pool: engine.DefaultPool}

// RowParser 解析器定义池
// RowParser keeps definitions by id and creates parsers from them.
type RowParser struct {
	pool *engine.DefinitionPool
}

// NewRowParser creates a RowParser. opts are applied to every parser it creates.
func NewRowParser(opts ...Option) *RowParser {
	return &RowParser{pool: engine.NewDefinitionPool(opts...)}
}

// Load loads every definition of folderPath, including subfolders.
func (g *RowParser) Load(folderPath string) error {
	return g.pool.Load(folderPath)
}

// Add stores a json or yaml definition by its id.
func (g *RowParser) Add(dsl []byte) (types.Definition, error) {
	return g.pool.Add(dsl)
}

// Get creates a parser from the definition of id.
func (g *RowParser) Get(id string, opts ...Option) (*Parser, error) {
	return g.pool.New(id, opts...)
}

// Del deletes the definition of id.
func (g *RowParser) Del(id string) {
	g.pool.Del(id)
}

// Ids returns the loaded definition ids.
func (g *RowParser) Ids() []string {
	return g.pool.Ids()
}

// Range iterates over the definitions until f returns false.
func (g *RowParser) Range(f func(id string, def types.Definition) bool) {
	g.pool.Range(f)
}

// New creates a parser for ruleSet.
func New(ruleSet *types.RuleSet, opts ...Option) *Parser {
	return engine.New(ruleSet, opts...)
}

// NewPassthrough creates a parser without rules over rows.
func NewPassthrough(rows []*types.Record, opts ...Option) *Parser {
	return engine.NewPassthrough(rows, opts...)
}

// NewFromDsl creates a parser from a json or yaml definition.
func NewFromDsl(dsl []byte, opts ...Option) (*Parser, error) {
	return engine.NewFromDsl(dsl, opts...)
}

// Parse creates a parser from dsl and runs a pass over rows with keys,
// or with the definition keys when none are given.
func Parse(dsl []byte, rows []*types.Record, keys ...string) ([]*types.Record, error) {
	p, err := engine.NewFromDsl(dsl, engine.WithRows(rows))
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return p.ParseDefault()
	}
	return p.ParseWithRules(keys...)
}

// Load loads a folder into the default pool.
func Load(folderPath string) error {
	return DefaultRowParser.Load(folderPath)
}

// Get creates a parser from the default pool.
func Get(id string, opts ...Option) (*Parser, error) {
	return DefaultRowParser.Get(id, opts...)
}

// Del deletes a definition from the default pool.
func Del(id string) {
	DefaultRowParser.Del(id)
}
