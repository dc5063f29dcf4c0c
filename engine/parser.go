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

// Package engine provides the row parser: it applies a RuleSet to a batch of
// records, selecting rules by ParseMode and trimming keys by ReturnMode.
//
// Package engine 提供行解析器：按解析模式选择规则，按返回模式裁剪字段。
//
// The engine package is responsible for:
//   - Running a parse pass over a batch (Parser.ParseWithRules, Parser.ParseRows)
//   - Looking up nested values with default and coercion (GetValue, GetValueRecursively)
//   - Resolving rule components by type (RuleComponentRegistry)
//   - Building parsers from JSON or YAML definitions (NewFromDsl, DefinitionPool)
//
// Usage:
//
//	ruleSet := types.MustRuleSet(types.NewRule("full_name", func(row *types.Record) any {
//		return fmt.Sprintf("%v %v", row.Value("first"), row.Value("last"))
//	}))
//	parser := engine.New(ruleSet, engine.WithRows(rows))
//	rows, err := parser.ParseWithRules("full_name")
package engine

import (
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/rulego/rowparser/api/types"
)

// BeforeParseFunc pre-processes the batch at the start of each pass.
// Its return value replaces the batch.
type BeforeParseFunc func(rows []*types.Record) []*types.Record

// Option configures a Parser.
type Option func(*Parser)

// WithConfig sets the parser config.
func WithConfig(config types.Config) Option {
	return func(p *Parser) {
		if config.Logger == nil {
			config.Logger = types.DefaultLogger()
		}
		p.config = config
	}
}

// WithRows sets the initial batch.
func WithRows(rows []*types.Record) Option {
	return func(p *Parser) {
		p.SetRows(rows)
	}
}

// WithBeforeParse sets the before-parse hook.
func WithBeforeParse(fn BeforeParseFunc) Option {
	return func(p *Parser) {
		p.beforeParse = fn
	}
}

// WithRowFunc sets the default row function of ParseRows.
func WithRowFunc(fn types.RowFunc) Option {
	return func(p *Parser) {
		p.rowFunc = fn
	}
}

// WithParseMode sets the initial parse mode. Invalid values are ignored.
func WithParseMode(mode types.ParseMode) Option {
	return func(p *Parser) {
		p.SetParseMode(mode)
	}
}

// WithReturnMode sets the initial return mode. Invalid values are ignored.
func WithReturnMode(mode types.ReturnMode) Option {
	return func(p *Parser) {
		p.SetReturnMode(mode)
	}
}

// WithDefaultKeys sets the keys used by ParseDefault.
func WithDefaultKeys(keys ...string) Option {
	return func(p *Parser) {
		p.defaultKeys = append([]string(nil), keys...)
	}
}

// WithKeepOriginal keeps the keys of the first record of each pass, minus
// except, in the output. See Parser.WithOriginalAttributes.
func WithKeepOriginal(except ...string) Option {
	return func(p *Parser) {
		p.keepOriginal = true
		p.originalExcept = append([]string(nil), except...)
	}
}

// Parser applies a RuleSet to a batch of records.
// A Parser is not safe for concurrent use; the records of one pass may be
// processed in parallel when Config.Pool is set.
type Parser struct {
	config       types.Config
	ruleSet      *types.RuleSet
	rows         []*types.Record
	parseMode    types.ParseMode
	returnMode   types.ReturnMode
	rowMode      types.RowMode
	originalKeys []string
	defaultKeys  []string
	beforeParse  BeforeParseFunc
	rowFunc      types.RowFunc
	// keepOriginal recomputes originalKeys at the start of every pass.
	keepOriginal   bool
	originalExcept []string
	definition     *types.Definition
}

// New creates a parser for ruleSet. A nil ruleSet is the empty RuleSet.
// Defaults: ParseModeOnly, ReturnModeWithKeys, RowModeMany.
func New(ruleSet *types.RuleSet, opts ...Option) *Parser {
	if ruleSet == nil {
		ruleSet = types.EmptyRuleSet()
	}
	p := &Parser{
		config:     types.NewConfig(),
		ruleSet:    ruleSet,
		parseMode:  types.ParseModeOnly,
		returnMode: types.ReturnModeWithKeys,
		rowMode:    types.RowModeMany,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.config.Logger == nil {
		p.config.Logger = types.DefaultLogger()
	}
	return p
}

// NewPassthrough creates a parser without rules whose ParseRows returns
// the records unchanged.
func NewPassthrough(rows []*types.Record, opts ...Option) *Parser {
	opts = append([]Option{WithRows(rows), WithRowFunc(func(row *types.Record) (*types.Record, error) {
		return row, nil
	})}, opts...)
	return New(nil, opts...)
}

// SetRows replaces the batch.
func (p *Parser) SetRows(rows []*types.Record) *Parser {
	p.rows = rows
	p.rowMode = types.RowModeMany
	return p
}

// SetSingleRow replaces the batch with one record.
func (p *Parser) SetSingleRow(row *types.Record) *Parser {
	p.rows = []*types.Record{row}
	p.rowMode = types.RowModeSingle
	return p
}

// AddRow appends a record to the batch.
func (p *Parser) AddRow(row *types.Record) *Parser {
	p.rows = append(p.rows, row)
	return p
}

// Rows returns the batch.
func (p *Parser) Rows() []*types.Record {
	return p.rows
}

// SingleRow returns the first record, or an empty record when the batch is empty.
func (p *Parser) SingleRow() *types.Record {
	if len(p.rows) == 0 || p.rows[0] == nil {
		return types.NewRecord()
	}
	return p.rows[0]
}

// Result returns the single record in RowModeSingle, the batch otherwise.
func (p *Parser) Result() (*types.Record, []*types.Record) {
	if p.rowMode == types.RowModeSingle {
		return p.SingleRow(), nil
	}
	return nil, p.rows
}

func (p *Parser) SetParseMode(mode types.ParseMode) *Parser {
	if !mode.Valid() {
		p.config.Logger.Printf("ignore invalid parse mode: %s, keep %s", mode, p.parseMode)
		return p
	}
	p.parseMode = mode
	return p
}

func (p *Parser) SetReturnMode(mode types.ReturnMode) *Parser {
	if !mode.Valid() {
		p.config.Logger.Printf("ignore invalid return mode: %s, keep %s", mode, p.returnMode)
		return p
	}
	p.returnMode = mode
	return p
}

func (p *Parser) SetRowMode(mode types.RowMode) *Parser {
	if !mode.Valid() {
		p.config.Logger.Printf("ignore invalid row mode: %s, keep %s", mode, p.rowMode)
		return p
	}
	p.rowMode = mode
	return p
}

func (p *Parser) ParseMode() types.ParseMode {
	return p.parseMode
}

func (p *Parser) ReturnMode() types.ReturnMode {
	return p.returnMode
}

func (p *Parser) RowMode() types.RowMode {
	return p.rowMode
}

// RuleSet returns the rules of the parser.
func (p *Parser) RuleSet() *types.RuleSet {
	return p.ruleSet
}

// Config returns the parser config.
func (p *Parser) Config() types.Config {
	return p.config
}

// DefaultKeys returns the keys used by ParseDefault.
func (p *Parser) DefaultKeys() []string {
	return append([]string(nil), p.defaultKeys...)
}

// WithOriginalAttributes keeps the keys of the first record, minus except,
// in the output of the following passes. No-op on an empty batch.
func (p *Parser) WithOriginalAttributes(except ...string) *Parser {
	if len(p.rows) == 0 || p.rows[0] == nil {
		return p
	}
	skip := toSet(except)
	p.originalKeys = nil
	for _, k := range p.rows[0].Keys() {
		if _, ok := skip[k]; !ok {
			p.originalKeys = append(p.originalKeys, k)
		}
	}
	return p
}

// ParseDefault runs ParseWithRules with the default keys.
func (p *Parser) ParseDefault() ([]*types.Record, error) {
	return p.ParseWithRules(p.defaultKeys...)
}

// ParseSingle runs ParseWithRules and returns the first record.
func (p *Parser) ParseSingle(keys ...string) (*types.Record, error) {
	if _, err := p.ParseWithRules(keys...); err != nil {
		return nil, err
	}
	return p.SingleRow(), nil
}

// ParseWithRules evaluates the rules selected by the parse mode and keys on
// every record, then trims each record according to the return mode.
// Records are modified in place and the batch is returned.
// A rule failure stops the pass with a *types.RuleError.
func (p *Parser) ParseWithRules(keys ...string) ([]*types.Record, error) {
	p.runBeforeParse()
	if p.keepOriginal {
		p.originalKeys = nil
		p.WithOriginalAttributes(p.originalExcept...)
	}
	pl := p.plan(keys)
	runId := p.newRunId()
	err := p.each(func(index int) error {
		row := p.rows[index]
		if row == nil {
			row = types.NewRecord()
			p.rows[index] = row
		}
		return p.parseRow(runId, index, row, pl)
	})
	return p.rows, err
}

// ParseRows replaces every record with fn(record). A nil fn falls back to the
// default row function; with neither the batch is returned unchanged.
// On error the batch is left untouched.
func (p *Parser) ParseRows(fn types.RowFunc) ([]*types.Record, error) {
	p.runBeforeParse()
	if fn == nil {
		fn = p.rowFunc
	}
	if fn == nil {
		return p.rows, nil
	}
	result := make([]*types.Record, len(p.rows))
	err := p.each(func(index int) error {
		row, err := fn(p.rows[index])
		if err != nil {
			return fmt.Errorf("row=%d: %w", index, err)
		}
		result[index] = row
		return nil
	})
	if err != nil {
		return p.rows, err
	}
	p.rows = result
	return p.rows, nil
}

func (p *Parser) runBeforeParse() {
	if p.beforeParse != nil {
		p.rows = p.beforeParse(p.rows)
	}
}

func (p *Parser) newRunId() string {
	if p.config.OnDebug == nil {
		return ""
	}
	id, err := uuid.NewV4()
	if err != nil {
		p.config.Logger.Printf("generate run id error: %s", err.Error())
		return ""
	}
	return id.String()
}

// step is one key written by a pass: a rule value or a pass-through copy.
type step struct {
	name string
	rule types.RuleFunc
}

type parsePlan struct {
	steps []step
	// keep holds every written key; other keys are removed in ReturnModeWithKeys.
	keep map[string]struct{}
}

func (p *Parser) plan(keys []string) *parsePlan {
	selected := toSet(keys)
	pl := &parsePlan{keep: make(map[string]struct{})}
	add := func(name string, rule types.RuleFunc) {
		if _, ok := pl.keep[name]; ok {
			return
		}
		pl.keep[name] = struct{}{}
		pl.steps = append(pl.steps, step{name: name, rule: rule})
	}

	switch p.parseMode {
	case types.ParseModeOnly:
		for _, k := range keys {
			// a selected key that is not a rule is copied through
			rule, _ := p.ruleSet.Get(k)
			add(k, rule)
		}
	case types.ParseModeExcept:
		for _, name := range p.ruleSet.Names() {
			if _, ok := selected[name]; !ok {
				rule, _ := p.ruleSet.Get(name)
				add(name, rule)
			}
		}
	default:
		for _, name := range p.ruleSet.Names() {
			rule, _ := p.ruleSet.Get(name)
			add(name, rule)
		}
	}

	for _, k := range p.originalKeys {
		if p.parseMode == types.ParseModeExcept {
			if _, ok := selected[k]; ok {
				continue
			}
		}
		add(k, nil)
	}
	return pl
}

// parseRow applies the plan to one record. Rules read the record as it was
// before the pass.
func (p *Parser) parseRow(runId string, index int, row *types.Record, pl *parsePlan) error {
	if len(pl.steps) == 0 && p.returnMode != types.ReturnModeWithKeys {
		return nil
	}
	source := row.Clone()
	for _, s := range pl.steps {
		if s.rule == nil {
			row.Set(s.name, source.Value(s.name))
			continue
		}
		v, err := s.rule(source)
		if err != nil {
			p.debug(runId, s.name, index, row, err)
			return &types.RuleError{Rule: s.name, Index: index, Err: err}
		}
		row.Set(s.name, v)
		p.debug(runId, s.name, index, row, nil)
	}
	if p.returnMode == types.ReturnModeWithKeys {
		for _, k := range source.Keys() {
			if _, ok := pl.keep[k]; !ok {
				row.Delete(k)
			}
		}
	}
	return nil
}

func (p *Parser) debug(runId, ruleName string, index int, row *types.Record, err error) {
	if p.config.OnDebug != nil {
		p.config.OnDebug(runId, ruleName, index, row, err)
	}
}

// each runs fn for every record index, on the config pool when one is set.
// The error of the lowest failing index is returned.
func (p *Parser) each(fn func(index int) error) error {
	n := len(p.rows)
	if p.config.Pool == nil || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		index := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			errs[index] = fn(index)
		}
		if err := p.config.Pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
