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
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/fs"
)

// DefinitionExts are the file extensions loaded by DefinitionPool.Load.
var DefinitionExts = []string{".json", ".yaml", ".yml"}

// DefinitionPool holds parser definitions by id and creates parsers from them.
// Definitions are decoded and validated once; every New call builds a fresh
// Parser, since a Parser holds its own batch.
//
// DefinitionPool 按 id 保存解析器定义，每次 New 都创建新的解析器实例。
//
// Usage:
//
//	pool := engine.NewDefinitionPool()
//	_ = pool.Load("./definitions")
//	parser, err := pool.New("user", engine.WithRows(rows))
type DefinitionPool struct {
	definitions map[string]types.Definition
	opts        []Option
	sync.RWMutex
}

// DefaultPool is the default definition pool.
var DefaultPool = NewDefinitionPool()

// NewDefinitionPool creates a pool. opts are applied to every parser it creates,
// before the options passed to New.
func NewDefinitionPool(opts ...Option) *DefinitionPool {
	return &DefinitionPool{definitions: make(map[string]types.Definition), opts: opts}
}

// Load loads every json and yaml definition of folderPath and its subfolders.
// A definition without id takes the file name without extension.
// Invalid files are skipped and logged; the error only reports an unreadable folder.
func (g *DefinitionPool) Load(folderPath string) error {
	paths, err := fs.GetFilePathsByExt(folderPath, DefinitionExts...)
	if err != nil {
		return err
	}
	logger := New(nil, g.opts...).config.Logger
	for _, path := range paths {
		b := fs.LoadFile(path)
		if b == nil {
			continue
		}
		def, err := ParseDefinition(b)
		if err != nil {
			logger.Printf("load definition %s error: %s", path, err.Error())
			continue
		}
		if def.Id == "" {
			base := filepath.Base(path)
			def.Id = strings.TrimSuffix(base, filepath.Ext(base))
		}
		g.Set(def)
	}
	return nil
}

// Add decodes a json or yaml definition and stores it. The definition must have an id.
func (g *DefinitionPool) Add(dsl []byte) (types.Definition, error) {
	def, err := ParseDefinition(dsl)
	if err != nil {
		return def, err
	}
	if def.Id == "" {
		return def, fmt.Errorf("definition id can not be empty")
	}
	g.Set(def)
	return def, nil
}

// Set stores def, replacing the definition with the same id.
func (g *DefinitionPool) Set(def types.Definition) {
	g.Lock()
	defer g.Unlock()
	g.definitions[def.Id] = def
}

// Get returns the definition of id.
func (g *DefinitionPool) Get(id string) (types.Definition, bool) {
	g.RLock()
	defer g.RUnlock()
	def, ok := g.definitions[id]
	return def, ok
}

// Del deletes the definition of id.
func (g *DefinitionPool) Del(id string) {
	g.Lock()
	defer g.Unlock()
	delete(g.definitions, id)
}

// Ids returns the sorted definition ids.
func (g *DefinitionPool) Ids() []string {
	g.RLock()
	defer g.RUnlock()
	ids := make([]string, 0, len(g.definitions))
	for id := range g.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Range calls f for each definition until f returns false.
func (g *DefinitionPool) Range(f func(id string, def types.Definition) bool) {
	for _, id := range g.Ids() {
		if def, ok := g.Get(id); ok && !f(id, def) {
			return
		}
	}
}

// New creates a parser from the definition of id.
func (g *DefinitionPool) New(id string, opts ...Option) (*Parser, error) {
	def, ok := g.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", types.ErrDefinitionNotFound, id)
	}
	all := make([]Option, 0, len(g.opts)+len(opts))
	all = append(all, g.opts...)
	all = append(all, opts...)
	return NewFromDefinition(def, all...)
}

// Load loads a folder into the default pool.
func Load(folderPath string) error {
	return DefaultPool.Load(folderPath)
}

// Get creates a parser from the default pool.
func Get(id string, opts ...Option) (*Parser, error) {
	return DefaultPool.New(id, opts...)
}
