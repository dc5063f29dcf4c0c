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
	"testing"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/test/assert"
	"github.com/rulego/rowparser/utils/fs"
)

func TestDefinitionPoolLoad(t *testing.T) {
	pool := NewDefinitionPool(WithConfig(quietConfig()))
	assert.Nil(t, pool.Load("testdata/definitions"))
	// broken.json and readme.txt are skipped
	assert.Equal(t, []string{"contact", "user", "user_yaml"}, pool.Ids())

	def, ok := pool.Get("contact")
	assert.True(t, ok)
	assert.Equal(t, "contact card", def.Name)

	p, err := pool.New("user", WithRows(dslRows()))
	assert.Nil(t, err)
	rows, err := p.ParseDefault()
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("mobile", "138****5678", "full_name", "A B", "age_group", "adult"), rows[0])

	// every New builds its own parser
	other, err := pool.New("user")
	assert.Nil(t, err)
	assert.Len(t, other.Rows(), 0)

	_, err = pool.New("missing")
	assert.ErrorIs(t, err, types.ErrDefinitionNotFound)

	assert.NotNil(t, pool.Load("testdata/missing"))
}

func TestDefinitionPool(t *testing.T) {
	pool := NewDefinitionPool(WithConfig(quietConfig()))
	def, err := pool.Add(fs.LoadFile("testdata/definitions/user.json"))
	assert.Nil(t, err)
	assert.Equal(t, "user", def.Id)

	_, err = pool.Add([]byte(`{"rules": []}`))
	assert.NotNil(t, err)
	_, err = pool.Add([]byte(`{"id": "x", "parseMode": "bad"}`))
	assert.ErrorIs(t, err, types.ErrInvalidMode)

	pool.Set(types.Definition{Id: "empty"})
	var ids []string
	pool.Range(func(id string, def types.Definition) bool {
		ids = append(ids, id)
		return true
	})
	assert.Equal(t, []string{"empty", "user"}, ids)

	pool.Del("user")
	_, ok := pool.Get("user")
	assert.False(t, ok)
	assert.Equal(t, []string{"empty"}, pool.Ids())
}

func TestDefaultPool(t *testing.T) {
	assert.Nil(t, Load("testdata/definitions"))
	p, err := Get("user_yaml", WithConfig(quietConfig()), WithRows(dslRows()))
	assert.Nil(t, err)
	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("full_name", "C D"), rows[1])
}
