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

package rowparser

import (
	"fmt"
	"testing"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/test/assert"
)

var userDsl = []byte(`
id: user
parseMode: only
returnMode: withKeys
keys: [full_name, mobile]
rules:
  - name: full_name
    type: expr
    configuration:
      expr: first + ' ' + last
  - name: mobile
    type: mask
    configuration:
      field: mobile
`)

func rows() []*types.Record {
	return []*types.Record{
		types.RecordOf("first", "A", "last", "B", "mobile", "13812345678"),
		types.RecordOf("first", "C", "last", "D", "mobile", "13900001111"),
	}
}

func TestNew(t *testing.T) {
	ruleSet := types.MustRuleSet(types.NewRule("full_name", func(row *types.Record) any {
		return fmt.Sprint(row.Value("first"), " ", row.Value("last"))
	}))
	result, err := New(ruleSet, WithRows(rows())).ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("full_name", "A B"),
		types.RecordOf("full_name", "C D"),
	}, result)
}

func TestNewPassthrough(t *testing.T) {
	p := NewPassthrough(rows(), WithRowFunc(func(row *types.Record) (*types.Record, error) {
		return types.RecordOf("first", row.Value("first")), nil
	}))
	result, err := p.ParseRows(nil)
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("first", "A"), types.RecordOf("first", "C")}, result)
}

func TestParse(t *testing.T) {
	result, err := Parse(userDsl, rows())
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("full_name", "A B", "mobile", "138****5678"),
		types.RecordOf("full_name", "C D", "mobile", "139****1111"),
	}, result)

	result, err = Parse(userDsl, rows(), "mobile")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("mobile", "138****5678"), result[0])

	_, err = Parse([]byte("parseMode: bad"), rows())
	assert.ErrorIs(t, err, types.ErrInvalidMode)
}

func TestRowParser(t *testing.T) {
	rp := NewRowParser(WithConfig(types.NewConfig(types.WithLogger(types.DiscardLogger()))))
	def, err := rp.Add(userDsl)
	assert.Nil(t, err)
	assert.Equal(t, "user", def.Id)
	assert.Equal(t, []string{"user"}, rp.Ids())

	p, err := rp.Get("user", WithRows(rows()), WithDefaultKeys("full_name"))
	assert.Nil(t, err)
	result, err := p.ParseDefault()
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("full_name", "A B"), result[0])

	count := 0
	rp.Range(func(id string, def types.Definition) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)

	rp.Del("user")
	_, err = rp.Get("user")
	assert.ErrorIs(t, err, types.ErrDefinitionNotFound)
}

func TestLoad(t *testing.T) {
	assert.Nil(t, Load("engine/testdata/definitions"))
	p, err := Get("user_yaml", WithRows(rows()))
	assert.Nil(t, err)
	result, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("full_name", "A B"), result[0])

	Del("user_yaml")
	_, err = Get("user_yaml")
	assert.ErrorIs(t, err, types.ErrDefinitionNotFound)
}
