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
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/test/assert"
	"github.com/rulego/rowparser/utils/cast"
	"github.com/rulego/rowparser/utils/mask"
)

var errBadRow = errors.New("bad row")

func userRules() *types.RuleSet {
	return types.MustRuleSet(
		types.NewRule("full_name", func(row *types.Record) any {
			return fmt.Sprintf("%v %v", row.Value("first"), row.Value("last"))
		}),
		types.NewRule("age_group", func(row *types.Record) any {
			if cast.ToInt(row.Value("age")) >= 18 {
				return "adult"
			}
			return "minor"
		}),
		types.NewRule("mobile", func(row *types.Record) any {
			return mask.HideMobileDefault(cast.ToString(row.Value("mobile")))
		}),
	)
}

func userRows() []*types.Record {
	return []*types.Record{
		types.RecordOf("first", "A", "last", "B", "age", 30, "mobile", "13812345678"),
		types.RecordOf("first", "C", "last", "D", "age", 12, "mobile", "13900001111"),
	}
}

// testLogger keeps the logged lines.
type testLogger struct {
	lines []string
	sync.Mutex
}

func (l *testLogger) Printf(format string, v ...interface{}) {
	l.Lock()
	defer l.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func quietConfig(opts ...types.Option) types.Config {
	return types.NewConfig(append([]types.Option{types.WithLogger(types.DiscardLogger())}, opts...)...)
}

func TestParseOnlyWithKeys(t *testing.T) {
	p := New(types.MustRuleSet(types.NewRule("full_name", func(row *types.Record) any {
		return fmt.Sprintf("%v %v", row.Value("first"), row.Value("last"))
	})))
	p.SetRows([]*types.Record{types.RecordOf("first", "A", "last", "B")})

	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("full_name", "A B")}, rows)
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		name       string
		parseMode  types.ParseMode
		returnMode types.ReturnMode
		keys       []string
		expected   []*types.Record
	}{
		{
			name:       "all rules, all keys",
			parseMode:  types.ParseModeAll,
			returnMode: types.ReturnModeAll,
			keys:       []string{"ignored"},
			expected: []*types.Record{
				types.RecordOf("first", "A", "last", "B", "age", 30, "mobile", "138****5678", "full_name", "A B", "age_group", "adult"),
				types.RecordOf("first", "C", "last", "D", "age", 12, "mobile", "139****1111", "full_name", "C D", "age_group", "minor"),
			},
		},
		{
			name:       "all rules, selected keys",
			parseMode:  types.ParseModeAll,
			returnMode: types.ReturnModeWithKeys,
			expected: []*types.Record{
				types.RecordOf("mobile", "138****5678", "full_name", "A B", "age_group", "adult"),
				types.RecordOf("mobile", "139****1111", "full_name", "C D", "age_group", "minor"),
			},
		},
		{
			name:       "only, selected keys",
			parseMode:  types.ParseModeOnly,
			returnMode: types.ReturnModeWithKeys,
			keys:       []string{"age_group", "full_name"},
			expected: []*types.Record{
				types.RecordOf("age_group", "adult", "full_name", "A B"),
				types.RecordOf("age_group", "minor", "full_name", "C D"),
			},
		},
		{
			name:       "only, all keys",
			parseMode:  types.ParseModeOnly,
			returnMode: types.ReturnModeAll,
			keys:       []string{"full_name"},
			expected: []*types.Record{
				types.RecordOf("first", "A", "last", "B", "age", 30, "mobile", "13812345678", "full_name", "A B"),
				types.RecordOf("first", "C", "last", "D", "age", 12, "mobile", "13900001111", "full_name", "C D"),
			},
		},
		{
			name:       "except, selected keys",
			parseMode:  types.ParseModeExcept,
			returnMode: types.ReturnModeWithKeys,
			keys:       []string{"mobile"},
			expected: []*types.Record{
				types.RecordOf("full_name", "A B", "age_group", "adult"),
				types.RecordOf("full_name", "C D", "age_group", "minor"),
			},
		},
		{
			name:       "except, all keys",
			parseMode:  types.ParseModeExcept,
			returnMode: types.ReturnModeAll,
			keys:       []string{"full_name", "age_group"},
			expected: []*types.Record{
				types.RecordOf("first", "A", "last", "B", "age", 30, "mobile", "138****5678"),
				types.RecordOf("first", "C", "last", "D", "age", 12, "mobile", "139****1111"),
			},
		},
		{
			name:       "only without keys",
			parseMode:  types.ParseModeOnly,
			returnMode: types.ReturnModeWithKeys,
			expected: []*types.Record{
				types.NewRecord(),
				types.NewRecord(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(userRules(), WithRows(userRows()), WithParseMode(tt.parseMode), WithReturnMode(tt.returnMode))
			rows, err := p.ParseWithRules(tt.keys...)
			assert.Nil(t, err)
			assert.EqualRecords(t, tt.expected, rows)
		})
	}
}

func TestParseAllKeepsOriginalKeys(t *testing.T) {
	p := New(userRules(), WithParseMode(types.ParseModeAll), WithReturnMode(types.ReturnModeAll))
	for _, row := range userRows() {
		original := row.Keys()
		p.SetRows([]*types.Record{row})
		rows, err := p.ParseWithRules()
		assert.Nil(t, err)
		for _, k := range append(original, userRules().Names()...) {
			assert.True(t, rows[0].Has(k), k)
		}
	}
}

func TestParsePassThroughKeys(t *testing.T) {
	p := New(userRules(), WithRows(userRows()))
	rows, err := p.ParseWithRules("full_name", "first", "nick")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("first", "A", "full_name", "A B", "nick", nil),
		types.RecordOf("first", "C", "full_name", "C D", "nick", nil),
	}, rows)
}

func TestParseWithOriginalAttributes(t *testing.T) {
	p := New(userRules(), WithRows(userRows()))
	p.WithOriginalAttributes("mobile")
	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("first", "A", "last", "B", "age", 30, "full_name", "A B"),
		types.RecordOf("first", "C", "last", "D", "age", 12, "full_name", "C D"),
	}, rows)

	// except mode drops the original keys named in keys
	p = New(userRules(), WithRows(userRows()), WithParseMode(types.ParseModeExcept))
	p.WithOriginalAttributes()
	rows, err = p.ParseWithRules("mobile", "age", "age_group")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("first", "A", "last", "B", "full_name", "A B"),
		types.RecordOf("first", "C", "last", "D", "full_name", "C D"),
	}, rows)

	// no-op on an empty batch
	p = New(userRules())
	p.WithOriginalAttributes()
	assert.Len(t, p.originalKeys, 0)
}

func TestParseKeepOriginalOption(t *testing.T) {
	p := New(userRules(), WithKeepOriginal("age", "mobile"))
	p.SetRows([]*types.Record{types.RecordOf("first", "A", "last", "B", "age", 3)})
	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("first", "A", "last", "B", "full_name", "A B"), rows[0])

	// recomputed from the next batch
	p.SetRows([]*types.Record{types.RecordOf("last", "Z", "city", "X")})
	rows, err = p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("last", "Z", "city", "X", "full_name", "<nil> Z"), rows[0])
}

func TestParsePerRecordDiff(t *testing.T) {
	double := types.MustRuleSet(types.NewRule("b", func(row *types.Record) any {
		return cast.ToInt(row.Value("a")) * 2
	}))
	rows := func() []*types.Record {
		return []*types.Record{
			types.RecordOf("a", 1, "x", 1),
			types.RecordOf("a", 2, "y", 2),
		}
	}

	p := New(double, WithRows(rows()), WithParseMode(types.ParseModeAll), WithReturnMode(types.ReturnModeAll))
	result, err := p.ParseWithRules()
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("a", 1, "x", 1, "b", 2),
		types.RecordOf("a", 2, "y", 2, "b", 4),
	}, result)

	p = New(double, WithRows(rows()))
	result, err = p.ParseWithRules("b")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{
		types.RecordOf("b", 2),
		types.RecordOf("b", 4),
	}, result)
}

func TestParseRulesReadRecordBeforePass(t *testing.T) {
	rules := types.MustRuleSet(
		types.NewRule("a", func(row *types.Record) any { return cast.ToInt(row.Value("a")) + 1 }),
		types.NewRule("b", func(row *types.Record) any { return row.Value("a") }),
	)
	p := New(rules, WithRows([]*types.Record{types.RecordOf("a", 1)}), WithParseMode(types.ParseModeAll))
	rows, err := p.ParseWithRules()
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("a", 2, "b", 1), rows[0])
}

func TestParseIdempotent(t *testing.T) {
	for _, mode := range []types.ParseMode{types.ParseModeAll, types.ParseModeOnly, types.ParseModeExcept} {
		p := New(types.MustRuleSet(types.NewRule("full_name", func(row *types.Record) any {
			return fmt.Sprintf("%v %v", row.Value("first"), row.Value("last"))
		})), WithRows(userRows()), WithParseMode(mode), WithReturnMode(types.ReturnModeAll))
		once, err := p.ParseWithRules("full_name")
		assert.Nil(t, err)
		snapshot := make([]*types.Record, len(once))
		for i, row := range once {
			snapshot[i] = row.Clone()
		}
		twice, err := p.ParseWithRules("full_name")
		assert.Nil(t, err)
		assert.EqualRecords(t, snapshot, twice, mode.String())
	}
}

func TestInvalidModesIgnored(t *testing.T) {
	logger := &testLogger{}
	p := New(userRules(), WithConfig(types.NewConfig(types.WithLogger(logger))), WithRows(userRows()))
	p.SetParseMode(99).SetReturnMode(-1).SetRowMode(5)

	assert.Equal(t, types.ParseModeOnly, p.ParseMode())
	assert.Equal(t, types.ReturnModeWithKeys, p.ReturnMode())
	assert.Equal(t, types.RowModeMany, p.RowMode())
	assert.Len(t, logger.lines, 3)
	assert.True(t, strings.Contains(logger.lines[0], "ParseMode(99)"))

	// behaves as ONLY / WITH_KEYS
	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("full_name", "A B"), rows[0])

	p.SetParseMode(types.ParseModeExcept).SetParseMode(7)
	assert.Equal(t, types.ParseModeExcept, p.ParseMode())
}

func TestSetRowMode(t *testing.T) {
	p := New(userRules())
	assert.Equal(t, types.RowModeMany, p.RowMode())
	p.SetRowMode(types.RowModeSingle)
	assert.Equal(t, types.RowModeSingle, p.RowMode())
	// the return mode is not touched
	assert.Equal(t, types.ReturnModeWithKeys, p.ReturnMode())
}

func TestSingleRow(t *testing.T) {
	p := New(userRules())
	assert.Equal(t, 0, p.SingleRow().Len())

	p.SetSingleRow(types.RecordOf("first", "A", "last", "B", "age", 20))
	assert.Equal(t, types.RowModeSingle, p.RowMode())
	row, err := p.ParseSingle("full_name", "age_group")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("full_name", "A B", "age_group", "adult"), row)

	single, many := p.Result()
	assert.EqualRecord(t, row, single)
	assert.Nil(t, many)

	p.AddRow(types.RecordOf("first", "C"))
	p.SetRows(p.Rows())
	single, many = p.Result()
	assert.Nil(t, single)
	assert.Len(t, many, 2)
}

func TestParseNilRecord(t *testing.T) {
	p := New(userRules(), WithRows([]*types.Record{nil}))
	rows, err := p.ParseWithRules("age_group")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("age_group", "minor"), rows[0])
}

func TestParseZeroRecord(t *testing.T) {
	zero := &types.Record{}
	for _, mode := range []types.ParseMode{types.ParseModeOnly, types.ParseModeAll, types.ParseModeExcept} {
		p := New(userRules(), WithRows([]*types.Record{{}, types.RecordOf("age", 30)}), WithParseMode(mode))
		rows, err := p.ParseWithRules("age_group", "city")
		assert.Nil(t, err, mode.String())
		assert.Len(t, rows, 2)
	}

	p := New(userRules(), WithRows([]*types.Record{zero}))
	rows, err := p.ParseWithRules("age_group", "city")
	assert.Nil(t, err)
	// the record is filled in place
	assert.True(t, rows[0] == zero)
	assert.EqualRecord(t, types.RecordOf("age_group", "minor", "city", nil), rows[0])

	p = New(userRules(), WithRows([]*types.Record{{}}), WithKeepOriginal())
	rows, err = p.ParseWithRules("age_group")
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("age_group", "minor"), rows[0])

	p = NewPassthrough([]*types.Record{{}})
	rows, err = p.ParseRows(func(row *types.Record) (*types.Record, error) {
		return row.Put("seen", true), nil
	})
	assert.Nil(t, err)
	assert.EqualRecord(t, types.RecordOf("seen", true), rows[0])
}

func TestParseRuleError(t *testing.T) {
	rules := types.MustRuleSet(
		types.NewRule("ok", func(row *types.Record) any { return 1 }),
		types.Rule{Name: "bad", Func: func(row *types.Record) (any, error) {
			if row.Value("id") == 2 {
				return nil, errBadRow
			}
			return "fine", nil
		}},
	)
	rows := []*types.Record{types.RecordOf("id", 1), types.RecordOf("id", 2), types.RecordOf("id", 3)}
	for _, config := range []types.Config{quietConfig(), quietConfig(types.WithDefaultPool())} {
		p := New(rules, WithConfig(config), WithRows(rows), WithParseMode(types.ParseModeAll))
		_, err := p.ParseWithRules()
		assert.NotNil(t, err)
		assert.ErrorIs(t, err, errBadRow)
		var ruleErr *types.RuleError
		assert.True(t, errors.As(err, &ruleErr))
		assert.Equal(t, "bad", ruleErr.Rule)
		assert.Equal(t, 1, ruleErr.Index)
		assert.Equal(t, "rule=bad row=1: bad row", err.Error())
	}
}

func TestParseParallel(t *testing.T) {
	makeRows := func() []*types.Record {
		var rows []*types.Record
		for i := 0; i < 500; i++ {
			rows = append(rows, types.RecordOf("first", fmt.Sprint("f", i), "last", "L", "age", i%40, "mobile", "13812345678"))
		}
		return rows
	}
	sequential, err := New(userRules(), WithRows(makeRows()), WithParseMode(types.ParseModeAll)).ParseWithRules()
	assert.Nil(t, err)

	parallel, err := New(userRules(), WithConfig(quietConfig(types.WithDefaultPool())),
		WithRows(makeRows()), WithParseMode(types.ParseModeAll)).ParseWithRules()
	assert.Nil(t, err)
	assert.EqualRecords(t, sequential, parallel)

	inline, err := New(userRules(), WithConfig(quietConfig(types.WithPool(&fullPool{}))),
		WithRows(makeRows()), WithParseMode(types.ParseModeAll)).ParseWithRules()
	assert.Nil(t, err)
	assert.EqualRecords(t, sequential, inline)
}

// fullPool rejects every task.
type fullPool struct{}

func (p *fullPool) Submit(func()) error {
	return errors.New("pool is full")
}

func (p *fullPool) Release() {}

func TestOnDebug(t *testing.T) {
	var count int32
	var runIds sync.Map
	config := quietConfig(types.WithOnDebug(func(runId string, ruleName string, index int, row *types.Record, err error) {
		atomic.AddInt32(&count, 1)
		runIds.Store(runId, true)
		assert.True(t, row.Has(ruleName))
		assert.Nil(t, err)
	}))
	p := New(userRules(), WithConfig(config), WithRows(userRows()))
	_, err := p.ParseWithRules("full_name", "mobile")
	assert.Nil(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&count))

	_, err = p.ParseWithRules("full_name")
	assert.Nil(t, err)
	var ids []string
	runIds.Range(func(key, value any) bool {
		ids = append(ids, key.(string))
		return true
	})
	assert.Len(t, ids, 2)
	for _, id := range ids {
		assert.Len(t, id, 36)
	}
}

func TestBeforeParse(t *testing.T) {
	adults := func(rows []*types.Record) []*types.Record {
		var result []*types.Record
		for _, row := range rows {
			if cast.ToInt(row.Value("age")) >= 18 {
				result = append(result, row)
			}
		}
		return result
	}
	p := New(userRules(), WithRows(userRows()), WithBeforeParse(adults))
	rows, err := p.ParseWithRules("full_name")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("full_name", "A B")}, rows)

	p = New(nil, WithRows(userRows()), WithBeforeParse(adults))
	rows, err = p.ParseRows(nil)
	assert.Nil(t, err)
	assert.Len(t, rows, 1)
}

func TestParseRows(t *testing.T) {
	source := userRows()
	p := New(nil, WithRows(source))
	rows, err := p.ParseRows(nil)
	assert.Nil(t, err)
	assert.True(t, rows[0] == source[0])

	upper := func(row *types.Record) (*types.Record, error) {
		return types.RecordOf("name", strings.ToUpper(cast.ToString(row.Value("first")))), nil
	}
	rows, err = p.ParseRows(upper)
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("name", "A"), types.RecordOf("name", "C")}, rows)

	p = New(nil, WithRows(userRows()), WithRowFunc(upper), WithConfig(quietConfig(types.WithDefaultPool())))
	rows, err = p.ParseRows(nil)
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("name", "A"), types.RecordOf("name", "C")}, rows)

	source = userRows()
	p = New(nil, WithRows(source))
	rows, err = p.ParseRows(func(row *types.Record) (*types.Record, error) {
		if row.Value("first") == "C" {
			return nil, errBadRow
		}
		return types.NewRecord(), nil
	})
	assert.ErrorIs(t, err, errBadRow)
	assert.True(t, strings.HasPrefix(err.Error(), "row=1"))
	assert.True(t, rows[0] == source[0])
}

func TestNewPassthrough(t *testing.T) {
	source := userRows()
	p := NewPassthrough(source)
	assert.Equal(t, 0, p.RuleSet().Len())
	rows, err := p.ParseRows(nil)
	assert.Nil(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, rows[1] == source[1])

	rows, err = p.ParseWithRules("first")
	assert.Nil(t, err)
	assert.EqualRecords(t, []*types.Record{types.RecordOf("first", "A"), types.RecordOf("first", "C")}, rows)
}
