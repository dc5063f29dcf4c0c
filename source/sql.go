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

// Package source loads batches of records from SQL queries and from json or
// yaml documents, and writes batches back as json or yaml.
//
// The mysql, postgres and sqlite drivers are registered:
//
//	db, err := source.Open(source.DriverSqlite, "file:users.db")
//	rows, err := source.Query(ctx, db, "SELECT first, last, age FROM users")
//	parser := engine.New(ruleSet, engine.WithRows(rows))
package source

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rulego/rowparser/api/types"
	_ "modernc.org/sqlite"
)

// Registered driver names.
const (
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Open opens a database and checks the connection.
func Open(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Query runs a query and returns one record per row, keys in column order.
// []byte values are converted to string, NULL is nil.
func Query(ctx context.Context, db Querier, query string, args ...any) ([]*types.Record, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	// 获取列名
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(columns))
	for i := range columns {
		var v interface{}
		values[i] = &v
	}

	result := make([]*types.Record, 0)
	for rows.Next() {
		if err = rows.Scan(values...); err != nil {
			return nil, err
		}
		record := types.NewRecord()
		for i, column := range columns {
			v := *(values[i].(*interface{}))
			// 如果值是 []byte 类型，转换成 string 类型
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			record.Set(column, v)
		}
		result = append(result, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// QueryOne returns the first row of a query, sql.ErrNoRows when there is none.
func QueryOne(ctx context.Context, db Querier, query string, args ...any) (*types.Record, error) {
	rows, err := Query(ctx, db, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	return rows[0], nil
}
