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

// Package assert holds the assertions used by the tests of this module.
// Failures are reported with t.Errorf and the test goes on, except for the
// Require* helpers which stop the test.
package assert

import (
	"testing"

	"github.com/rulego/rowparser/api/types"
	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Equal(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.Equal(t, expected, actual, msgAndArgs...)
}

func NotEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.NotEqual(t, expected, actual, msgAndArgs...)
}

func Nil(t *testing.T, object interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.Nil(t, object, msgAndArgs...)
}

func NotNil(t *testing.T, object interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.NotNil(t, object, msgAndArgs...)
}

func True(t *testing.T, value bool, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.True(t, value, msgAndArgs...)
}

func False(t *testing.T, value bool, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.False(t, value, msgAndArgs...)
}

func ErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.ErrorIs(t, err, target, msgAndArgs...)
}

func EqualError(t *testing.T, err error, errString string, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.EqualError(t, err, errString, msgAndArgs...)
}

func Len(t *testing.T, object interface{}, length int, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.Len(t, object, length, msgAndArgs...)
}

func Contains(t *testing.T, s, contains interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.Contains(t, s, contains, msgAndArgs...)
}

func Panics(t *testing.T, f func(), msgAndArgs ...interface{}) bool {
	t.Helper()
	return tassert.Panics(t, f, msgAndArgs...)
}

// NoError stops the test on error, since the following assertions usually depend on the result.
func NoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// EqualRecord compares keys, key order and values of two records.
func EqualRecord(t *testing.T, expected, actual *types.Record, msgAndArgs ...interface{}) bool {
	t.Helper()
	if expected.Equal(actual) {
		return true
	}
	return tassert.Fail(t, "records differ\nexpected: "+expected.String()+"\nactual  : "+actual.String(), msgAndArgs...)
}

// EqualRecords compares two batches record by record.
func EqualRecords(t *testing.T, expected, actual []*types.Record, msgAndArgs ...interface{}) bool {
	t.Helper()
	if !tassert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	ok := true
	for i := range expected {
		if !EqualRecord(t, expected[i], actual[i], msgAndArgs...) {
			ok = false
		}
	}
	return ok
}
