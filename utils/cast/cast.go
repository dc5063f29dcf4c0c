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

// Package cast converts dynamic record values.
//
// The strict functions (ToIntE, ToFloat64E, ToStringE) report failures.
// The lenient ones (IntVal, FloatVal, StrVal) never fail: strings are read up to
// their first non numeric character and anything unreadable becomes zero, the
// way intval, floatval and strval behave for row values coming out of a database.
package cast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ToInt converts an interface{} to int.
// It returns 0 if conversion fails.
func ToInt(value interface{}) int {
	v, _ := ToIntE(value)
	return v
}

// ToIntE converts an interface{} to int with error handling.
func ToIntE(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		i, err := v.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unable to cast %v of type %T to int", value, value)
	}
}

// ToFloat64 converts an interface{} to float64.
// It returns 0 if conversion fails.
func ToFloat64(value interface{}) float64 {
	v, _ := ToFloat64E(value)
	return v
}

// ToFloat64E converts an interface{} to float64 with error handling.
func ToFloat64E(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unable to cast %v of type %T to float64", value, value)
	}
}

// ToString converts an interface{} to string.
// It returns empty string if conversion fails.
func ToString(input interface{}) string {
	v, _ := ToStringE(input)
	return v
}

// ToStringE converts an interface{} to string with error handling.
// Maps, slices and structs are encoded as json.
func ToStringE(input interface{}) (string, error) {
	if input == nil {
		return "", nil
	}
	switch v := input.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.Itoa(int(v)), nil
	case int16:
		return strconv.Itoa(int(v)), nil
	case int32:
		return strconv.Itoa(int(v)), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case []byte:
		return string(v), nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	case error:
		return v.Error(), nil
	default:
		if newValue, err := json.Marshal(input); err == nil {
			return string(newValue), nil
		} else {
			return "", err
		}
	}
}

// Coercion tokens understood by Coerce.
const (
	TransInt    = "intval"
	TransString = "strval"
	TransFloat  = "floatval"
)

// Coerce converts v with IntVal, StrVal or FloatVal according to trans.
// Any other token returns v unchanged.
func Coerce(v interface{}, trans string) interface{} {
	switch trans {
	case TransInt:
		return IntVal(v)
	case TransString:
		return StrVal(v)
	case TransFloat:
		return FloatVal(v)
	default:
		return v
	}
}

// IntVal converts leniently to int: "42abc" is 42, "abc" is 0, 3.9 is 3, true is 1.
// Integer strings are read exactly; values beyond the int range saturate at
// math.MaxInt or math.MinInt.
func IntVal(value interface{}) int {
	switch v := value.(type) {
	case string:
		return intPrefix(v)
	case []byte:
		return intPrefix(string(v))
	case json.Number:
		return intPrefix(string(v))
	case float64:
		return clampFloat(v)
	case float32:
		return clampFloat(float64(v))
	case uint:
		if uint64(v) > math.MaxInt {
			return math.MaxInt
		}
		return int(v)
	case uint64:
		if v > math.MaxInt {
			return math.MaxInt
		}
		return int(v)
	default:
		return ToInt(value)
	}
}

// intPrefix reads the leading integer of s. A fraction is dropped; an exponent
// switches to float parsing.
func intPrefix(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	intEnd := end
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
		}
	}
	if intEnd == start || hasExponent(s[end:]) {
		f, _ := numericPrefix(s)
		return clampFloat(f)
	}
	i, err := strconv.ParseInt(s[:intEnd], 10, 0)
	if err != nil {
		// only ErrRange is possible here
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	return int(i)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// hasExponent reports whether s starts with e or E, an optional sign and a digit.
func hasExponent(s string) bool {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return false
	}
	i := 1
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	return i < len(s) && isDigit(s[i])
}

// clampFloat truncates f, saturating outside the int range. NaN and infinities are 0.
func clampFloat(f float64) int {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(f)
	}
}

// FloatVal converts leniently to float64: "1.5kg" is 1.5, "abc" is 0.
func FloatVal(value interface{}) float64 {
	switch v := value.(type) {
	case string:
		f, _ := numericPrefix(v)
		return f
	case []byte:
		return FloatVal(string(v))
	default:
		return ToFloat64(value)
	}
}

// StrVal converts to string: nil is "", true is "1" and false is "".
func StrVal(value interface{}) string {
	if b, ok := value.(bool); ok {
		if b {
			return "1"
		}
		return ""
	}
	return ToString(value)
}

// numericPrefix parses the longest leading decimal number of s, after leading spaces.
func numericPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for expDigits < len(s) && s[expDigits] >= '0' && s[expDigits] <= '9' {
			expDigits++
		}
		if expDigits > exp {
			end = expDigits
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
