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

// Package mask redacts sensitive field values: phone numbers, names and QQ numbers.
package mask

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMobileStart is the first hidden byte of a mobile number.
	DefaultMobileStart = 3
	// DefaultMobileEnd is the first visible byte after the hidden part.
	DefaultMobileEnd = 7

	NameModeCenter = "center"
	NameModeLeft   = "left"
)

// HideMobile keeps mobile[:start], replaces the next end-start bytes with '*'
// and keeps at most 10 bytes from end. HideMobile("13812345678", 3, 7) is "138****5678".
func HideMobile(mobile string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	left := substr(mobile, 0, start)
	right := substr(mobile, end, 10)
	return padRight(left, end, '*') + right
}

// HideMobileDefault hides the four middle digits of an 11 digit mobile number.
func HideMobileDefault(mobile string) string {
	return HideMobile(mobile, DefaultMobileStart, DefaultMobileEnd)
}

// HideName hides a name rune by rune.
// center mode keeps the first and last runes: "张三丰" is "张*丰", names of at most two runes keep the first rune only.
// any other mode hides the first rune: "张三丰" is "*三丰".
func HideName(name string, mode string) string {
	length := utf8.RuneCountInString(name)
	runes := []rune(name)
	if strings.ToLower(mode) == NameModeCenter {
		var first string
		if length > 0 {
			first = string(runes[0])
		}
		if length > 2 {
			return first + strings.Repeat("*", length-2) + string(runes[length-1])
		}
		return first + "*"
	}
	if length == 0 {
		return "*"
	}
	return "*" + string(runes[1:])
}

// HideQq keeps the first three bytes. Numbers shorter than six are padded
// with '*' to their own length, longer ones get "****" and the bytes from index 7.
func HideQq(qq string) string {
	left := substr(qq, 0, 3)
	if len(qq) < 6 {
		return padRight(left, len(qq), '*')
	}
	return left + "****" + substr(qq, 7, len(qq)-3)
}

// substr returns at most length bytes from start, "" when start is past the end.
func substr(s string, start, length int) string {
	if start >= len(s) || length <= 0 {
		return ""
	}
	end := start + length
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// padRight pads s with c up to n bytes. Longer strings are returned unchanged.
func padRight(s string, n int, c byte) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(string(c), n-len(s))
}
