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

package types

import (
	"fmt"
	"strings"

	"github.com/rulego/rowparser/utils/cast"
)

// ParseMode decides which rules of a RuleSet are evaluated during a pass.
type ParseMode int

const (
	// ParseModeAll evaluates every rule.
	ParseModeAll ParseMode = 0
	// ParseModeOnly evaluates only the rules named in the keys.
	ParseModeOnly ParseMode = 1
	// ParseModeExcept evaluates every rule except the ones named in the keys.
	ParseModeExcept ParseMode = 2
)

// Valid reports whether m is one of the declared parse modes.
func (m ParseMode) Valid() bool {
	return m == ParseModeAll || m == ParseModeOnly || m == ParseModeExcept
}

func (m ParseMode) String() string {
	switch m {
	case ParseModeAll:
		return "all"
	case ParseModeOnly:
		return "only"
	case ParseModeExcept:
		return "except"
	default:
		return fmt.Sprintf("ParseMode(%d)", int(m))
	}
}

// ParseParseMode converts the dsl form of a parse mode.
func ParseParseMode(s string) (ParseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ParseModeAll, nil
	case "only", "":
		return ParseModeOnly, nil
	case "except":
		return ParseModeExcept, nil
	default:
		return ParseModeOnly, fmt.Errorf("%w: parseMode=%s", ErrInvalidMode, s)
	}
}

// ReturnMode decides which keys survive in a record after a pass.
type ReturnMode int

const (
	// ReturnModeAll keeps every key of the record.
	ReturnModeAll ReturnMode = 0
	// ReturnModeWithKeys keeps only the keys selected by the pass.
	ReturnModeWithKeys ReturnMode = 1
)

func (m ReturnMode) Valid() bool {
	return m == ReturnModeAll || m == ReturnModeWithKeys
}

func (m ReturnMode) String() string {
	switch m {
	case ReturnModeAll:
		return "all"
	case ReturnModeWithKeys:
		return "withKeys"
	default:
		return fmt.Sprintf("ReturnMode(%d)", int(m))
	}
}

// ParseReturnMode converts the dsl form of a return mode.
func ParseReturnMode(s string) (ReturnMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return ReturnModeAll, nil
	case "withkeys", "with_keys", "":
		return ReturnModeWithKeys, nil
	default:
		return ReturnModeWithKeys, fmt.Errorf("%w: returnMode=%s", ErrInvalidMode, s)
	}
}

// RowMode tells whether the parser holds a single row or a batch.
type RowMode int

const (
	RowModeSingle RowMode = 0
	RowModeMany   RowMode = 1
)

func (m RowMode) Valid() bool {
	return m == RowModeSingle || m == RowModeMany
}

func (m RowMode) String() string {
	switch m {
	case RowModeSingle:
		return "single"
	case RowModeMany:
		return "many"
	default:
		return fmt.Sprintf("RowMode(%d)", int(m))
	}
}

// Coercion tokens accepted by value lookups. Any other token leaves the value untouched.
const (
	TransInt    = cast.TransInt
	TransString = cast.TransString
	TransFloat  = cast.TransFloat
)

const (
	// RowKey is the variable holding the whole record in expr and js rules.
	RowKey = "row"
	// PathSeparator separates the segments of a nested key, e.g. user.address.city
	PathSeparator = "."
)

// Vars is the configuration key of rule component variables, exposed to scripts as `vars`.
const Vars = "vars"
