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

package transform

//规则配置示例：
//{
//	"name": "mobile",
//	"type": "mask",
//	"configuration": {
//		"field": "mobile",
//		"kind": "mobile",
//		"start": 3,
//		"end": 7
//	}
//}
import (
	"fmt"
	"strings"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/cast"
	"github.com/rulego/rowparser/utils/maps"
	"github.com/rulego/rowparser/utils/mask"
)

// Mask kinds.
const (
	MaskKindMobile = "mobile"
	MaskKindName   = "name"
	MaskKindQq     = "qq"
)

func init() {
	Registry.Add(&MaskRule{})
}

// MaskRuleConfiguration 规则配置
type MaskRuleConfiguration struct {
	// Field 脱敏的字段，支持嵌套路径
	Field string
	// Kind 脱敏类型: mobile, name, qq
	Kind string
	// Start 手机号保留的前缀长度
	Start int
	// End 手机号脱敏结束位置
	End int
	// Mode 姓名脱敏模式: center 保留首尾，其他值只隐藏首字
	Mode string
}

// MaskRule 对记录字段脱敏
// 字段不存在时返回nil
type MaskRule struct {
	Config MaskRuleConfiguration
}

// Type 组件类型
func (x *MaskRule) Type() string {
	return "mask"
}

func (x *MaskRule) New() types.RuleComponent {
	return &MaskRule{Config: MaskRuleConfiguration{
		Kind:  MaskKindMobile,
		Start: mask.DefaultMobileStart,
		End:   mask.DefaultMobileEnd,
		Mode:  mask.NameModeCenter,
	}}
}

// Init 初始化
func (x *MaskRule) Init(_ types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	x.Config.Kind = strings.ToLower(strings.TrimSpace(x.Config.Kind))
	switch x.Config.Kind {
	case MaskKindMobile, MaskKindName, MaskKindQq:
	default:
		return fmt.Errorf("unsupported mask kind=%s", x.Config.Kind)
	}
	if strings.TrimSpace(x.Config.Field) == "" {
		return ErrPathEmpty
	}
	return nil
}

func (x *MaskRule) Compute(row *types.Record) (any, error) {
	v := maps.GetValueRecursively(row, x.Config.Field, nil, "")
	if v == nil {
		return nil, nil
	}
	s := cast.ToString(v)
	switch x.Config.Kind {
	case MaskKindName:
		return mask.HideName(s, x.Config.Mode), nil
	case MaskKindQq:
		return mask.HideQq(s), nil
	default:
		return mask.HideMobile(s, x.Config.Start, x.Config.End), nil
	}
}
