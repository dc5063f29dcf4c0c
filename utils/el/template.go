// Package el evaluates ${...} templates against a record environment with expr.
package el

import (
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rulego/rowparser/utils/cast"
)

const (
	VarPrefix = "${"
	VarSuffix = "}"
)

type Template interface {
	Parse() error
	Execute(data map[string]any) (interface{}, error)
	// HasVar 是否有变量
	HasVar() bool
}

// CheckHasVar reports whether s contains a ${...} variable.
func CheckHasVar(s string) bool {
	i := strings.Index(s, VarPrefix)
	return i >= 0 && strings.Contains(s[i:], VarSuffix)
}

// NewTemplate picks the template kind:
// a string that is exactly one ${expr} keeps the type of the expression result,
// a string mixing text and variables renders to a string,
// anything else is returned as is.
func NewTemplate(tmpl any) (Template, error) {
	if v, ok := tmpl.(string); ok {
		trimV := strings.TrimSpace(v)
		if strings.HasPrefix(trimV, VarPrefix) && strings.HasSuffix(trimV, VarSuffix) &&
			strings.Count(trimV, VarPrefix) == 1 {
			return NewExprTemplate(trimV)
		} else if CheckHasVar(v) {
			return NewMixedTemplate(v)
		} else {
			return &NotTemplate{Tmpl: v}, nil
		}
	}
	return &AnyTemplate{Tmpl: tmpl}, nil
}

// ExprTemplate evaluates a single ${expr}, result type preserved.
type ExprTemplate struct {
	Tmpl    string
	Program *vm.Program
}

var re = regexp.MustCompile(`\$\{([^}]*)\}`)

func NewExprTemplate(tmpl string) (*ExprTemplate, error) {
	t := &ExprTemplate{Tmpl: re.ReplaceAllString(tmpl, "$1")}
	if err := t.Parse(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *ExprTemplate) Parse() error {
	if program, err := expr.Compile(t.Tmpl, expr.AllowUndefinedVariables()); err != nil {
		return err
	} else {
		t.Program = program
	}
	return nil
}

func (t *ExprTemplate) Execute(data map[string]any) (interface{}, error) {
	if t.Program != nil {
		// vm.VM is not safe for concurrent use, one per call.
		var machine vm.VM
		return machine.Run(t.Program, data)
	}
	return nil, nil
}

func (t *ExprTemplate) HasVar() bool {
	return true
}

// NotTemplate 原样输出
type NotTemplate struct {
	Tmpl string
}

func (t *NotTemplate) Parse() error {
	return nil
}

func (t *NotTemplate) Execute(data map[string]any) (interface{}, error) {
	return t.Tmpl, nil
}

func (t *NotTemplate) HasVar() bool {
	return false
}

type AnyTemplate struct {
	Tmpl any
}

func (t *AnyTemplate) Parse() error {
	return nil
}

func (t *AnyTemplate) Execute(data map[string]any) (interface{}, error) {
	return t.Tmpl, nil
}

func (t *AnyTemplate) HasVar() bool {
	return false
}

type templateVar struct {
	start   int
	end     int
	program *vm.Program
}

// MixedTemplate 支持混合字符串和变量的模板，格式如 ${first} ${last}
type MixedTemplate struct {
	Tmpl      string
	variables []templateVar
}

func NewMixedTemplate(tmpl string) (*MixedTemplate, error) {
	t := &MixedTemplate{Tmpl: tmpl}
	if err := t.Parse(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *MixedTemplate) Parse() error {
	t.variables = t.variables[:0]
	for _, loc := range re.FindAllStringSubmatchIndex(t.Tmpl, -1) {
		program, err := expr.Compile(t.Tmpl[loc[2]:loc[3]], expr.AllowUndefinedVariables())
		if err != nil {
			return err
		}
		t.variables = append(t.variables, templateVar{start: loc[0], end: loc[1], program: program})
	}
	return nil
}

func (t *MixedTemplate) Execute(data map[string]any) (interface{}, error) {
	if len(t.variables) == 0 {
		return t.Tmpl, nil
	}
	var sb strings.Builder
	var machine vm.VM
	lastPos := 0
	for _, v := range t.variables {
		sb.WriteString(t.Tmpl[lastPos:v.start])
		val, err := machine.Run(v.program, data)
		if err != nil {
			return nil, err
		}
		sb.WriteString(cast.ToString(val))
		lastPos = v.end
	}
	sb.WriteString(t.Tmpl[lastPos:])
	return sb.String(), nil
}

func (t *MixedTemplate) HasVar() bool {
	return len(t.variables) > 0
}
