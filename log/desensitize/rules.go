package desensitize

import (
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
)

var errEmptyName = errors.New("desensitize: rule name is empty")

// Rule 一条脱敏规则, 作用于单条 JSON 日志
type Rule interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	Process(s string) string
}

// toggle 规则开关, 零值为启用
type toggle struct {
	disabled atomic.Bool
}

func (t *toggle) Enabled() bool { return !t.disabled.Load() }

func (t *toggle) SetEnabled(enabled bool) { t.disabled.Store(!enabled) }

// ContentRule 对整行日志做正则替换, 用于 PEM 块这类不依附字段的内容
type ContentRule struct {
	toggle
	name        string
	pattern     *regexp.Regexp
	replacement string
}

func NewContentRule(name, pattern, replacement string) (*ContentRule, error) {
	if name == "" {
		return nil, errEmptyName
	}
	re, err := compile("pattern", pattern)
	if err != nil {
		return nil, err
	}
	return &ContentRule{name: name, pattern: re, replacement: replacement}, nil
}

// MustNewContentRule 用于包级变量, 模式非法时 panic
func MustNewContentRule(name, pattern, replacement string) *ContentRule {
	return must(NewContentRule(name, pattern, replacement))
}

func (r *ContentRule) Name() string { return r.name }

func (r *ContentRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}
	return r.pattern.ReplaceAllString(s, r.replacement)
}

// FieldRule 按 JSON 字段名定位字符串值, 值中被 pattern 命中的部分替换为 replacement
//
// fieldName 本身是正则, 例如 `private_?[kK]ey` 同时覆盖 snake_case 与 camelCase。
// 非字符串值 (数字、对象) 不处理。
type FieldRule struct {
	toggle
	name        string
	field       *regexp.Regexp // 匹配 "field": "value"
	value       *regexp.Regexp
	replacement string
}

func NewFieldRule(name, fieldName, pattern, replacement string) (*FieldRule, error) {
	if name == "" {
		return nil, errEmptyName
	}
	value, err := compile("pattern", pattern)
	if err != nil {
		return nil, err
	}
	if fieldName == "" {
		return nil, fmt.Errorf("desensitize: rule %s: field name is empty", name)
	}
	field, err := compile("field name", `"(`+fieldName+`)"(\s*:\s*)"([^"]*)"`)
	if err != nil {
		return nil, err
	}
	return &FieldRule{name: name, field: field, value: value, replacement: replacement}, nil
}

// MustNewFieldRule 用于包级变量, 模式非法时 panic
func MustNewFieldRule(name, fieldName, pattern, replacement string) *FieldRule {
	return must(NewFieldRule(name, fieldName, pattern, replacement))
}

func (r *FieldRule) Name() string { return r.name }

func (r *FieldRule) Process(s string) string {
	if !r.Enabled() {
		return s
	}

	return r.field.ReplaceAllStringFunc(s, func(match string) string {
		sub := r.field.FindStringSubmatch(match)
		// 字段名自身可能带分组, 分隔符与值总是最后两组
		n := len(sub)
		if n < 4 {
			return match
		}
		key, sep, value := sub[1], sub[n-2], sub[n-1]
		return `"` + key + `"` + sep + `"` + r.value.ReplaceAllString(value, r.replacement) + `"`
	})
}

func compile(what, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("desensitize: %s is empty", what)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("desensitize: invalid %s %q: %w", what, pattern, err)
	}
	return re, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
