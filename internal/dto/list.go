package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ── 宽松输入类型 ──
// 表单提交的数据常把数组写成单值、把数字写成字符串，这里统一在解码阶段归一

var jsonNull = []byte("null")

// StringList 接受 "a" 或 ["a","b"]
type StringList []string

// UnmarshalJSON 单值归一为单元素数组，空字符串视为空数组
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*l = StringList{}
		return nil
	}
	*l = StringList{s}
	return nil
}

// IntList 接受 1、"1"、[1,"2"]
type IntList []int

// UnmarshalJSON 单值归一为单元素数组，元素允许为数字字符串
func (l *IntList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var raw []Int
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make(IntList, len(raw))
		for i, n := range raw {
			out[i] = int(n)
		}
		*l = out
		return nil
	}
	var n Int
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*l = IntList{int(n)}
	return nil
}

// Int 接受 3 或 "3"
type Int int

// UnmarshalJSON 解析数字或数字字符串
func (n *Int) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(0)}
	}
	*n = Int(v)
	return nil
}

// Number 接受 7.5 或 "7.5"
type Number float64

// UnmarshalJSON 解析数字或数字字符串
func (n *Number) UnmarshalJSON(b []byte) error {
	s, err := scalarText(b)
	if err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(0.0)}
	}
	*n = Number(v)
	return nil
}

// Float64Ptr 转为 *float64，nil 保持 nil
func (n *Number) Float64Ptr() *float64 {
	if n == nil {
		return nil
	}
	v := float64(*n)
	return &v
}

// Date 接受 "2025-06-01" 或 RFC3339 时间
type Date struct {
	time.Time
}

// UnmarshalJSON 空字符串解析为零值
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid date (expected YYYY-MM-DD)", s)
}

// TimePtr 转为 *time.Time，nil 或零值返回 nil
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// scalarText 取出 JSON 数字或字符串的文本，其他类型报错
func scalarText(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, jsonNull) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	if b[0] == '-' || (b[0] >= '0' && b[0] <= '9') {
		return string(b), nil
	}
	return "", &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(0.0)}
}

// ── 工具 ──

// StringPtr 空字符串返回 nil
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
