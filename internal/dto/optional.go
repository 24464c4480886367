package dto

import (
	"bytes"
	"encoding/json"
)

// OptionalString 区分「字段缺省」与「显式 null」的可空字符串
// Set 为 true 表示请求体中出现了该字段；此时 Value 为 nil 即显式清空
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 仅在字段出现时被调用
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// MarshalJSON 输出 null 或字符串
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Some 构造已设置的 OptionalString（测试与内部调用使用）
func Some(v string) OptionalString { return OptionalString{Set: true, Value: &v} }

// Null 构造显式清空的 OptionalString
func Null() OptionalString { return OptionalString{Set: true} }

// StringPtr 返回字符串指针
func StringPtr(s string) *string { return &s }
