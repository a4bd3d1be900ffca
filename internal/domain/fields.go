package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields 有序键值映射（按插入顺序 / JSON 文档顺序迭代）
// 反馈表单的评分项、评论项由餐厅配置决定，键集合不固定，
// 展示时必须保持后端返回的顺序。
//
// 值保持 JSON 解码后的动态类型：数字为 float64，字符串为 string，
// null 为 nil，其它为 map[string]any / []any。
type Fields struct {
	keys   []string
	values map[string]any
}

// Field 单个键值对
type Field struct {
	Key   string
	Value any
}

// NewFields 按参数顺序构建 Fields（后出现的重复键覆盖值，位置不变）
func NewFields(pairs ...Field) Fields {
	var f Fields
	for _, p := range pairs {
		f.Set(p.Key, p.Value)
	}
	return f
}

// Set 写入键值；已有键只更新值，不改变顺序
func (f *Fields) Set(key string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get 读取值
func (f Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f Fields) Len() int { return len(f.keys) }

// Keys 返回键的副本
func (f Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Entries 按插入顺序返回全部键值对
func (f Fields) Entries() []Field {
	out := make([]Field, 0, len(f.keys))
	for _, k := range f.keys {
		out = append(out, Field{Key: k, Value: f.values[k]})
	}
	return out
}

// Number 读取数值；非数字返回 false
func (f Fields) Number(key string) (float64, bool) {
	v, ok := f.values[key].(float64)
	return v, ok
}

// UnmarshalJSON 非对象的值（数组、字符串、数字）按空映射处理
func (f *Fields) UnmarshalJSON(data []byte) error {
	*f = Fields{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: expected string key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("fields: decode %q: %w", key, err)
		}
		f.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, fmt.Errorf("fields: encode %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
