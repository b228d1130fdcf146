package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── PostgreSQL BIGINT[] custom type ──

// IntArray maps a PostgreSQL BIGINT[] column and implements the GORM Scanner/Valuer interfaces.
type IntArray []int64

// Scan parses the {1,2,3} text form returned by PostgreSQL into []int64.
func (a *IntArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	var s string
	switch v := src.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("IntArray.Scan: unsupported type %T", src)
	}
	s = strings.Trim(s, "{}")
	if s == "" {
		*a = IntArray{}
		return nil
	}
	parts := strings.Split(s, ",")
	arr := make(IntArray, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return fmt.Errorf("IntArray.Scan: invalid element %q: %w", p, err)
		}
		arr = append(arr, n)
	}
	*a = arr
	return nil
}

// Value serializes []int64 into the PostgreSQL {1,2,3} text form.
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Contains reports whether id is already in the array.
func (a IntArray) Contains(id int64) bool {
	for _, n := range a {
		if n == id {
			return true
		}
	}
	return false
}

// ── JSONB string list ──

// StringList maps a JSONB array of strings. A nil list is stored as NULL so that
// "not supplied" survives a round trip through the pending entry table.
type StringList []string

// Scan decodes a JSONB array.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	return scanJSON(src, l, "StringList")
}

// Value encodes the list as JSONB.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return valueJSON(l)
}

// Clone returns a copy that does not share the backing array.
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

func scanJSON(src interface{}, dst interface{}, typeName string) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("%s.Scan: unsupported type %T", typeName, src)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s.Scan: %w", typeName, err)
	}
	return nil
}

func valueJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// BaseModel common audit fields embedded by the canonical records
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// VersionedModel audit fields plus an optimistic-lock version counter
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}
