package setting

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueType is the declared type tag of a setting. Values are validated
// against their tag at write time so readers can trust it.
type ValueType string

const (
	TypeNumber  ValueType = "NUMBER"
	TypeBoolean ValueType = "BOOLEAN"
	TypeTime    ValueType = "TIME"
	TypeString  ValueType = "STRING"
	TypeJSON    ValueType = "JSON"
)

type Setting struct {
	Key       string
	Value     string
	Type      ValueType
	UpdatedBy *string
	UpdatedAt time.Time
}

// timeLayouts accepted for TIME values: ISO clock time with optional seconds.
var timeLayouts = []string{"15:04:05", "15:04"}

// ParseClockTime parses an ISO HH:mm[:ss] clock time.
func ParseClockTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Validate checks that the stored value is parseable as the declared type.
func (s Setting) Validate() error {
	switch s.Type {
	case TypeNumber:
		if _, err := decimal.NewFromString(s.Value); err != nil {
			return ErrValueNotNumber
		}
	case TypeBoolean:
		v := strings.ToLower(s.Value)
		if v != "true" && v != "false" {
			return ErrValueNotBoolean
		}
	case TypeTime:
		if _, err := ParseClockTime(s.Value); err != nil {
			return ErrValueNotTime
		}
	case TypeString:
		// Any string is valid.
	case TypeJSON:
		if !json.Valid([]byte(s.Value)) {
			return ErrValueNotJSON
		}
	default:
		return ErrUnknownValueType
	}
	return nil
}
