package setting

import "errors"

// Setting domain errors
var (
	ErrSettingNotFound  = errors.New("setting not found")
	ErrUnknownValueType = errors.New("unknown setting value type")
	ErrValueNotNumber   = errors.New("value is not a valid number")
	ErrValueNotBoolean  = errors.New("value is not a valid boolean")
	ErrValueNotTime     = errors.New("value is not a valid HH:mm[:ss] time")
	ErrValueNotJSON     = errors.New("value is not valid JSON")
)
