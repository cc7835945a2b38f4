package setting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingValidate(t *testing.T) {
	cases := []struct {
		name    string
		setting Setting
		wantErr error
	}{
		{"number ok", Setting{Key: "K", Value: "8.5", Type: TypeNumber}, nil},
		{"number bad", Setting{Key: "K", Value: "eight", Type: TypeNumber}, ErrValueNotNumber},
		{"boolean ok", Setting{Key: "K", Value: "True", Type: TypeBoolean}, nil},
		{"boolean bad", Setting{Key: "K", Value: "yes", Type: TypeBoolean}, ErrValueNotBoolean},
		{"time with seconds", Setting{Key: "K", Value: "09:30:00", Type: TypeTime}, nil},
		{"time without seconds", Setting{Key: "K", Value: "09:30", Type: TypeTime}, nil},
		{"time bad", Setting{Key: "K", Value: "25:61", Type: TypeTime}, ErrValueNotTime},
		{"json ok", Setting{Key: "K", Value: `{"a":1}`, Type: TypeJSON}, nil},
		{"json bad", Setting{Key: "K", Value: "{", Type: TypeJSON}, ErrValueNotJSON},
		{"string anything", Setting{Key: "K", Value: "", Type: TypeString}, nil},
		{"unknown type", Setting{Key: "K", Value: "x", Type: ValueType("BLOB")}, ErrUnknownValueType},
	}

	for _, c := range cases {
		err := c.setting.Validate()
		if c.wantErr == nil {
			assert.NoError(t, err, c.name)
		} else {
			assert.ErrorIs(t, err, c.wantErr, c.name)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	got, err := ParseClockTime("09:30")
	assert.NoError(t, err)
	assert.Equal(t, "09:30:00", got.Format("15:04:05"))

	got, err = ParseClockTime("23:59:59")
	assert.NoError(t, err)
	assert.Equal(t, "23:59:59", got.Format("15:04:05"))

	_, err = ParseClockTime("9.30")
	assert.Error(t, err)
}
