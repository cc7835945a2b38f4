package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidSettingKey(t *testing.T) {
	valid := []string{"MINIMUM_WORK_HOURS_PER_DAY", "LATE_LOGIN_THRESHOLD_TIME", "A", "KEY_2"}
	invalid := []string{"", "lowercase", "Mixed_Case", "_LEADING", "2LEADING", "HAS SPACE", "HAS-DASH"}
	for _, key := range valid {
		if !IsValidSettingKey(key) {
			t.Errorf("IsValidSettingKey(%q) = false, want true", key)
		}
	}
	for _, key := range invalid {
		if IsValidSettingKey(key) {
			t.Errorf("IsValidSettingKey(%q) = true, want false", key)
		}
	}
}
