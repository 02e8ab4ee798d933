package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abc1!x", true},
		{"short", false},
		{"noNumbers!", false},
		{"noSpecial1", false},
		{"a1!", false}, // too short
		{"longenough1#", true},
	}

	for _, tt := range tests {
		if got := ValidatePassword(tt.password); got != tt.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestValidateReminderTime(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"07:30", true},
		{"24:00", false},
		{"12:60", false},
		{"7:3", true}, // single digits parse fine
		{"12", false},
		{"ab:cd", false},
		{"12:30:15", false},
	}

	for _, tt := range tests {
		if got := ValidateReminderTime(tt.value); got != tt.want {
			t.Errorf("ValidateReminderTime(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
