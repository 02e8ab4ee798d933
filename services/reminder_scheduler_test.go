package services

import "testing"

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"07:30", "30 7 * * *", false},
		{"00:00", "0 0 * * *", false},
		{"23:59", "59 23 * * *", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := buildDailySpec(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("buildDailySpec(%q) should fail", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("buildDailySpec(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("buildDailySpec(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSchedulerCancelUnknownKey(t *testing.T) {
	s := NewReminderScheduler(nil, nil)
	// Cancelling something never scheduled must be a no-op
	s.Cancel("habit:missing")
}

func TestSchedulerReplaceDaily(t *testing.T) {
	s := NewReminderScheduler(nil, nil)

	if err := s.ScheduleDaily("habit:x", "08:00", func() {}); err != nil {
		t.Fatalf("first schedule failed: %v", err)
	}
	if err := s.ScheduleDaily("habit:x", "09:00", func() {}); err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}

	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	if n != 1 {
		t.Errorf("got %d cron entries, want 1 after replacing the same key", n)
	}
}
