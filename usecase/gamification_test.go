package usecase

import "testing"

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{249, 1},
		{250, 2},
		{499, 2},
		{500, 3},
		{750, 4},
		{1000, 5},
		{1249, 5},
		{1250, 5},
		{5000, 5}, // clamped at MaxLevel
	}

	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestBadgeForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Newbie"},
		{2, "Rising Star"},
		{3, "Achiever"},
		{4, "Pro"},
		{5, "Master"},
	}

	for _, tt := range tests {
		if got := BadgeForLevel(tt.level); got != tt.want {
			t.Errorf("BadgeForLevel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestCompletionAward(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{0, 10},
		{1, 10},
		{2, 10},
		{3, 15}, // 1.5x multiplier from streak 3
		{6, 15},
		{7, 20}, // 2x multiplier from streak 7
		{30, 20},
	}

	for _, tt := range tests {
		if got := CompletionAward(tt.streak); got != tt.want {
			t.Errorf("CompletionAward(streak=%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}
