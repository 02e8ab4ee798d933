package usecase

// Points and leveling constants. The award multipliers are documented in the
// app's help text and must stay in sync with any points migration tooling.
const (
	BasePointsPerCompletion = 10
	BadgeThreshold          = 250
	MaxLevel                = 5
	MaxPoints               = 1250
)

var badgeNames = [MaxLevel]string{"Newbie", "Rising Star", "Achiever", "Pro", "Master"}

// LevelForPoints maps a cumulative points counter to a level, clamped at
// MaxLevel.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	level := points/BadgeThreshold + 1
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// BadgeForLevel returns the badge label for a level (1..MaxLevel).
func BadgeForLevel(level int) string {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return badgeNames[level-1]
}

// CompletionAward returns the points earned for logging a completion, given
// the habit's current streak after that completion: 10 base, 1.5x from a
// 3-day streak, 2x from a 7-day streak.
func CompletionAward(streak int) int {
	switch {
	case streak >= 7:
		return BasePointsPerCompletion * 2
	case streak >= 3:
		return BasePointsPerCompletion * 3 / 2
	default:
		return BasePointsPerCompletion
	}
}
