package scoring

import "strings"

const (
	// ChallengeStep is the progress added per matching activity, regardless of the
	// challenge's declared numeric target.
	ChallengeStep = 20
	// ChallengeComplete is the progress at which a participation completes.
	ChallengeComplete = 100
)

// ChallengeMatches reports whether an activity counts toward a challenge: either
// its type equals the challenge category, or its action contains the target
// action keyword. Both comparisons ignore case.
func ChallengeMatches(category *string, targetAction, activityType, activityAction string) bool {
	if category != nil && *category != "" && strings.EqualFold(*category, activityType) {
		return true
	}
	target := strings.ToLower(strings.TrimSpace(targetAction))
	if target == "" {
		return false
	}
	return strings.Contains(strings.ToLower(activityAction), target)
}

// AdvanceChallenge adds one step to progress, capped at ChallengeComplete, and
// reports whether the result is complete.
func AdvanceChallenge(progress int) (int, bool) {
	next := min(ChallengeComplete, progress+ChallengeStep)
	return next, next >= ChallengeComplete
}
