// internal/matching/reasons.go
package matching

import (
	"fmt"
	"strings"
)

func headline(score int) string {
	switch {
	case score >= 90:
		return "Excellent match for your profile!"
	case score >= 75:
		return "Great match for your skills and preferences"
	case score >= 60:
		return "Good opportunity to expand your skills"
	}
	return ""
}

// Reasons explains a match result in at most MaxReasons sentences, headline
// first.
func Reasons(profile *UserProfile, in *Internship, result MatchResult) []string {
	reasons := make([]string, 0, MaxReasons+1)

	if h := headline(result.OverallScore); h != "" {
		reasons = append(reasons, h)
	}

	switch n := len(result.SkillsMatched); {
	case n == 1:
		reasons = append(reasons, "You have the required skill: "+result.SkillsMatched[0])
	case n > 1:
		shown := result.SkillsMatched
		if len(shown) > 3 {
			shown = shown[:3]
		}
		reasons = append(reasons, fmt.Sprintf("You have %d matching skills: %s", n, strings.Join(shown, ", ")))
	}

	loc := profile.Preferences.Location
	if loc == RemoteLocation && in.Type == WorkTypeRemote {
		reasons = append(reasons, "Matches your remote work preference")
	} else if loc != "" && containsFold(in.Location, loc) {
		reasons = append(reasons, "Located in your preferred area: "+in.Location)
	}

	if wt := profile.Preferences.WorkType; wt != "" && wt == in.Type {
		reasons = append(reasons, fmt.Sprintf("Matches your %s work preference", in.Type))
	}

	if n := len(result.SkillsGap); n >= 1 && n <= 2 {
		reasons = append(reasons, fmt.Sprintf("Consider learning: %s to be a perfect match", strings.Join(result.SkillsGap, ", ")))
	}

	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	return reasons
}
