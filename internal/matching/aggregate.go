// internal/matching/aggregate.go
package matching

import "math"

const (
	skillsWeight   = 0.40
	locationWeight = 0.20
	workTypeWeight = 0.15
	interestWeight = 0.15
	companyWeight  = 0.10
)

func Aggregate(b Breakdown) int {
	return int(math.Round(
		float64(b.SkillsScore)*skillsWeight +
			float64(b.LocationScore)*locationWeight +
			float64(b.WorkTypeScore)*workTypeWeight +
			float64(b.InterestScore)*interestWeight +
			float64(b.CompanyScore)*companyWeight))
}

// MatchOne scores a single internship for a profile. Neither argument is
// modified.
func MatchOne(profile *UserProfile, in *Internship) MatchResult {
	skills := MatchSkills(profile.Skills, in.Requirements)

	b := Breakdown{
		SkillsScore:   skills.Score,
		LocationScore: ScoreLocation(profile.Preferences, in),
		WorkTypeScore: ScoreWorkType(profile.Preferences, in),
		InterestScore: ScoreInterests(profile.Interests, in),
		CompanyScore:  ScoreCompany(profile.Preferences, in),
	}

	return MatchResult{
		OverallScore:  Aggregate(b),
		Breakdown:     b,
		SkillsMatched: skills.Matched,
		SkillsGap:     skills.Gap,
	}
}
