// internal/matching/skills.go
package matching

import (
	"math"
	"strings"
)

const (
	directWeight  = 1.0
	partialWeight = 0.7
	relatedWeight = 0.5
)

// skillRelations maps a normalized user skill to requirements it counts
// toward as a related match.
var skillRelations = map[string][]string{
	"javascript": {"react", "node.js", "vue", "angular", "express"},
	"python":     {"django", "flask", "pandas", "numpy", "scikit-learn"},
	"java":       {"spring", "hibernate", "maven", "gradle"},
	"react":      {"javascript", "jsx", "redux", "next.js"},
	"node.js":    {"javascript", "express", "mongodb", "npm"},
	"sql":        {"mysql", "postgresql", "database", "oracle"},
	"aws":        {"cloud", "ec2", "s3", "lambda", "devops"},
	"docker":     {"kubernetes", "devops", "containerization"},
	"git":        {"github", "version control", "gitlab", "bitbucket"},
}

type SkillMatch struct {
	Score   int
	Matched []string
	Gap     []string
}

// MatchSkills scores user skills against an internship's requirements.
// Matched holds user skills in their original casing, de-duplicated in
// first-seen order. Gap holds requirements that got no direct, partial or
// related match, in input order and original casing.
func MatchSkills(userSkills, requirements []string) SkillMatch {
	if len(userSkills) == 0 || len(requirements) == 0 {
		return SkillMatch{
			Score:   0,
			Matched: []string{},
			Gap:     append([]string{}, requirements...),
		}
	}

	skills := normalizeAll(userSkills)
	reqs := normalizeAll(requirements)

	var total float64
	matched := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	gap := make([]string, 0)

	addMatched := func(i int) {
		if !seen[userSkills[i]] {
			seen[userSkills[i]] = true
			matched = append(matched, userSkills[i])
		}
	}

	for ri, req := range reqs {
		if di := indexOf(skills, req); di >= 0 {
			total += directWeight
			addMatched(di)
			continue
		}

		firstPartial := -1
		for si, skill := range skills {
			if isPartial(skill, req) {
				total += partialWeight
				if firstPartial < 0 {
					firstPartial = si
				}
			}
		}
		if firstPartial >= 0 {
			addMatched(firstPartial)
		}

		related := 0
		for _, skill := range skills {
			if contains(skillRelations[skill], req) {
				total += relatedWeight
				related++
			}
		}

		if firstPartial < 0 && related == 0 {
			gap = append(gap, requirements[ri])
		}
	}

	pct := math.Min(total/float64(len(reqs))*100, 100)
	return SkillMatch{
		Score:   int(math.Round(pct)),
		Matched: matched,
		Gap:     gap,
	}
}

func isPartial(skill, req string) bool {
	return strings.Contains(skill, req) || strings.Contains(req, skill)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	return indexOf(list, s) >= 0
}
