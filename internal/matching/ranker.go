// internal/matching/ranker.go
package matching

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// Ranker scores a catalog and orders it by overall score. Parallelism above
// one scores entries concurrently; the output order does not depend on it.
type Ranker struct {
	Parallelism int
}

func NewRanker(parallelism int) *Ranker {
	return &Ranker{Parallelism: parallelism}
}

// Recommend returns up to limit recommendations sorted by overall score,
// ties kept in catalog order. Nil catalog entries are skipped.
func (r *Ranker) Recommend(profile *UserProfile, catalog []*Internship, limit int) []Recommendation {
	if limit <= 0 {
		return []Recommendation{}
	}

	scored := make([]*Recommendation, len(catalog))
	r.each(catalog, func(i int, in *Internship) {
		match := MatchOne(profile, in)
		scored[i] = &Recommendation{
			Internship: Summarize(in),
			Match:      match,
			Reasons:    Reasons(profile, in, match),
		}
	})

	out := make([]Recommendation, 0, len(scored))
	for _, rec := range scored {
		if rec != nil {
			out = append(out, *rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Match.OverallScore > out[j].Match.OverallScore
	})

	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

// MatchBulk scores every entry and sorts descending. A nil entry stands for
// an internship that could not be loaded and is left out of the result.
func (r *Ranker) MatchBulk(profile *UserProfile, internships []*Internship) []BulkMatch {
	scored := make([]*BulkMatch, len(internships))
	r.each(internships, func(i int, in *Internship) {
		scored[i] = &BulkMatch{
			InternshipID: in.ID,
			Title:        in.Title,
			Company:      in.Company,
			MatchResult:  MatchOne(profile, in),
		}
	})

	out := make([]BulkMatch, 0, len(scored))
	for _, m := range scored {
		if m != nil {
			out = append(out, *m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return out
}

func (r *Ranker) each(catalog []*Internship, fn func(int, *Internship)) {
	if r == nil || r.Parallelism <= 1 {
		for i, in := range catalog {
			if in != nil {
				fn(i, in)
			}
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(r.Parallelism)
	for i, in := range catalog {
		if in == nil {
			continue
		}
		i, in := i, in
		g.Go(func() error {
			fn(i, in)
			return nil
		})
	}
	_ = g.Wait()
}

// Recommend ranks sequentially.
func Recommend(profile *UserProfile, catalog []*Internship, limit int) []Recommendation {
	return (*Ranker)(nil).Recommend(profile, catalog, limit)
}

func MatchBulk(profile *UserProfile, internships []*Internship) []BulkMatch {
	return (*Ranker)(nil).MatchBulk(profile, internships)
}
