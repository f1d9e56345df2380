package match

import "sort"

// Ranked pairs a job with its score.
type Ranked struct {
	Job    *Job
	Result Result
}

// Rank scores jobs with the default weights. See Scorer.Rank.
func Rank(profile *Profile, jobs []*Job) []Ranked {
	return defaultScorer.Rank(profile, jobs)
}

// Rank scores every job and orders them by score, best first. Jobs with the
// same score keep a stable order by ID.
func (s *Scorer) Rank(profile *Profile, jobs []*Job) []Ranked {
	ranked := make([]Ranked, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}
		ranked = append(ranked, Ranked{Job: job, Result: s.Score(profile, job)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Result.Score != ranked[j].Result.Score {
			return ranked[i].Result.Score > ranked[j].Result.Score
		}
		return LessID(ranked[i].Job.ID, ranked[j].Job.ID)
	})

	return ranked
}
