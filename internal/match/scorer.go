package match

import (
	"github.com/spigell/ishmatch/internal/experience"
)

// Weights are the points awarded per factor. Region alone is enough for a
// strong match; everything else refines the ordering.
type Weights struct {
	Region            int `mapstructure:"region" json:"region" validate:"gte=0"`
	NeighborRegion    int `mapstructure:"neighbor-region" json:"neighbor_region" validate:"gte=0,ltefield=Region"`
	District          int `mapstructure:"district" json:"district" validate:"gte=0"`
	Category          int `mapstructure:"category" json:"category" validate:"gte=0"`
	Salary            int `mapstructure:"salary" json:"salary" validate:"gte=0"`
	Experience        int `mapstructure:"experience" json:"experience" validate:"gte=0"`
	ExperiencePartial int `mapstructure:"experience-partial" json:"experience_partial" validate:"gte=0,ltefield=Experience"`
}

// DefaultWeights returns the stock point table:
// region 40, neighbor region 15, district 15, category 20, salary 15,
// experience 10 and 5 when the job asks for one bucket more.
func DefaultWeights() Weights {
	return Weights{
		Region:            40,
		NeighborRegion:    15,
		District:          15,
		Category:          20,
		Salary:            15,
		Experience:        10,
		ExperiencePartial: 5,
	}
}

// Scorer computes match scores. It holds no mutable state and is safe for
// concurrent use.
type Scorer struct {
	weights   Weights
	adjacency *Adjacency
}

// NewScorer creates a scorer. A nil adjacency means the built-in region table.
func NewScorer(weights Weights, adjacency *Adjacency) *Scorer {
	if adjacency == nil {
		adjacency = DefaultAdjacency()
	}

	return &Scorer{
		weights:   weights,
		adjacency: adjacency,
	}
}

var defaultScorer = NewScorer(DefaultWeights(), nil)

// CalculateMatchScore scores job against profile with the default weights.
func CalculateMatchScore(profile *Profile, job *Job) Result {
	return defaultScorer.Score(profile, job)
}

// Score adds up the factor points. Fields missing on either side neither
// add nor subtract anything.
func (s *Scorer) Score(profile *Profile, job *Job) Result {
	result := Result{Breakdown: make(map[string]int)}
	if profile == nil || job == nil {
		return result
	}

	add := func(factor string, points int) {
		if points == 0 {
			return
		}
		result.Breakdown[factor] += points
		result.Score += points
	}

	switch {
	case profile.RegionID.Equal(job.RegionID):
		add(FactorRegion, s.weights.Region)
	case s.adjacency.Adjacent(profile.RegionID, job.RegionID):
		add(FactorNeighborRegion, s.weights.NeighborRegion)
	}

	if profile.DistrictID.Equal(job.DistrictID) {
		add(FactorDistrict, s.weights.District)
	}

	if profile.CategoryID.Equal(job.CategoryID) {
		add(FactorCategory, s.weights.Category)
	}

	add(FactorSalary, s.salaryPoints(profile.ExpectedSalaryMin, job.SalaryMin))
	add(FactorExperience, s.experiencePoints(profile.Experience, job.Experience))

	return result
}

// salaryPoints rewards a job whose minimum covers the expectation. Zero or
// negative amounts mean the amount was not given.
func (s *Scorer) salaryPoints(expected, offered *int64) int {
	if expected == nil || offered == nil || *expected <= 0 || *offered <= 0 {
		return 0
	}
	if *expected <= *offered {
		return s.weights.Salary
	}
	return 0
}

// experiencePoints compares canonical buckets. A job asking for the same or
// less experience than the seeker has scores full points, one bucket more
// scores partial points.
func (s *Scorer) experiencePoints(have, want string) int {
	haveCode, ok := experience.NormalizeCode(have)
	if !ok {
		return 0
	}
	wantCode, ok := experience.NormalizeCode(want)
	if !ok {
		return 0
	}

	switch gap := experience.Rank(wantCode) - experience.Rank(haveCode); {
	case gap <= 0:
		return s.weights.Experience
	case gap == 1:
		return s.weights.ExperiencePartial
	default:
		return 0
	}
}
