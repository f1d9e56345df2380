package ai

import (
	"context"

	"github.com/spigell/ishmatch/internal/match"
)

// FitAssessment is a model's opinion about one job for one profile.
type FitAssessment struct {
	Fit    bool    `json:"fit"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
	Raw    string  `json:"-"`
}

// Matcher gives a second opinion on a job that the scorer already ranked.
type Matcher interface {
	Evaluate(ctx context.Context, profile *match.Profile, job *match.Job, result match.Result) (*FitAssessment, error)
}
