package ranking

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

type minScoreFilter struct {
	disabled bool
	reason   string
	min      int
}

// NewMinScore creates a step that drops entries scored under the threshold.
func NewMinScore() Filter {
	return &minScoreFilter{}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Validate(cfg *Config) error {
	if cfg.MinScore < 0 {
		return fmt.Errorf("min score must not be negative, got %d", cfg.MinScore)
	}
	f.min = cfg.MinScore
	return nil
}

func (f *minScoreFilter) Apply(_ context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if f.min <= 0 {
		return e, Step{Initial: initial, Left: initial}, nil
	}

	dropped := e.Filter(func(entry *Entry) bool {
		return entry.Result.Score >= f.min
	})
	if len(dropped) > 0 {
		deps.Logger.Debug("excluding jobs under the minimum score",
			zap.Int("min_score", f.min),
			zap.Strings("excluded_jobs", dropped),
		)
	}

	return e, Step{Initial: initial, Dropped: len(dropped), Left: e.Len()}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.min)},
	}
}
