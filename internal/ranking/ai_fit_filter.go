package ranking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/logger"
)

type aiFitFilter struct {
	disabled bool
	reason   string
	config   *AIConfig
}

// NewAIFit creates the step that asks an LLM for a second opinion.
func NewAIFit() Filter {
	return &aiFitFilter{}
}

func (f *aiFitFilter) Name() string { return "ai_fit" }

func (f *aiFitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *aiFitFilter) IsEnabled() bool { return !f.disabled }

func (f *aiFitFilter) Validate(cfg *Config) error {
	f.config = cfg.AI
	if cfg.AI == nil || !cfg.AI.Enabled {
		f.Disable("ai is not enabled in config")
		return nil
	}
	return nil
}

// Apply drops entries the matcher rejects. Entries whose evaluation fails
// are kept with the error recorded.
func (f *aiFitFilter) Apply(ctx context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if !f.IsEnabled() {
		return e, Step{Initial: initial, Left: initial}, nil
	}
	if deps.Matcher == nil {
		deps.Logger.Info("ai matcher is not configured; skipping ai_fit step")
		return e, Step{Initial: initial, Left: initial}, nil
	}
	if deps.Profile == nil {
		return e, Step{}, fmt.Errorf("profile is required for AI evaluation")
	}

	approved := make([]*Entry, 0, initial)
	for _, entry := range e.Items {
		if err := ctx.Err(); err != nil {
			return e, Step{}, err
		}

		log := deps.Logger.With(logger.JobFields(entry.Job.ID.String(), entry.Result.Score)...)

		assessment, err := deps.Matcher.Evaluate(ctx, deps.Profile, entry.Job, entry.Result)
		if err != nil {
			log.Warn("AI evaluation failed", zap.Error(err))
			entry.AI = &AIAssessment{Error: err.Error()}
			approved = append(approved, entry)
			continue
		}

		if !assessment.Fit {
			log.Info("job rejected by AI provider",
				zap.Float64("ai_score", assessment.Score),
				zap.String("reason", assessment.Reason),
			)
			continue
		}

		log.Info("job approved by AI", zap.Float64("ai_score", assessment.Score))
		entry.AI = &AIAssessment{
			Fit:    assessment.Fit,
			Score:  assessment.Score,
			Reason: assessment.Reason,
		}
		approved = append(approved, entry)
	}

	e.Items = approved

	return e, Step{Initial: initial, Dropped: initial - e.Len(), Left: e.Len()}, nil
}

func (f *aiFitFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["minimum_fit_score"] = fmt.Sprintf("%.2f", f.config.MinimumFitScore)
		if f.config.Gemini != nil {
			if model := strings.TrimSpace(f.config.Gemini.Model); model != "" {
				details["model"] = model
			}
			details["max_retries"] = strconv.Itoa(f.config.Gemini.MaxRetries)
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
