package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/ai"
	"github.com/spigell/ishmatch/internal/match"
)

// Filter is a single step of the ranking pipeline.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, e *Entries) (*Entries, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger  *zap.Logger
	Profile *match.Profile
	Matcher ai.Matcher
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the settings consumed by the steps.
type Config struct {
	MinScore    int       `mapstructure:"min-score" validate:"gte=0,lte=100"`
	Limit       int       `mapstructure:"limit" validate:"gte=0"`
	Employers   []string  `mapstructure:"exclude-employers"`
	ExcludeFile string    `mapstructure:"exclude-file"`
	AI          *AIConfig `mapstructure:"-"`
}

// AIConfig stores AI-related settings.
type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	MinimumFitScore float64       `mapstructure:"minimum-fit-score" validate:"gte=0,lte=1"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider settings.
type GeminiConfig struct {
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DefaultSteps returns every step in the order they run.
func DefaultSteps() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewEmployers(),
		NewMinScore(),
		NewAIFit(),
		NewLimit(),
	}
}

// DisableByName marks a step as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Pipeline runs steps over ranked entries.
type Pipeline struct {
	cfg   *Config
	deps  Deps
	steps []Filter
}

func New(cfg *Config, deps Deps, steps ...Filter) *Pipeline {
	if cfg == nil {
		cfg = &Config{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if len(steps) == 0 {
		steps = DefaultSteps()
	}

	return &Pipeline{cfg: cfg, deps: deps, steps: steps}
}

// Run validates every enabled step and then applies them in order.
func (p *Pipeline) Run(ctx context.Context, e *Entries) (*Entries, error) {
	for _, step := range p.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(p.cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range p.steps {
		if !step.IsEnabled() {
			p.deps.Logger.Info("step disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, p.deps, e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		p.deps.Logger.Info("ranking step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		e = next
	}

	return e, nil
}

// Describe returns status entries for the pipeline steps.
func (p *Pipeline) Describe() []Status {
	statuses := make([]Status, 0, len(p.steps))
	for _, step := range p.steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func (p *Pipeline) Steps() []Filter {
	return p.steps
}
