package ranking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/match"
)

type employersFilter struct {
	disabled  bool
	reason    string
	employers []string
}

// NewEmployers creates a step that removes jobs of the configured
// employers, given by employer id or name.
func NewEmployers() Filter {
	return &employersFilter{}
}

func (f *employersFilter) Name() string { return "employers" }

func (f *employersFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *employersFilter) IsEnabled() bool { return !f.disabled }

func (f *employersFilter) Validate(cfg *Config) error {
	f.employers = nil
	for _, employer := range cfg.Employers {
		if employer = strings.TrimSpace(employer); employer != "" {
			f.employers = append(f.employers, employer)
		}
	}
	return nil
}

func (f *employersFilter) Apply(_ context.Context, deps Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if !f.IsEnabled() || len(f.employers) == 0 {
		return e, Step{Initial: initial, Left: initial}, nil
	}

	excluded := e.Filter(func(entry *Entry) bool {
		return !f.matches(entry.Job)
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs by employers",
			zap.Strings("excluded_employers", f.employers),
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", e.Len()),
		)
	}

	return e, Step{Initial: initial, Dropped: len(excluded), Left: e.Len()}, nil
}

// matches reports whether the job's employer is listed either by id or by
// name. Names are compared case-insensitively.
func (f *employersFilter) matches(job *match.Job) bool {
	for _, employer := range f.employers {
		if job.EmployerID.String() == employer || strings.EqualFold(strings.TrimSpace(job.Employer), employer) {
			return true
		}
	}
	return false
}

func (f *employersFilter) Status() Status {
	details := map[string]string{}
	if len(f.employers) > 0 {
		details["employers"] = strings.Join(f.employers, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
