package ranking

import (
	"context"
	"strconv"
)

type limitFilter struct {
	disabled bool
	reason   string
	limit    int
}

// NewLimit creates a step that keeps only the best entries.
func NewLimit() Filter {
	return &limitFilter{}
}

func (f *limitFilter) Name() string { return "limit" }

func (f *limitFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *limitFilter) IsEnabled() bool { return !f.disabled }

func (f *limitFilter) Validate(cfg *Config) error {
	f.limit = cfg.Limit
	return nil
}

func (f *limitFilter) Apply(_ context.Context, _ Deps, e *Entries) (*Entries, Step, error) {
	initial := e.Len()
	if f.limit <= 0 || initial <= f.limit {
		return e, Step{Initial: initial, Left: initial}, nil
	}

	e.Sort()
	e.Items = e.Items[:f.limit]

	return e, Step{Initial: initial, Dropped: initial - f.limit, Left: e.Len()}, nil
}

func (f *limitFilter) Status() Status {
	details := map[string]string{}
	if f.limit > 0 {
		details["limit"] = strconv.Itoa(f.limit)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
