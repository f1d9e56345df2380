package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spigell/ishmatch/internal/experience"
	"github.com/spigell/ishmatch/internal/match"
)

const (
	FieldID         = "ID"
	FieldEmployerID = "EmployerID"

	uncategorized = "uncategorized"
)

// AIAssessment is the ai_fit verdict attached to an entry.
type AIAssessment struct {
	Fit    bool    `json:"fit"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Entry is a scored job moving through the pipeline.
type Entry struct {
	Job    *match.Job    `json:"job"`
	Result match.Result  `json:"result"`
	AI     *AIAssessment `json:"ai,omitempty"`
}

type Entries struct {
	Items []*Entry `json:"items"`
}

// NewEntries wraps ranked jobs, keeping their order.
func NewEntries(ranked []match.Ranked) *Entries {
	entries := &Entries{Items: make([]*Entry, 0, len(ranked))}
	for _, r := range ranked {
		entries.Items = append(entries.Items, &Entry{Job: r.Job, Result: r.Result})
	}
	return entries
}

func (e *Entries) Len() int {
	return len(e.Items)
}

// Sort orders entries by score, best first, then by job ID.
func (e *Entries) Sort() {
	sort.SliceStable(e.Items, func(i, j int) bool {
		a, b := e.Items[i], e.Items[j]
		if a.Result.Score != b.Result.Score {
			return a.Result.Score > b.Result.Score
		}
		return match.LessID(a.Job.ID, b.Job.ID)
	})
}

func (e *Entries) FindByID(id match.ID) *Entry {
	for _, entry := range e.Items {
		if entry.Job.ID.Equal(id) {
			return entry
		}
	}
	return nil
}

func (en *Entry) stringField(name string) string {
	switch name {
	case FieldID:
		return en.Job.ID.String()
	case FieldEmployerID:
		return en.Job.EmployerID.String()
	default:
		return ""
	}
}

// Exclude removes every entry whose field matches one of targets and
// returns the removed job IDs. Order of the remaining entries is kept.
func (e *Entries) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		if target != "" {
			set[target] = struct{}{}
		}
	}

	var excluded []string
	kept := e.Items[:0]
	for _, entry := range e.Items {
		if _, ok := set[entry.stringField(name)]; ok {
			excluded = append(excluded, entry.Job.ID.String())
			continue
		}
		kept = append(kept, entry)
	}
	e.Items = kept

	return excluded
}

// Filter keeps entries for which keep returns true and returns the
// removed job IDs.
func (e *Entries) Filter(keep func(*Entry) bool) []string {
	var dropped []string
	kept := e.Items[:0]
	for _, entry := range e.Items {
		if keep(entry) {
			kept = append(kept, entry)
			continue
		}
		dropped = append(dropped, entry.Job.ID.String())
	}
	e.Items = kept

	return dropped
}

// ReportByCategory groups entries by category for display.
func (e *Entries) ReportByCategory(lang experience.Lang) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, entry := range e.Items {
		job := entry.Job

		key := job.CategoryID.String()
		if key == "" {
			key = uncategorized
		}

		row := map[string]string{
			"id":       job.ID.String(),
			"title":    job.Title,
			"employer": job.Employer,
			"url":      job.URL,
			"location": job.Location,
			"score":    strconv.Itoa(entry.Result.Score),
		}
		if job.Experience != "" {
			row["experience"] = experience.Label(job.Experience, nil, lang)
		}
		if job.SalaryMin != nil {
			row["salary"] = fmt.Sprintf("from %d", *job.SalaryMin)
		}
		if entry.AI != nil && entry.AI.Reason != "" {
			row["ai"] = entry.AI.Reason
		}

		report[key] = append(report[key], row)
	}
	return report
}

func (e *Entries) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ishmatch_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (e *Entries) ToExcluded() *Excluded {
	now := time.Now().UTC()

	excluded := &Excluded{}
	for _, entry := range e.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         entry.Job.ID.String(),
			URL:        entry.Job.URL,
			Employer:   entry.Job.Employer,
			ExcludedAt: now,
		})
	}
	return excluded
}
