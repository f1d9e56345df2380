package headhunter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/textclean"
)

type Vacancies struct {
	Items []*Vacancy
}

type Reference struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Area struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type Address struct {
	City   string `json:"city,omitempty"`
	Street string `json:"street,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

type Salary struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
	Gross    bool   `json:"gross,omitempty"`
}

type Employer struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Trusted      bool   `json:"trusted,omitempty"`
}

type Snippet struct {
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type Vacancy struct {
	ID                string      `json:"id,omitempty"`
	Name              string      `json:"name,omitempty"`
	Area              Area        `json:"area,omitempty"`
	Address           Address     `json:"address,omitempty"`
	Salary            Salary      `json:"salary,omitempty"`
	Experience        Reference   `json:"experience,omitempty"`
	Schedule          Reference   `json:"schedule,omitempty"`
	Employment        Reference   `json:"employment,omitempty"`
	Employer          Employer    `json:"employer,omitempty"`
	ProfessionalRoles []Reference `json:"professional_roles,omitempty"`
	Snippet           Snippet     `json:"snippet,omitempty"`
	Description       string      `json:"description,omitempty"`
	AlternateURL      string      `json:"alternate_url,omitempty"`
	Archived          bool        `json:"archived,omitempty"`
	PublishedAt       string      `json:"published_at,omitempty"`
}

// Mapping translates hh reference ids into the board's own ids. Unmapped
// ids are passed through unchanged.
type Mapping struct {
	// Areas maps an hh area id to a region id.
	Areas map[string]string `mapstructure:"areas"`
	// Districts maps an hh area id (usually a city) to a district id.
	Districts map[string]string `mapstructure:"districts"`
	// Categories maps an hh professional role id to a category id.
	Categories map[string]string `mapstructure:"categories"`
	// Currency is the only salary currency that is compared. Empty accepts any.
	Currency string `mapstructure:"currency"`
}

func (m *Mapping) region(areaID string) match.ID {
	if m != nil {
		if mapped, ok := m.Areas[areaID]; ok {
			return match.ParseID(mapped)
		}
	}
	return match.ParseID(areaID)
}

func (m *Mapping) district(areaID string) match.ID {
	if m == nil {
		return ""
	}
	return match.ParseID(m.Districts[areaID])
}

func (m *Mapping) category(roleID string) match.ID {
	if m != nil {
		if mapped, ok := m.Categories[roleID]; ok {
			return match.ParseID(mapped)
		}
	}
	return match.ParseID(roleID)
}

func (m *Mapping) acceptsCurrency(currency string) bool {
	return m == nil || m.Currency == "" || strings.EqualFold(m.Currency, currency)
}

// GetVacancy returns a vacancy with its full description.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var raw map[string]any
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id), nil, &raw); err != nil {
		return nil, err
	}

	vacancies, err := decodeVacancies([]Item{raw})
	if err != nil {
		return nil, err
	}
	if len(vacancies) == 0 || vacancies[0] == nil {
		return nil, fmt.Errorf("vacancy %s: empty response", id)
	}

	return vacancies[0], nil
}

// Describe fills in missing descriptions from the vacancy endpoint. A
// vacancy whose details cannot be fetched keeps its search snippet.
func (c *Client) Describe(ctx context.Context, vacancies *Vacancies) error {
	workers := c.Workers
	if workers <= 0 {
		workers = defaultDescribeWorkers
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, vacancy := range vacancies.Items {
		if vacancy == nil || vacancy.Description != "" {
			continue
		}

		g.Go(func() error {
			full, err := c.GetVacancy(gCtx, vacancy.ID)
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				c.logger.Debug("fetching detailed vacancy failed",
					zap.String("vacancy_id", vacancy.ID),
					zap.Error(err),
				)
				return nil
			}
			vacancies.Items[idx] = full
			return nil
		})
	}

	return g.Wait()
}

// ToJob converts a vacancy into the scorer's job record.
func (va *Vacancy) ToJob(m *Mapping) *match.Job {
	job := &match.Job{
		ID:         match.ParseID(va.ID),
		Title:      strings.TrimSpace(va.Name),
		Employer:   strings.TrimSpace(va.Employer.Name),
		EmployerID: match.ParseID(va.Employer.ID),
		Experience: va.Experience.ID,
		URL:        va.AlternateURL,
	}

	if va.Area.ID != "" {
		job.RegionID = m.region(va.Area.ID)
		job.DistrictID = m.district(va.Area.ID)
	}

	if len(va.ProfessionalRoles) > 0 {
		job.CategoryID = m.category(va.ProfessionalRoles[0].ID)
	}

	if va.Salary.From > 0 && m.acceptsCurrency(va.Salary.Currency) {
		from := int64(va.Salary.From)
		job.SalaryMin = &from
	}

	location := va.Address.Raw
	if location == "" {
		location = va.Area.Name
	}
	job.Location = textclean.NormalizeLocation(location)

	description := va.Description
	if description == "" {
		description = strings.Join([]string{va.Snippet.Requirement, va.Snippet.Responsibility}, "\n")
	}
	job.Description = textclean.CleanJobText(description)

	return job
}

// ToJobs converts every vacancy, skipping archived ones.
func (v *Vacancies) ToJobs(m *Mapping) []*match.Job {
	jobs := make([]*match.Job, 0, len(v.Items))
	for _, vacancy := range v.Items {
		if vacancy == nil || vacancy.Archived {
			continue
		}
		jobs = append(jobs, vacancy.ToJob(m))
	}
	return jobs
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}
