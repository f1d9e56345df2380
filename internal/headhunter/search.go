package headhunter

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath = "/vacancies"
)

// SearchParams mirrors the query of GET /vacancies.
type SearchParams struct {
	Text string `yaml:"text"`
	// hhparam is custom tag for reflect. Please see below.
	Areas             []string `hhparam:"area"`
	ProfessionalRoles []string `hhparam:"professional_role" mapstructure:"professional_roles"`
	Schedules         []string `hhparam:"schedule"`
	OrderBy           string   `yaml:"order_by" mapstructure:"order_by"`
	SearchField       string   `yaml:"search_field" mapstructure:"search_field"`
	Experience        string   `yaml:"experience"`
	Salary            uint     `yaml:"salary"`
	Currency          string   `yaml:"currency"`
	OnlyWithSalary    bool     `yaml:"only_with_salary" mapstructure:"only_with_salary"`
	Period            uint     `yaml:"period"`
	PerPage           string   `yaml:"per_page" mapstructure:"per_page"`
}

// Search returns vacancies of every result page.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*Vacancies, error) {
	if params == nil {
		params = &SearchParams{}
	}

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	q := buildParams(params)
	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	items, err := c.GetItems(ctx, apiURLSearch, q)
	if err != nil {
		return nil, err
	}

	vacancies, err := decodeVacancies(items)
	if err != nil {
		return nil, err
	}

	return &Vacancies{Items: vacancies}, nil
}

func decodeVacancies(items []Item) ([]*Vacancy, error) {
	var vacancies []*Vacancy

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &vacancies,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}

	return vacancies, nil
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		// Our custom tag is used here.
		key := field.Tag.Get("hhparam")
		if key == "" {
			// Fall back to the yaml tag if ours does not exist.
			key = field.Tag.Get("yaml")
		}
		if key == "" {
			continue
		}

		value := reflect.ValueOf(params).Elem().Field(field.Index[0])
		switch field.Type.Kind() {
		case reflect.Slice:
			switch v := value.Interface().(type) {
			case []int:
				for _, item := range v {
					q.Add(key, strconv.Itoa(item))
				}
			case []string:
				for _, item := range v {
					if item != "" {
						q.Add(key, item)
					}
				}
			}

		case reflect.Bool:
			if value.Bool() {
				q.Set(key, "true")
			}

		default:
			formatted := fmt.Sprintf("%v", value.Interface())
			if formatted != "" && formatted != "0" {
				q.Set(key, formatted)
			}
		}
	}

	return q
}
