package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ID is an identifier compared by its string form. Reference tables mix
// numeric keys and UUIDs, so 140 and "140" must be the same ID.
type ID string

// ParseID converts a loosely typed identifier to an ID. Integral floats lose
// their fraction so that JSON numbers round-trip to their integer form.
func ParseID(v any) ID {
	switch typed := v.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(typed)))
	case string:
		return ID(strings.TrimSpace(typed))
	case json.Number:
		return ParseID(typed.String())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ID(fmt.Sprintf("%d", typed))
	case float64:
		return ID(formatFloat(typed))
	case float32:
		return ID(formatFloat(float64(typed)))
	case fmt.Stringer:
		return ID(strings.TrimSpace(typed.String()))
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return ParseID(rv.Elem().Interface())
	}

	return ID(strings.TrimSpace(fmt.Sprintf("%v", v)))
}

// Equal reports whether both identifiers are present and the same.
func (id ID) Equal(other ID) bool {
	return id != "" && id == other
}

func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}

	*id = ParseID(raw)
	return nil
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Profile is what a job seeker is looking for.
type Profile struct {
	RegionID          ID     `json:"region_id" mapstructure:"region_id"`
	DistrictID        ID     `json:"district_id,omitempty" mapstructure:"district_id"`
	CategoryID        ID     `json:"category_id,omitempty" mapstructure:"category_id"`
	ExpectedSalaryMin *int64 `json:"expected_salary_min,omitempty" mapstructure:"expected_salary_min"`
	Experience        string `json:"experience,omitempty" mapstructure:"experience"`
}

// Job is a vacancy as seen by the scorer. Title, employer, location,
// description and URL are carried for display only.
type Job struct {
	ID          ID     `json:"id" mapstructure:"id"`
	Title       string `json:"title,omitempty" mapstructure:"title"`
	Employer    string `json:"employer,omitempty" mapstructure:"employer"`
	EmployerID  ID     `json:"employer_id,omitempty" mapstructure:"employer_id"`
	RegionID    ID     `json:"region_id,omitempty" mapstructure:"region_id"`
	DistrictID  ID     `json:"district_id,omitempty" mapstructure:"district_id"`
	CategoryID  ID     `json:"category_id,omitempty" mapstructure:"category_id"`
	SalaryMin   *int64 `json:"salary_min,omitempty" mapstructure:"salary_min"`
	Experience  string `json:"experience,omitempty" mapstructure:"experience"`
	Location    string `json:"location,omitempty" mapstructure:"location"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	URL         string `json:"url,omitempty" mapstructure:"url"`
}

// Factor names used as breakdown keys.
const (
	FactorRegion         = "region"
	FactorNeighborRegion = "neighbor_region"
	FactorDistrict       = "district"
	FactorCategory       = "category"
	FactorSalary         = "salary"
	FactorExperience     = "experience"
)

// Result is a compatibility score and the points each factor contributed.
// Factors that contributed nothing are left out of Breakdown.
type Result struct {
	Score     int            `json:"matchScore"`
	Breakdown map[string]int `json:"breakdown"`
}
