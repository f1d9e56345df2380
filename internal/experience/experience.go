package experience

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Code is a canonical experience bucket.
type Code string

const (
	NoExperience Code = "1"
	UpToOneYear  Code = "2"
	OneToThree   Code = "3"
	ThreeToFive  Code = "4"
	MoreThanFive Code = "5"
)

type bucket struct {
	code    Code
	uz      string
	ru      string
	aliases []string
}

// buckets are ordered from the least to the most experienced.
// Every alias is stored in the form produced by normalizeKey.
var buckets = [...]bucket{
	{
		code: NoExperience,
		uz:   "Tajribasiz",
		ru:   "Без опыта",
		aliases: []string{
			"1", "0", "no_experience", "noexperience", "no experience", "none", "without_experience",
			"tajribasiz", "tajriba talab etilmaydi", "tajriba yo'q",
			"без опыта", "нет опыта", "опыт не требуется",
		},
	},
	{
		code: UpToOneYear,
		uz:   "1 yilgacha",
		ru:   "До 1 года",
		aliases: []string{
			"2", "0-1", "less_than_1", "less_than_one_year", "up_to_1", "lessthan1",
			"1 yilgacha", "1 yildan kam",
			"до 1 года", "менее 1 года", "меньше года",
		},
	},
	{
		code: OneToThree,
		uz:   "1-3 yil",
		ru:   "1-3 года",
		aliases: []string{
			"3", "1-3", "1_3", "between1and3", "between_1_and_3",
			"1-3 yil", "1 yildan 3 yilgacha",
			"1-3 года", "от 1 до 3 лет", "от 1 года до 3 лет",
		},
	},
	{
		code: ThreeToFive,
		uz:   "3-5 yil",
		ru:   "3-5 лет",
		aliases: []string{
			"4", "3-5", "3_5", "between3and5", "between_3_and_5", "between3and6",
			"3-5 yil", "3 yildan 5 yilgacha",
			"3-5 лет", "от 3 до 5 лет", "от 3 до 6 лет",
		},
	},
	{
		code: MoreThanFive,
		uz:   "5 yildan ortiq",
		ru:   "Более 5 лет",
		aliases: []string{
			"5", "5+", "more_than_5", "morethan5", "morethan6", "more_than_6",
			"5+ yil", "5 yildan ortiq", "5 yildan ko'p",
			"5+ лет", "более 5 лет", "более 6 лет",
		},
	},
}

// index maps an alias to the first bucket that declares it.
var index = func() map[string]Code {
	m := make(map[string]Code)
	for _, b := range buckets {
		for _, alias := range b.aliases {
			key := normalizeKey(alias)
			if _, ok := m[key]; !ok {
				m[key] = b.code
			}
		}
	}
	return m
}()

var keyReplacer = strings.NewReplacer(
	"–", "-",
	"—", "-",
	"ʻ", "'",
	"ʼ", "'",
	"‘", "'",
	"’", "'",
	"`", "'",
)

// NormalizeCode returns the canonical bucket for an experience value.
// Strings are matched case-insensitively against the alias table; numbers
// are matched by their decimal form. The second result is false when the
// value is empty or unknown.
func NormalizeCode(value any) (Code, bool) {
	key := normalizeKey(toString(value))
	if key == "" {
		return "", false
	}

	code, ok := index[key]
	return code, ok
}

// ExpandFilterValues returns every spelling known for the bucket of value,
// starting with value itself. Unknown values come back unchanged as the
// single element.
func ExpandFilterValues(value any) []string {
	raw := strings.TrimSpace(toString(value))
	if raw == "" {
		return nil
	}

	code, ok := NormalizeCode(raw)
	if !ok {
		return []string{raw}
	}

	b := lookup(code)
	values := make([]string, 0, len(b.aliases)+1)
	seen := make(map[string]bool, len(b.aliases)+1)

	values = append(values, raw)
	seen[raw] = true

	for _, alias := range b.aliases {
		if seen[alias] {
			continue
		}
		seen[alias] = true
		values = append(values, alias)
	}

	return values
}

// Rank returns the position of code on the experience ladder starting at 1,
// or 0 for an unknown code.
func Rank(code Code) int {
	for i, b := range buckets {
		if b.code == code {
			return i + 1
		}
	}
	return 0
}

// Codes lists the canonical codes in ascending order.
func Codes() []Code {
	codes := make([]Code, 0, len(buckets))
	for _, b := range buckets {
		codes = append(codes, b.code)
	}
	return codes
}

func lookup(code Code) bucket {
	for _, b := range buckets {
		if b.code == code {
			return b
		}
	}
	return buckets[0]
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = keyReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " - ", "-")
	return s
}

func toString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case Code:
		return string(typed)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", typed)
	case float64:
		return formatFloat(typed)
	case float32:
		return formatFloat(float64(typed))
	case fmt.Stringer:
		return typed.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return toString(rv.Elem().Interface())
	}

	return fmt.Sprintf("%v", v)
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
