package experience

import (
	"fmt"
	"math"
	"strings"
)

// Lang selects the language of display labels.
type Lang string

const (
	Uzbek   Lang = "uz"
	Russian Lang = "ru"
)

// ParseLang maps user input to a supported language. Anything that is not
// recognizably Russian is Uzbek.
func ParseLang(s string) Lang {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ru", "rus", "russian", "ru-ru", "ру", "рус":
		return Russian
	default:
		return Uzbek
	}
}

// Label renders experience for display. A positive years value wins over
// the bucket and is rounded to whole years. Unknown values render as the
// "no experience" label.
func Label(value any, years *float64, lang Lang) string {
	lang = ParseLang(string(lang))

	if years != nil && *years > 0 && !math.IsInf(*years, 0) {
		n := int(math.Round(*years))
		if lang == Russian {
			return fmt.Sprintf("%d лет", n)
		}
		return fmt.Sprintf("%d yil", n)
	}

	b := buckets[0]
	if code, ok := NormalizeCode(value); ok {
		b = lookup(code)
	}

	if lang == Russian {
		return b.ru
	}
	return b.uz
}
