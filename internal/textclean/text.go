package textclean

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MinTextLength is the shortest cleaned text worth keeping.
const MinTextLength = 5

const blockSelector = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, table, section, article"

// sectionLabels are headings that vacancy sources leave behind with a dash
// placeholder when the employer did not fill the section in.
var sectionLabels = []string{
	"ish sharoitlari",
	"sharoitlari",
	"sharoitlar",
	"talablar",
	"vazifalar",
	"majburiyatlar",
	"biz taklif qilamiz",
	"требования",
	"обязанности",
	"условия работы",
	"условия",
	"мы предлагаем",
}

var (
	labelPattern   = `(?i)(` + strings.Join(sectionLabels, "|") + `)[ \t]*:`
	emptySectionRe = regexp.MustCompile(labelPattern + `[ \t]*(?:[-–—][ \t]*)+`)
	labelStartRe   = regexp.MustCompile(`^[ \t]*` + labelPattern)
	tagRe          = regexp.MustCompile(`<[^>]*>`)
)

// CleanJobText turns a vacancy description into plain text. Entities are
// decoded, markup is removed with block elements kept as line breaks, and
// sections that only hold dash placeholders are dropped. Results shorter
// than MinTextLength runes are returned as "".
func CleanJobText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = html.UnescapeString(text)
	text = stripTags(text)
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = collapseWhitespace(text)
	text = removeEmptySections(text)
	text = collapseWhitespace(text)

	if utf8.RuneCountInString(text) < MinTextLength {
		return ""
	}

	return text
}

func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return tagRe.ReplaceAllString(s, " ")
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	return doc.Text()
}

// collapseWhitespace squeezes runs of spaces inside lines and keeps at most
// one blank line between paragraphs.
func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// removeEmptySections drops "Label: - -" when nothing but the end of the
// line, the end of the text or the next label follows the dashes. A dash
// followed by text on the same line is a list item and stays.
func removeEmptySections(text string) string {
	matches := emptySectionRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0

	for _, m := range matches {
		rest := text[m[1]:]
		if rest != "" && !strings.HasPrefix(rest, "\n") && !labelStartRe.MatchString(rest) {
			continue
		}
		b.WriteString(text[last:m[0]])
		last = m[1]
	}
	b.WriteString(text[last:])

	return b.String()
}
