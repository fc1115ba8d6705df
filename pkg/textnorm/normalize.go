// Package textnorm canonicalises free text (mostly Hebrew) before it is
// compared against CRM names.
package textnorm

import (
	"strings"
	"unicode/utf8"
)

var replacer = strings.NewReplacer(
	"'", "",
	`"`, "",
	"״", "",
	"׳", "",
	"`", "",
	"-", " ",
	"_", " ",
	".", " ",
)

// Normalize lowercases text, drops quote marks (including Hebrew geresh and
// gershayim), turns - _ . into spaces and collapses whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(replacer.Replace(strings.ToLower(text))), " ")
}

var finals = strings.NewReplacer("ך", "כ", "ם", "מ", "ן", "נ", "ף", "פ", "ץ", "צ")

// FoldFinals replaces the Hebrew final letters (ך ם ן ף ץ) with their
// regular forms, so "ממתין" and "ממתינות" share a prefix.
func FoldFinals(text string) string {
	return finals.Replace(text)
}

// Words returns the normalized words of text that are at least two
// characters long.
func Words(text string) []string {
	fields := strings.Fields(Normalize(text))
	res := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) > 1 {
			res = append(res, f)
		}
	}
	return res
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// Hebrew
		"מצא", "חפש", "תמצא", "תחפש", "לי", "את", "ה", "של", "על", "אצל", "עבור",
		"לקוח", "לקוחה", "לקוחות", "מה", "מי", "איפה", "איך", "למה",
		"נתונים", "פרטים", "מידע", "פרויקטים", "פרוייקטים",
		"שעות", "זמן", "עבודה", "משימות", "חשבוניות",
		// English
		"find", "search", "show", "me", "the", "of", "for", "about",
		"client", "customer", "clients", "info", "details", "who", "what", "is",
	} {
		stopWords[w] = struct{}{}
	}
}

const trailingPunct = "?!,;:"

// ExtractEntityName strips query scaffolding ("find me", "client", "details
// of" ...) from a query and returns what is left, which is usually a name.
// Stop words are removed only as whole words so names that merely contain
// one ("מהנדס" contains "מה") survive intact.
func ExtractEntityName(query string) string {
	fields := strings.Fields(Normalize(query))
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, trailingPunct)
		if f == "" {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
