package viewlog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// companionNames is the fixed set of companion markers recognized in
// free-text notes, checked case-insensitively on word boundaries.
var companionNames = []string{
	"mom",
	"dad",
	"brother",
	"sister",
	"family",
	"friends",
}

var companionPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(companionNames))
	for _, name := range companionNames {
		patterns[name] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return patterns
}()

// companionFromNotes returns the first recognized companion name found
// in the notes, or "" when none matches.
func companionFromNotes(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	for _, name := range companionNames {
		if companionPatterns[name].MatchString(notes) {
			return name
		}
	}
	return ""
}

// notesDatePattern matches an M.D.Y or M.D.YY date substring, e.g.
// "3.14.21" or "12.25.2019".
var notesDatePattern = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2}|\d{4})\b`)

// dateFromNotes extracts the first M.D.Y date substring from the notes
// and normalizes it to YYYY-MM-DD. Returns "" when no date is present
// or its components are out of range.
func dateFromNotes(notes string) string {
	match := notesDatePattern.FindStringSubmatch(notes)
	if match == nil {
		return ""
	}
	return formatDate(match[1], match[2], match[3])
}

// normalizeDate converts a completion-date field in the same M.D.Y
// format to YYYY-MM-DD, passing through empty input.
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	match := notesDatePattern.FindStringSubmatch(value)
	if match == nil {
		return ""
	}
	return formatDate(match[1], match[2], match[3])
}

func formatDate(monthStr, dayStr, yearStr string) string {
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	// Two-digit years pivot at 50: 21 -> 2021, 87 -> 1987.
	if len(yearStr) == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
