package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DeadlineFunc resolves a deadline phrase relative to now.
type DeadlineFunc func(phrase string, now time.Time) (time.Time, bool)

var (
	fillerRe     = regexp.MustCompile(`^(?:deadline:?|due(?: date)?:?|by|on|before|until|no later than|around|the)\s+`)
	inRe         = regexp.MustCompile(`^in\s+(\w+)\s+(day|days|week|weeks|month|months)$`)
	slashRe      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?$`)
	monthDayRe   = regexp.MustCompile(`^([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?(?:\s+(\d{4}))?$`)
	dayMonthRe   = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?([a-z]+)(?:\s+(\d{4}))?$`)
	monthOnlyRe  = regexp.MustCompile(`^(?:end of\s+)?([a-z]+)(?:\s+(\d{4}))?$`)
	weekdayRe    = regexp.MustCompile(`^(?:(next|this|coming)\s+)?([a-z]+)$`)
	punctuation  = strings.NewReplacer(",", " ", ".", " ", "!", " ")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var smallNumbers = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// ParseDeadline resolves loose deadline phrases to a calendar date (midnight
// in now's location). Dates without a year that already passed roll over to
// next year. A month on its own means the last day of that month.
func ParseDeadline(phrase string, now time.Time) (time.Time, bool) {
	today := dateOf(now)

	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return time.Time{}, false
	}
	if t, ok := parseNumeric(p, today); ok {
		return t, true
	}

	p = whitespaceRe.ReplaceAllString(strings.TrimSpace(punctuation.Replace(p)), " ")
	for {
		stripped := fillerRe.ReplaceAllString(p, "")
		if stripped == p {
			break
		}
		p = stripped
	}
	if t, ok := parseNumeric(p, today); ok {
		return t, true
	}

	switch p {
	case "today", "tonight", "eod", "end of day":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "next week":
		return today.AddDate(0, 0, 7), true
	case "next month":
		return today.AddDate(0, 1, 0), true
	case "end of week", "eow", "end of the week":
		return nextWeekday(today, time.Friday, true), true
	case "end of month", "eom", "end of the month":
		return lastDayOfMonth(today.Year(), today.Month(), today.Location()), true
	case "end of next month":
		first := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return lastDayOfMonth(first.Year(), first.Month(), first.Location()), true
	case "end of year", "eoy", "end of the year":
		return time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location()), true
	}

	if m := inRe.FindStringSubmatch(p); m != nil {
		n, ok := parseCount(m[1])
		if !ok {
			return time.Time{}, false
		}
		switch m[2] {
		case "day", "days":
			return today.AddDate(0, 0, n), true
		case "week", "weeks":
			return today.AddDate(0, 0, 7*n), true
		default:
			return today.AddDate(0, n, 0), true
		}
	}

	if m := monthDayRe.FindStringSubmatch(p); m != nil {
		if month, ok := months[m[1]]; ok {
			return resolveMonthDay(month, m[2], m[3], today)
		}
	}

	if m := dayMonthRe.FindStringSubmatch(p); m != nil {
		if month, ok := months[m[2]]; ok {
			return resolveMonthDay(month, m[1], m[3], today)
		}
	}

	if m := monthOnlyRe.FindStringSubmatch(p); m != nil {
		if month, ok := months[m[1]]; ok {
			year := today.Year()
			if m[2] != "" {
				year, _ = strconv.Atoi(m[2])
			}
			end := lastDayOfMonth(year, month, today.Location())
			if m[2] == "" && end.Before(today) {
				end = lastDayOfMonth(year+1, month, today.Location())
			}
			return end, true
		}
	}

	if m := weekdayRe.FindStringSubmatch(p); m != nil {
		if wd, ok := weekdays[m[2]]; ok {
			return nextWeekday(today, wd, false), true
		}
	}

	return time.Time{}, false
}

// Resolve parses phrase and falls back to now + fallbackDays when the
// phrase is empty or unrecognised. parsed reports which branch was taken.
func Resolve(parse DeadlineFunc, phrase string, now time.Time, fallbackDays int) (due time.Time, parsed bool) {
	if parse != nil {
		if t, ok := parse(phrase, now); ok {
			return t, true
		}
	}
	return dateOf(now).AddDate(0, 0, fallbackDays), false
}

// parseNumeric handles ISO dates and M/D[/Y].
func parseNumeric(p string, today time.Time) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, strings.ToUpper(p), today.Location()); err == nil {
			return dateOf(t), true
		}
	}
	if m := slashRe.FindStringSubmatch(p); m != nil {
		return parseSlash(m, today)
	}
	return time.Time{}, false
}

func parseSlash(m []string, today time.Time) (time.Time, bool) {
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if m[3] == "" {
		return resolveMonthDay(time.Month(month), m[2], "", today)
	}
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		year += 2000
	}
	return buildDate(year, time.Month(month), day, today.Location())
}

func resolveMonthDay(month time.Month, dayStr, yearStr string, today time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}

	if yearStr != "" {
		year, _ := strconv.Atoi(yearStr)
		return buildDate(year, month, day, today.Location())
	}

	t, ok := buildDate(today.Year(), month, day, today.Location())
	if !ok {
		// Feb 29 outside a leap year: try the next year that has it.
		return buildDate(today.Year()+1, month, day, today.Location())
	}
	if t.Before(today) {
		return buildDate(today.Year()+1, month, day, today.Location())
	}
	return t, true
}

// buildDate rejects dates that time.Date would normalise (e.g. Feb 30).
func buildDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// nextWeekday returns the next wd strictly after today, or today itself when
// includeToday is set and today is wd.
func nextWeekday(today time.Time, wd time.Weekday, includeToday bool) time.Time {
	delta := (int(wd) - int(today.Weekday()) + 7) % 7
	if delta == 0 && !includeToday {
		delta = 7
	}
	return today.AddDate(0, 0, delta)
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

func parseCount(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n, true
	}
	n, ok := smallNumbers[s]
	return n, ok
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
