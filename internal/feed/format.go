package feed

import (
	"fmt"
	"time"
)

// Fallback strings for unparseable date/time values. These match what the
// dashboard has always displayed, so operators recognize them.
const (
	DateUnknown = "日付不明"
	TimeUnknown = "--:--"
)

// weekdayKanji maps time.Weekday (Sunday = 0) to its kanji.
var weekdayKanji = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// dateLayouts are the timestamp shapes the feeds have been seen emitting.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date string as "2024年12月25日(水)".
// Unparseable or empty input yields DateUnknown.
func FormatDate(s string) string {
	if s == "" {
		return DateUnknown
	}
	t, ok := parseDate(s)
	if !ok {
		return DateUnknown
	}
	return fmt.Sprintf("%d年%d月%d日(%s)",
		t.Year(), int(t.Month()), t.Day(), weekdayKanji[t.Weekday()])
}

// FormatTime extracts the HH:MM portion of a timestamp, e.g. "14:30".
// Unparseable or empty input yields TimeUnknown.
func FormatTime(s string) string {
	if s == "" {
		return TimeUnknown
	}
	t, ok := parseDate(s)
	if !ok {
		return TimeUnknown
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// FormatChartDate renders a compact "M/D" axis label, e.g. "12/25".
// Unparseable input is passed through so the axis still shows something
// identifiable rather than a blank.
func FormatChartDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
