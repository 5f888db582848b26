package domain

import (
	"fmt"
	"time"
)

// MonthOption is a selectable month in the listing filters.
type MonthOption struct {
	Value int
	Label string
}

// Months lists January..December.
var Months = func() []MonthOption {
	opts := make([]MonthOption, 12)
	for i := range opts {
		m := time.Month(i + 1)
		opts[i] = MonthOption{Value: int(m), Label: m.String()}
	}
	return opts
}()

// MonthName returns the English name of month m, or "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}

// FormatDate renders t as "Dec 15, 2024".
func FormatDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}

// FormatReadTime renders a read time as "8 min read".
func FormatReadTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}
