package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
	suffixCountRe = regexp.MustCompile(`^([\d.]+)\s*([KMBkmb])$`)
)

// ParseCount turns a source-supplied count into an integer. Accepted forms:
// plain decimal strings ("12345", with optional commas), suffixed
// human-readable strings ("1.2M", "543K"), and strings with a trailing unit
// word ("1.2M views"). Anything unparseable yields 0.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Drop a trailing unit word ("views", "subscribers").
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ",", "")

	if m := suffixCountRe.FindStringSubmatch(s); m != nil {
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		switch strings.ToUpper(m[2]) {
		case "K":
			f *= 1e3
		case "M":
			f *= 1e6
		case "B":
			f *= 1e9
		}
		return int64(f)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int64(f)
	}
	return 0
}

// FormatCount renders n as a compact human-readable string with an optional
// unit word, e.g. FormatCount(1234567, "views") == "1.2M views". Thresholds
// are fixed at thousand/million/billion with one decimal place; an exact
// multiple drops the ".0".
func FormatCount(n int64, unit string) string {
	var s string
	switch {
	case n >= 1e9:
		s = trimZero(float64(n)/1e9) + "B"
	case n >= 1e6:
		s = trimZero(float64(n)/1e6) + "M"
	case n >= 1e3:
		s = trimZero(float64(n)/1e3) + "K"
	default:
		s = strconv.FormatInt(n, 10)
	}
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func trimZero(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// ParseDurationSeconds accepts either a clock-style duration ("4:13",
// "1:02:03") or an ISO-8601 duration ("PT5M30S") and returns total seconds.
// Unparseable input yields 0.
func ParseDurationSeconds(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.HasPrefix(s, "P") {
		m := isoDurationRe.FindStringSubmatch(s)
		if m == nil {
			return 0
		}
		days, _ := strconv.ParseInt(m[1], 10, 64)
		hours, _ := strconv.ParseInt(m[2], 10, 64)
		mins, _ := strconv.ParseInt(m[3], 10, 64)
		secs, _ := strconv.ParseInt(m[4], 10, 64)
		return days*86400 + hours*3600 + mins*60 + secs
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0
		}
		var total int64
		for _, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil || n < 0 {
				return 0
			}
			total = total*60 + n
		}
		return total
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
		return n
	}
	return 0
}

// FormatDuration renders seconds canonically: "m:ss" under an hour,
// "h:mm:ss" from one hour up. Zero and negative inputs render "0:00".
func FormatDuration(sec int64) string {
	if sec <= 0 {
		return "0:00"
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// RelativeTime renders how long ago t was relative to now, using the coarsest
// applicable unit. Under one minute it returns "Just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "Just now"
	}

	switch {
	case d >= 365*24*time.Hour:
		return plural(int(d/(365*24*time.Hour)), "year")
	case d >= 30*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month")
	case d >= 7*24*time.Hour:
		return plural(int(d/(7*24*time.Hour)), "week")
	case d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
