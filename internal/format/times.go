package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/bvggrabber/bvg-cli/internal/model"
)

const (
	FullFormat = model.FullFormat
	HourFormat = model.HourFormat
	DateFormat = model.DateFormat
)

// FullTime renders t as "2006-01-02 15:04:05".
func FullTime(t time.Time) string { return t.Format(FullFormat) }

// HourTime renders t as "15:04".
func HourTime(t time.Time) string { return t.Format(HourFormat) }

// Date renders t as "02.01.2006".
func Date(t time.Time) string { return t.Format(DateFormat) }

// Duration renders remaining seconds for humans: "now", "5 min", "1h 05 min". Departures
// in the past render with a leading minus.
func Duration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	minutes := seconds / 60
	switch {
	case minutes == 0:
		return "now"
	case minutes < 60:
		return fmt.Sprintf("%s%d min", sign, minutes)
	default:
		return fmt.Sprintf("%s%dh %02d min", sign, minutes/60, minutes%60)
	}
}

// SimplifyLine drops the "Bus  " prefix the real-time board puts in front of bus lines.
func SimplifyLine(line string) string {
	return strings.TrimSpace(strings.Replace(line, "Bus  ", "", 1))
}

var locationPrefixes = []string{"S+U ", "S ", "U "}

// SimplifyLocation shortens station names for narrow tables.
func SimplifyLocation(location string) string {
	location = strings.Replace(location, " (Berlin)", "", 1)
	for _, prefix := range locationPrefixes {
		if strings.HasPrefix(location, prefix) {
			location = strings.TrimPrefix(location, prefix)
			break
		}
	}
	return strings.TrimSpace(location)
}

// IntToBin renders i as a binary string zero-padded to length.
func IntToBin(i, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("invalid length %d", length)
	}
	if i < 0 {
		return "", fmt.Errorf("invalid value %d", i)
	}
	return fmt.Sprintf("%0*b", length, i), nil
}
