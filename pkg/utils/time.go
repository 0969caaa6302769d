package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/anuban-lab/sarabun/pkg/logutils"
)

const (
	defaultTimeZone = "Asia/Bangkok"

	// Offset between the common era and the Buddhist era.
	buddhistEraOffset = 543
)

func timeZone() string {
	if tz := os.Getenv("SARABUN_TIMEZONE"); tz != "" {
		return tz
	}
	return defaultTimeZone
}

func GetLocalTime() time.Time {
	loc, err := time.LoadLocation(timeZone())
	if err != nil {
		logutils.Log.Errorf("Failed to load location: %v", err)
		return time.Now()
	}
	return time.Now().In(loc)
}

// FormatThaiDate renders t as dd/MM/yyyy with the year in the Buddhist era,
// the display convention used for all record and signature date stamps.
// The stamp is display-only; nothing orders or compares these strings.
func FormatThaiDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year()+buddhistEraOffset)
}

// TodayThai is the current date stamp in the local zone.
func TodayThai() string {
	return FormatThaiDate(GetLocalTime())
}
