package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatThaiDate(t *testing.T) {
	d := time.Date(2025, time.August, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15/08/2568", FormatThaiDate(d))

	// single-digit day and month are zero padded
	d = time.Date(1999, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02/01/2542", FormatThaiDate(d))
}

func TestTodayThaiMatchesLocalTime(t *testing.T) {
	stamp := TodayThai()
	assert.Len(t, stamp, 10)
	assert.Equal(t, FormatThaiDate(GetLocalTime()), stamp)
}
