package rate

import (
	"fmt"
	"fxconvert/internal/domain"
	"math"
	"strconv"
	"time"
)

const TimestampLayout = "2006-01-02 15:04:05"

// FormatValue renders two decimals, or six when the magnitude is below 0.01.
func FormatValue(v float64) string {
	if math.Abs(v) < 0.01 {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func FormatResult(r domain.ConversionResult) string {
	return fmt.Sprintf("%.2f %s = %s %s", r.Amount, r.From, FormatValue(r.Value), r.To)
}

func FormatUpdated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "Last updated: " + t.Format(TimestampLayout)
}
