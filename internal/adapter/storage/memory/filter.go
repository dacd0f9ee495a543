package memory

import (
	"strings"
	"time"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/govalues/decimal"
)

func contains(pattern *string, value string) bool {
	return pattern == nil || strings.Contains(strings.ToLower(value), strings.ToLower(*pattern))
}

func equal[T comparable](want *T, value T) bool {
	return want == nil || *want == value
}

func inRange(lo, hi *decimal.Decimal, value decimal.Decimal) bool {
	if lo != nil && value.Cmp(*lo) < 0 {
		return false
	}
	if hi != nil && value.Cmp(*hi) > 0 {
		return false
	}
	return true
}

func inDays(initial, final *time.Time, t time.Time) bool {
	if initial != nil && t.Before(domain.DayStart(*initial)) {
		return false
	}
	if final != nil && !t.Before(domain.NextDay(*final)) {
		return false
	}
	return true
}

func sameDay(day *time.Time, t time.Time) bool {
	return day == nil || inDays(day, day, t)
}
