package repository

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/govalues/decimal"
)

// Each helper returns an empty condition for a nil filter value.

func ilike(column string, pattern *string) sq.Sqlizer {
	if pattern == nil {
		return sq.And{}
	}
	return sq.ILike{column: "%" + *pattern + "%"}
}

func eq[T any](column string, value *T) sq.Sqlizer {
	if value == nil {
		return sq.And{}
	}
	return sq.Eq{column: *value}
}

func between(column string, lo, hi *decimal.Decimal) sq.Sqlizer {
	cond := sq.And{}
	if lo != nil {
		cond = append(cond, sq.GtOrEq{column: *lo})
	}
	if hi != nil {
		cond = append(cond, sq.LtOrEq{column: *hi})
	}
	return cond
}

func inDays(column string, initial, final *time.Time) sq.Sqlizer {
	cond := sq.And{}
	if initial != nil {
		cond = append(cond, sq.GtOrEq{column: domain.DayStart(*initial)})
	}
	if final != nil {
		cond = append(cond, sq.Lt{column: domain.NextDay(*final)})
	}
	return cond
}

func sameDay(column string, day *time.Time) sq.Sqlizer {
	if day == nil {
		return sq.And{}
	}
	return inDays(column, day, day)
}

func columns(cols []string) string {
	return strings.Join(cols, ", ")
}
