package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
)

func idParam(ctx *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

// money converts a JSON number into a decimal.
func money(field string, f float64) (decimal.Decimal, error) {
	d, err := decimal.NewFromFloat64(f)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "is not a valid amount")
	}
	return d, nil
}

func moneyPtr(field string, f *float64) (*decimal.Decimal, error) {
	if f == nil {
		return nil, nil
	}
	d, err := money(field, *f)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// idList parses a comma separated list of ids.
func idList(field, raw string) ([]uint64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(field, fmt.Sprintf("%q is not an id", p))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
