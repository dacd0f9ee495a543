package domain

import (
	"path/filepath"
	"strings"

	"github.com/govalues/decimal"
)

type Shop struct {
	Name string `validate:"required,max=100"`
	Link string `validate:"required,url"`
}

type BuyingAccount struct {
	ID          uint64
	AccountName string `validate:"required,max=100"`
}

// Rates holds the global constants used by cost derivation.
type Rates struct {
	ChangeRate   decimal.Decimal
	CostPerPound decimal.Decimal
}

type EvidenceImage struct {
	PublicID string
	URL      string
}

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// CheckImageName accepts only .png, .jpg and .jpeg file names.
func CheckImageName(name string) error {
	if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return &ValidationError{Field: "image", Message: ErrBadImageExtension.Error(), Err: ErrBadImageExtension}
	}
	return nil
}
