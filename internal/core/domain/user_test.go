package domain_test

import (
	"errors"
	"testing"

	"github.com/MikeRez0/shoptrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities(t *testing.T) {
	caps := domain.NewCapabilities(domain.CapBuyer, domain.CapAgent)

	assert.True(t, caps.Has(domain.CapAgent))
	assert.False(t, caps.Has(domain.CapStaff))
	assert.True(t, caps.HasAny(domain.CapStaff, domain.CapBuyer))
	assert.Equal(t, []string{"agent", "buyer"}, caps.Names())

	caps = caps.With(domain.CapAgent, false).With(domain.CapStaff, true)
	assert.Equal(t, []string{"buyer", "staff"}, caps.Names())

	assert.Empty(t, domain.Capabilities(0).Names())
}

func TestParseCapability(t *testing.T) {
	for _, name := range []string{"agent", "accountant", "buyer", "logistical", "community_manager", "staff"} {
		c, ok := domain.ParseCapability(name)
		require.True(t, ok, name)
		assert.Equal(t, []string{name}, domain.NewCapabilities(c).Names())
	}

	_, ok := domain.ParseCapability("admin")
	assert.False(t, ok)
}

func TestUser_Verify(t *testing.T) {
	u := &domain.User{VerificationSecret: "abc"}
	u.Verify()

	assert.True(t, u.IsActive)
	assert.True(t, u.IsVerified)
	assert.Empty(t, u.VerificationSecret)
}

func TestRefError(t *testing.T) {
	err := domain.RefError("shop", domain.ErrDataNotFound)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "shop", verr.Field)

	other := errors.New("boom")
	assert.Equal(t, other, domain.RefError("shop", other))
}
