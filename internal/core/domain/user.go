package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// Capability is a single role flag of a user.
type Capability uint16

const (
	CapAgent Capability = 1 << iota
	CapAccountant
	CapBuyer
	CapLogistical
	CapCommunityManager
	CapStaff
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapAgent, "agent"},
	{CapAccountant, "accountant"},
	{CapBuyer, "buyer"},
	{CapLogistical, "logistical"},
	{CapCommunityManager, "community_manager"},
	{CapStaff, "staff"},
}

func ParseCapability(name string) (Capability, bool) {
	for _, cn := range capabilityNames {
		if cn.name == name {
			return cn.cap, true
		}
	}
	return 0, false
}

// Capabilities is a set of Capability flags.
type Capabilities uint16

func NewCapabilities(caps ...Capability) Capabilities {
	var c Capabilities
	for _, cp := range caps {
		c |= Capabilities(cp)
	}
	return c
}

func (c Capabilities) Has(cp Capability) bool {
	return c&Capabilities(cp) != 0
}

// HasAny reports whether at least one of caps is in the set.
func (c Capabilities) HasAny(caps ...Capability) bool {
	for _, cp := range caps {
		if c.Has(cp) {
			return true
		}
	}
	return false
}

func (c Capabilities) With(cp Capability, on bool) Capabilities {
	if on {
		return c | Capabilities(cp)
	}
	return c &^ Capabilities(cp)
}

// Names lists the set flags in declaration order.
func (c Capabilities) Names() []string {
	names := make([]string, 0)
	for _, cn := range capabilityNames {
		if c.Has(cn.cap) {
			names = append(names, cn.name)
		}
	}
	return names
}

type User struct {
	ID                    uint64
	Email                 string
	Name                  string
	LastName              string
	HomeAddress           string
	PhoneNumber           string
	Capabilities          Capabilities
	AgentProfit           decimal.Decimal
	IsActive              bool
	IsVerified            bool
	SentVerificationEmail bool
	VerificationSecret    string
	PasswordSecret        string
	Password              string
	DateJoined            time.Time
}

// Verify activates the account after the email was confirmed.
func (u *User) Verify() {
	u.IsVerified = true
	u.IsActive = true
	u.VerificationSecret = ""
}

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID       uint64
	Capabilities Capabilities
}

type UserPatch struct {
	Name         *string
	LastName     *string
	HomeAddress  *string
	PhoneNumber  *string
	Capabilities *Capabilities
	AgentProfit  *decimal.Decimal
}
