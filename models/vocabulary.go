package models

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
)

// StatusVocabulary enumerates every free-text status and kind the analytics
// queries match on. All comparisons go through Normalize, so values are
// stored lower-cased.
type StatusVocabulary struct {
	SuccessfulStatuses    []string `yaml:"successful_statuses" default:"[\"success\",\"successful\",\"succeeded\",\"completed\",\"complete\",\"confirmed\",\"paid\"]"`
	VerifiedStatuses      []string `yaml:"verified_statuses" default:"[\"approved\",\"approved_stage2\",\"verified\",\"completed\",\"complete\"]"`
	AdminRoles            []string `yaml:"admin_roles" default:"[\"admin\",\"super_admin\"]"`
	DepositTypes          []string `yaml:"deposit_types" default:"[\"deposit\",\"wallet_funding\"]"`
	ReturnTypes           []string `yaml:"return_types" default:"[\"return\",\"payout\",\"roi_payout\"]"`
	ConfirmedPoolStatuses []string `yaml:"confirmed_pool_investment_statuses" default:"[\"confirmed\"]"`
	CountedLegacyStatuses []string `yaml:"counted_legacy_investment_statuses" default:"[\"active\",\"completed\"]"`
	OpenPoolStatuses      []string `yaml:"open_pool_statuses" default:"[\"open\"]"`
	FundedPoolStatuses    []string `yaml:"funded_pool_statuses" default:"[\"funded\"]"`
	ClosedPoolStatuses    []string `yaml:"closed_pool_statuses" default:"[\"closed\"]"`
}

// DefaultStatusVocabulary returns the built-in synonym sets.
func DefaultStatusVocabulary() *StatusVocabulary {
	v := &StatusVocabulary{}
	defaults.MustSet(v)
	v.Normalize()
	return v
}

// NormalizeStatus trims and lower-cases a stored status or kind.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize lower-cases and de-duplicates every set in place.
func (v *StatusVocabulary) Normalize() {
	for _, set := range v.sets() {
		*set.values = normalizeSet(*set.values)
	}
}

// Validate reports the first empty set. An empty set would silently zero a metric.
func (v *StatusVocabulary) Validate() error {
	for _, set := range v.sets() {
		if len(*set.values) == 0 {
			return fmt.Errorf("status vocabulary: %s must not be empty", set.name)
		}
	}
	return nil
}

func (v *StatusVocabulary) IsSuccessful(status string) bool {
	return containsNormalized(v.SuccessfulStatuses, status)
}

func (v *StatusVocabulary) IsVerifiedStatus(status string) bool {
	return containsNormalized(v.VerifiedStatuses, status)
}

func (v *StatusVocabulary) IsAdminRole(role string) bool {
	return containsNormalized(v.AdminRoles, role)
}

func (v *StatusVocabulary) IsDepositType(kind string) bool {
	return containsNormalized(v.DepositTypes, kind)
}

func (v *StatusVocabulary) IsReturnType(kind string) bool {
	return containsNormalized(v.ReturnTypes, kind)
}

func (v *StatusVocabulary) IsConfirmedPoolInvestment(status string) bool {
	return containsNormalized(v.ConfirmedPoolStatuses, status)
}

func (v *StatusVocabulary) IsCountedLegacyInvestment(status string) bool {
	return containsNormalized(v.CountedLegacyStatuses, status)
}

// PoolBucket maps a pool status to open, funded or closed. Unknown statuses
// return "".
func (v *StatusVocabulary) PoolBucket(status string) string {
	switch {
	case containsNormalized(v.OpenPoolStatuses, status):
		return PoolStatusOpen
	case containsNormalized(v.FundedPoolStatuses, status):
		return PoolStatusFunded
	case containsNormalized(v.ClosedPoolStatuses, status):
		return PoolStatusClosed
	}
	return ""
}

// IsVerifiedUser applies the platform verification rule: admins, users with
// the explicit flag, and users whose KYC status is an approved synonym.
func (v *StatusVocabulary) IsVerifiedUser(u *User) bool {
	return v.IsAdminRole(u.Role) || u.IsVerified || v.IsVerifiedStatus(u.KYCStatus)
}

type namedSet struct {
	name   string
	values *[]string
}

func (v *StatusVocabulary) sets() []namedSet {
	return []namedSet{
		{"successful_statuses", &v.SuccessfulStatuses},
		{"verified_statuses", &v.VerifiedStatuses},
		{"admin_roles", &v.AdminRoles},
		{"deposit_types", &v.DepositTypes},
		{"return_types", &v.ReturnTypes},
		{"confirmed_pool_investment_statuses", &v.ConfirmedPoolStatuses},
		{"counted_legacy_investment_statuses", &v.CountedLegacyStatuses},
		{"open_pool_statuses", &v.OpenPoolStatuses},
		{"funded_pool_statuses", &v.FundedPoolStatuses},
		{"closed_pool_statuses", &v.ClosedPoolStatuses},
	}
}

func normalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		n := NormalizeStatus(value)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func containsNormalized(set []string, value string) bool {
	n := NormalizeStatus(value)
	if n == "" {
		return false
	}
	for _, s := range set {
		if s == n {
			return true
		}
	}
	return false
}
