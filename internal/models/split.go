package models

import "maps"

// SplitMode selects how a transaction's amount is divided among beneficiaries.
type SplitMode string

const (
	// SplitEqual divides the amount evenly among beneficiaries.
	SplitEqual SplitMode = "equal"
	// SplitShares divides the amount proportionally to per-beneficiary weights.
	SplitShares SplitMode = "shares"
	// SplitExact assigns each beneficiary an explicit amount.
	SplitExact SplitMode = "exact"
)

// IsValid reports whether m is one of the known split modes.
func (m SplitMode) IsValid() bool {
	switch m {
	case SplitEqual, SplitShares, SplitExact:
		return true
	}
	return false
}

// Split is the split mode together with the data that mode needs.
// Shares is only set for SplitShares and Exact only for SplitExact.
type Split struct {
	Mode SplitMode

	// Shares maps beneficiary name to a positive weight.
	Shares map[string]float64

	// Exact maps beneficiary name to the amount that beneficiary owes.
	Exact map[string]float64
}

// Clone returns a copy of s that shares no maps with it.
func (s Split) Clone() Split {
	return Split{
		Mode:   s.Mode,
		Shares: maps.Clone(s.Shares),
		Exact:  maps.Clone(s.Exact),
	}
}
