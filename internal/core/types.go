package core

import (
	"fmt"
	"strings"
)

// Period is the horizon a set of performance statistics covers.
type Period string

const (
	Period7D  Period = "7d"
	Period30D Period = "30d"
	Period90D Period = "90d"
	Period1Y  Period = "1y"
)

// Periods lists the supported horizons, shortest first.
var Periods = []Period{Period7D, Period30D, Period90D, Period1Y}

// IsValid reports whether p is one of the supported horizons.
func (p Period) IsValid() bool {
	for _, known := range Periods {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePeriod normalizes user input ("30D", " 1Y ") into a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}

// SubjectKind distinguishes tracked actors (funds, whales, traders) from bare wallets.
type SubjectKind string

const (
	KindActor  SubjectKind = "actor"
	KindWallet SubjectKind = "wallet"
)

// IsValid reports whether k is a known subject kind.
func (k SubjectKind) IsValid() bool {
	return k == KindActor || k == KindWallet
}
