package eligibility

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Pure capacity/tenure rules. The evaluator and the guarantee write path
// both go through these so search-time and commit-time checks cannot
// drift apart; callers fetch the aggregates, these functions only decide.

// TenureMet reports whether the member has held membership for at least
// tenureMonths as of now. The tenure gate is never waived.
func TenureMet(joiningDate, now time.Time, tenureMonths int) bool {
	return !joiningDate.AddDate(0, tenureMonths, 0).After(now)
}

// RawCapacity is total shares minus active exposure; it may be negative
// when a member's share balance dropped after pledges were made.
func RawCapacity(totalShares, exposure decimal.Decimal) decimal.Decimal {
	return totalShares.Sub(exposure)
}

// ReportedCapacity clamps the usable capacity at zero for display.
func ReportedCapacity(totalShares, exposure decimal.Decimal) decimal.Decimal {
	if c := RawCapacity(totalShares, exposure); c.IsPositive() {
		return c
	}
	return decimal.Zero
}

type Decision struct {
	Eligible          bool
	Reason            string
	AvailableCapacity decimal.Decimal
}

// Decide applies the tenure gate and, when proposed is positive, the
// capacity check. A zero proposed amount evaluates general eligibility
// only (search mode).
func Decide(joiningDate, now time.Time, tenureMonths int, totalShares, exposure, proposed decimal.Decimal) Decision {
	reported := ReportedCapacity(totalShares, exposure)
	if !TenureMet(joiningDate, now, tenureMonths) {
		return Decision{
			Eligible:          false,
			Reason:            fmt.Sprintf("must be a member for at least %d months", tenureMonths),
			AvailableCapacity: reported,
		}
	}
	if proposed.IsPositive() && proposed.GreaterThan(RawCapacity(totalShares, exposure)) {
		return Decision{
			Eligible:          false,
			Reason:            fmt.Sprintf("requested amount exceeds available capacity of %s", reported.StringFixed(2)),
			AvailableCapacity: reported,
		}
	}
	return Decision{Eligible: true, AvailableCapacity: reported}
}
