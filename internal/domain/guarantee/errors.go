package guarantee

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("guarantee not found")
	ErrInvalidAmount     = errors.New("guarantee amount must be greater than zero")
	ErrDuplicate         = errors.New("member already guarantees this loan")
	ErrSelfGuarantee     = errors.New("a member may not guarantee their own loan")
	ErrInvalidLoanState  = errors.New("loan does not accept guarantor changes")
	ErrInvalidState      = errors.New("guarantee is no longer pending")
	ErrNotAuthorized     = errors.New("only the named guarantor may resolve this guarantee")
	ErrAlreadyResolved   = errors.New("guarantee already approved or declined")
	ErrSignatureRequired = errors.New("a signature is required to approve")
	ErrReasonRequired    = errors.New("a reason is required to decline")
	ErrTenureNotMet      = errors.New("guarantor must be a member for at least 12 months")
	ErrRetryableConflict = errors.New("concurrent guarantee update, please retry")
)

// InsufficientCapacityError is a business-rule rejection; it carries the
// guarantor's actual available capacity so the caller can offer a
// corrected amount without a second round trip.
type InsufficientCapacityError struct {
	AvailableCapacity decimal.Decimal
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("requested amount exceeds available capacity of %s", e.AvailableCapacity.StringFixed(2))
}

// CoverageInsufficientError rejects a loan submission whose pledged
// guarantees do not yet cover the loan.
type CoverageInsufficientError struct {
	Shortfall      decimal.Decimal
	GuarantorCount int
	MinGuarantors  int
}

func (e *CoverageInsufficientError) Error() string {
	if e.GuarantorCount < e.MinGuarantors {
		return fmt.Sprintf("loan needs at least %d guarantors, has %d", e.MinGuarantors, e.GuarantorCount)
	}
	return fmt.Sprintf("guarantees fall short of the loan amount by %s", e.Shortfall.StringFixed(2))
}
