package guarantee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Coverage is the aggregate the submission workflow consults: active
// pledge total and guarantor count for one loan.
type Coverage struct {
	TotalGuaranteed decimal.Decimal
	GuarantorCount  int
}

type Repository interface {
	Create(ctx context.Context, g *Guarantee) error
	GetByGuaranteeID(ctx context.Context, guaranteeID string) (*Guarantee, error)
	GetByLoanAndGuarantor(ctx context.Context, loanID, guarantorMemberID uint64) (*Guarantee, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]Guarantee, error)

	// ActiveExposure sums PENDING/APPROVED guarantee amounts for the
	// member, excluding loans whose exposure is retired (CLOSED/REJECTED).
	ActiveExposure(ctx context.Context, guarantorMemberID uint64) (decimal.Decimal, error)

	// ActiveCoverage sums PENDING/APPROVED guarantees on the loan.
	ActiveCoverage(ctx context.Context, loanID uint64) (Coverage, error)

	// MarkApproved / MarkDeclined are conditional writes guarded by
	// status = PENDING; they return the number of rows updated so the
	// caller can detect a lost resolve race (0 rows).
	MarkApproved(ctx context.Context, guaranteeID, signatureKey string, at time.Time) (int64, error)
	MarkDeclined(ctx context.Context, guaranteeID, reason string, at time.Time) (int64, error)

	// DeletePending removes the (loan, guarantor) row only while it is
	// still PENDING; returns rows deleted.
	DeletePending(ctx context.Context, loanID, guarantorMemberID uint64) (int64, error)
}
