package mysql

import (
	"context"
	"time"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var activeStatuses = []guaranteeDomain.Status{
	guaranteeDomain.StatusPending,
	guaranteeDomain.StatusApproved,
}

type GuaranteeRepository struct{ db *gorm.DB }

func NewGuaranteeRepository(db *gorm.DB) *GuaranteeRepository { return &GuaranteeRepository{db: db} }

func (r *GuaranteeRepository) Create(ctx context.Context, g *guaranteeDomain.Guarantee) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GuaranteeRepository) GetByGuaranteeID(ctx context.Context, guaranteeID string) (*guaranteeDomain.Guarantee, error) {
	var out guaranteeDomain.Guarantee
	res := r.db.WithContext(ctx).Where("guarantee_id = ?", guaranteeID).First(&out)
	return &out, res.Error
}

func (r *GuaranteeRepository) GetByLoanAndGuarantor(ctx context.Context, loanID, guarantorMemberID uint64) (*guaranteeDomain.Guarantee, error) {
	var out guaranteeDomain.Guarantee
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND guarantor_member_id = ?", loanID, guarantorMemberID).
		First(&out)
	return &out, res.Error
}

func (r *GuaranteeRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]guaranteeDomain.Guarantee, error) {
	var out []guaranteeDomain.Guarantee
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// ActiveExposure sums the member's PENDING/APPROVED pledges on loans
// whose exposure has not been retired (loan not CLOSED/REJECTED).
func (r *GuaranteeRepository) ActiveExposure(ctx context.Context, guarantorMemberID uint64) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&guaranteeDomain.Guarantee{}).
		Select("COALESCE(SUM(guarantees.amount), 0)").
		Joins("JOIN loans ON loans.id = guarantees.loan_id AND loans.deleted_at IS NULL").
		Where("guarantees.guarantor_member_id = ?", guarantorMemberID).
		Where("guarantees.status IN ?", activeStatuses).
		Where("loans.status NOT IN ?", []loanDomain.Status{loanDomain.StatusClosed, loanDomain.StatusRejected}).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GuaranteeRepository) ActiveCoverage(ctx context.Context, loanID uint64) (guaranteeDomain.Coverage, error) {
	var (
		total decimal.Decimal
		count int64
	)
	row := r.db.WithContext(ctx).
		Model(&guaranteeDomain.Guarantee{}).
		Select("COALESCE(SUM(amount), 0), COUNT(*)").
		Where("loan_id = ?", loanID).
		Where("status IN ?", activeStatuses).
		Row()
	if err := row.Scan(&total, &count); err != nil {
		return guaranteeDomain.Coverage{}, err
	}
	return guaranteeDomain.Coverage{TotalGuaranteed: total, GuarantorCount: int(count)}, nil
}

// MarkApproved is a conditional write: only a PENDING row is updated, so
// of two concurrent resolvers exactly one sees rows=1.
func (r *GuaranteeRepository) MarkApproved(ctx context.Context, guaranteeID, signatureKey string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&guaranteeDomain.Guarantee{}).
		Where("guarantee_id = ? AND status = ?", guaranteeID, guaranteeDomain.StatusPending).
		Updates(map[string]any{
			"status":        guaranteeDomain.StatusApproved,
			"signature_key": signatureKey,
			"approved_at":   at,
		})
	return res.RowsAffected, res.Error
}

func (r *GuaranteeRepository) MarkDeclined(ctx context.Context, guaranteeID, reason string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&guaranteeDomain.Guarantee{}).
		Where("guarantee_id = ? AND status = ?", guaranteeID, guaranteeDomain.StatusPending).
		Updates(map[string]any{
			"status":         guaranteeDomain.StatusDeclined,
			"decline_reason": reason,
			"declined_at":    at,
		})
	return res.RowsAffected, res.Error
}

// DeletePending removes hard, not soft: a tombstone would keep occupying
// ux_guarantees_loan_guarantor and block the pair from re-pledging.
func (r *GuaranteeRepository) DeletePending(ctx context.Context, loanID, guarantorMemberID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("loan_id = ? AND guarantor_member_id = ? AND status = ?",
			loanID, guarantorMemberID, guaranteeDomain.StatusPending).
		Delete(&guaranteeDomain.Guarantee{})
	return res.RowsAffected, res.Error
}
