package guaranteemock

import (
	"context"
	"time"

	domain "sacco-guarantor-service/internal/domain/guarantee"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies guarantee.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, g *domain.Guarantee) error
	GetByGuaranteeIDFn      func(ctx context.Context, guaranteeID string) (*domain.Guarantee, error)
	GetByLoanAndGuarantorFn func(ctx context.Context, loanID, guarantorMemberID uint64) (*domain.Guarantee, error)
	ListByLoanIDFn          func(ctx context.Context, loanID uint64) ([]domain.Guarantee, error)
	ActiveExposureFn        func(ctx context.Context, guarantorMemberID uint64) (decimal.Decimal, error)
	ActiveCoverageFn        func(ctx context.Context, loanID uint64) (domain.Coverage, error)
	MarkApprovedFn          func(ctx context.Context, guaranteeID, signatureKey string, at time.Time) (int64, error)
	MarkDeclinedFn          func(ctx context.Context, guaranteeID, reason string, at time.Time) (int64, error)
	DeletePendingFn         func(ctx context.Context, loanID, guarantorMemberID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, g *domain.Guarantee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) GetByGuaranteeID(ctx context.Context, guaranteeID string) (*domain.Guarantee, error) {
	if m.GetByGuaranteeIDFn != nil {
		return m.GetByGuaranteeIDFn(ctx, guaranteeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanAndGuarantor(ctx context.Context, loanID, guarantorMemberID uint64) (*domain.Guarantee, error) {
	if m.GetByLoanAndGuarantorFn != nil {
		return m.GetByLoanAndGuarantorFn(ctx, loanID, guarantorMemberID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Guarantee, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ActiveExposure(ctx context.Context, guarantorMemberID uint64) (decimal.Decimal, error) {
	if m.ActiveExposureFn != nil {
		return m.ActiveExposureFn(ctx, guarantorMemberID)
	}
	return decimal.Zero, nil
}

func (m *Repo) ActiveCoverage(ctx context.Context, loanID uint64) (domain.Coverage, error) {
	if m.ActiveCoverageFn != nil {
		return m.ActiveCoverageFn(ctx, loanID)
	}
	return domain.Coverage{TotalGuaranteed: decimal.Zero}, nil
}

func (m *Repo) MarkApproved(ctx context.Context, guaranteeID, signatureKey string, at time.Time) (int64, error) {
	if m.MarkApprovedFn != nil {
		return m.MarkApprovedFn(ctx, guaranteeID, signatureKey, at)
	}
	return 0, nil
}

func (m *Repo) MarkDeclined(ctx context.Context, guaranteeID, reason string, at time.Time) (int64, error) {
	if m.MarkDeclinedFn != nil {
		return m.MarkDeclinedFn(ctx, guaranteeID, reason, at)
	}
	return 0, nil
}

func (m *Repo) DeletePending(ctx context.Context, loanID, guarantorMemberID uint64) (int64, error) {
	if m.DeletePendingFn != nil {
		return m.DeletePendingFn(ctx, loanID, guarantorMemberID)
	}
	return 0, nil
}
