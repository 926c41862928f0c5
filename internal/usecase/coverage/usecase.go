package coverage

import (
	"context"
	"errors"
	"time"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"
	"sacco-guarantor-service/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	uow           uow.UnitOfWork
	loans         loanDomain.Repository
	guarantees    guaranteeDomain.Repository
	minGuarantors int
}

func NewUsecase(tx uow.UnitOfWork, loans loanDomain.Repository, guarantees guaranteeDomain.Repository, minGuarantors int) *Usecase {
	return &Usecase{uow: tx, loans: loans, guarantees: guarantees, minGuarantors: minGuarantors}
}

type CoverageDTO struct {
	LoanID           string          `json:"loan_id"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	TotalGuaranteed  decimal.Decimal `json:"total_guaranteed"`
	Remaining        decimal.Decimal `json:"remaining"`
	GuarantorCount   int             `json:"guarantor_count"`
	SatisfiesMinimum bool            `json:"satisfies_minimum"`
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	StatusUpdatedAt time.Time       `json:"status_updated_at"`
}

// Compute is a pure query over current guarantee rows: PENDING and
// APPROVED pledges count, DECLINED contribute zero. Remaining may go
// negative when the loan is over-covered.
func (u *Usecase) Compute(ctx context.Context, loanID string) (*CoverageDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	cov, err := u.guarantees.ActiveCoverage(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return buildDTO(l, cov, u.minGuarantors), nil
}

// Submit moves a DRAFT loan to SUBMITTED once coverage is satisfied.
// The loan row is locked so a guarantor removal cannot slip between the
// coverage check and the status write.
func (u *Usecase) Submit(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusDraft {
			return loanDomain.ErrInvalidState
		}
		cov, err := r.Guarantees.ActiveCoverage(ctx, l.ID)
		if err != nil {
			return err
		}
		remaining := l.Amount.Sub(cov.TotalGuaranteed)
		if cov.GuarantorCount < u.minGuarantors || remaining.IsPositive() {
			return &guaranteeDomain.CoverageInsufficientError{
				Shortfall:      remaining,
				GuarantorCount: cov.GuarantorCount,
				MinGuarantors:  u.minGuarantors,
			}
		}

		l.Status = loanDomain.StatusSubmitted
		l.StatusUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &LoanDTO{
			LoanID:          l.LoanID,
			Amount:          l.Amount,
			Status:          string(l.Status),
			StatusUpdatedAt: l.StatusUpdatedAt,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func buildDTO(l *loanDomain.Loan, cov guaranteeDomain.Coverage, minGuarantors int) *CoverageDTO {
	remaining := l.Amount.Sub(cov.TotalGuaranteed)
	return &CoverageDTO{
		LoanID:           l.LoanID,
		LoanAmount:       l.Amount,
		TotalGuaranteed:  cov.TotalGuaranteed,
		Remaining:        remaining,
		GuarantorCount:   cov.GuarantorCount,
		SatisfiesMinimum: cov.GuarantorCount >= minGuarantors && !remaining.IsPositive(),
	}
}
