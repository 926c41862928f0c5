package eligibility

import (
	"context"
	"errors"
	"time"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"
	memberDomain "sacco-guarantor-service/internal/domain/member"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const searchLimit = 20

type Usecase struct {
	members      memberDomain.Repository
	loans        loanDomain.Repository
	guarantees   guaranteeDomain.Repository
	tenureMonths int
}

func NewUsecase(members memberDomain.Repository, loans loanDomain.Repository, guarantees guaranteeDomain.Repository, tenureMonths int) *Usecase {
	return &Usecase{members: members, loans: loans, guarantees: guarantees, tenureMonths: tenureMonths}
}

// Evaluate is the read-path check. The guarantee write path re-runs the
// same rules inside its transaction; this result must not be trusted at
// commit time.
func (u *Usecase) Evaluate(ctx context.Context, memberID string, proposed decimal.Decimal) (*EvaluationDTO, error) {
	m, err := u.members.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberDomain.ErrNotFound
		}
		return nil, err
	}

	shares, err := u.members.TotalShares(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	exposure, err := u.guarantees.ActiveExposure(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	d := Decide(m.JoiningDate, time.Now().UTC(), u.tenureMonths, shares, exposure, proposed)
	return &EvaluationDTO{
		MemberID:          m.MemberID,
		Eligible:          d.Eligible,
		Reason:            d.Reason,
		AvailableCapacity: d.AvailableCapacity,
	}, nil
}

// Search lists candidate guarantors for a loan, excluding the borrower
// and members already guaranteeing it, each annotated with capacity.
func (u *Usecase) Search(ctx context.Context, loanID, query string) ([]CandidateDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}

	existing, err := u.guarantees.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	taken := make(map[uint64]struct{}, len(existing))
	for _, g := range existing {
		taken[g.GuarantorMemberID] = struct{}{}
	}

	candidates, err := u.members.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]CandidateDTO, 0, len(candidates))
	for i := range candidates {
		m := &candidates[i]
		if m.ID == l.MemberID {
			continue // borrower cannot guarantee their own loan
		}
		if _, ok := taken[m.ID]; ok {
			continue
		}
		shares, err := u.members.TotalShares(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		exposure, err := u.guarantees.ActiveExposure(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		d := Decide(m.JoiningDate, now, u.tenureMonths, shares, exposure, decimal.Zero)
		out = append(out, CandidateDTO{
			MemberID:          m.MemberID,
			MemberNumber:      m.MemberNumber,
			Name:              m.FullName(),
			AvailableCapacity: d.AvailableCapacity,
			IsEligible:        d.Eligible && d.AvailableCapacity.IsPositive(),
		})
	}
	return out, nil
}
