package guarantee

import (
	"context"
	"errors"
	"strings"
	"time"

	guaranteeDomain "sacco-guarantor-service/internal/domain/guarantee"
	loanDomain "sacco-guarantor-service/internal/domain/loan"
	memberDomain "sacco-guarantor-service/internal/domain/member"
	"sacco-guarantor-service/internal/domain/uow"
	"sacco-guarantor-service/internal/usecase/eligibility"
	"sacco-guarantor-service/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	uow          uow.UnitOfWork
	members      memberDomain.Repository
	loans        loanDomain.Repository
	guarantees   guaranteeDomain.Repository
	tenureMonths int
}

func NewUsecase(tx uow.UnitOfWork, members memberDomain.Repository, loans loanDomain.Repository, guarantees guaranteeDomain.Repository, tenureMonths int) *Usecase {
	return &Usecase{uow: tx, members: members, loans: loans, guarantees: guarantees, tenureMonths: tenureMonths}
}

// AddGuarantor re-validates every precondition inside a transaction that
// holds the guarantor's member row lock, so two concurrent adds for the
// same member cannot both pass the capacity check against stale
// exposure. A serialization conflict is retried once, then surfaced as
// ErrRetryableConflict.
func (u *Usecase) AddGuarantor(ctx context.Context, in AddGuarantorInput) (*GuaranteeDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, guaranteeDomain.ErrInvalidAmount
	}

	dto, err := u.addOnce(ctx, in)
	if err != nil && isRetryableConflict(err) {
		dto, err = u.addOnce(ctx, in)
		if err != nil && isRetryableConflict(err) {
			return nil, guaranteeDomain.ErrRetryableConflict
		}
	}
	return dto, err
}

func (u *Usecase) addOnce(ctx context.Context, in AddGuarantorInput) (*GuaranteeDTO, error) {
	var dto *GuaranteeDTO

	err := u.uow.WithinGuarantorTx(ctx, in.GuarantorMemberID, func(r uow.Repos, m *memberDomain.Member) error {
		l, err := r.Loans.GetByLoanID(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}
		if !l.GuaranteeOpen() {
			return guaranteeDomain.ErrInvalidLoanState
		}
		if l.MemberID == m.ID {
			return guaranteeDomain.ErrSelfGuarantee
		}

		if _, err := r.Guarantees.GetByLoanAndGuarantor(ctx, l.ID, m.ID); err == nil {
			return guaranteeDomain.ErrDuplicate
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !eligibility.TenureMet(m.JoiningDate, time.Now().UTC(), u.tenureMonths) {
			return guaranteeDomain.ErrTenureNotMet
		}
		shares, err := r.Members.TotalShares(ctx, m.ID)
		if err != nil {
			return err
		}
		exposure, err := r.Guarantees.ActiveExposure(ctx, m.ID)
		if err != nil {
			return err
		}
		if in.Amount.GreaterThan(eligibility.RawCapacity(shares, exposure)) {
			return &guaranteeDomain.InsufficientCapacityError{
				AvailableCapacity: eligibility.ReportedCapacity(shares, exposure),
			}
		}

		g := &guaranteeDomain.Guarantee{
			GuaranteeID:       id.NewID32(),
			LoanID:            l.ID,
			GuarantorMemberID: m.ID,
			Amount:            in.Amount,
			Status:            guaranteeDomain.StatusPending,
		}
		if err := r.Guarantees.Create(ctx, g); err != nil {
			// composite unique index backs up the duplicate check
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return guaranteeDomain.ErrDuplicate
			}
			return err
		}

		dto = toDTO(g, l.LoanID, m.MemberID)
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// guarantor member row missing
			return nil, memberDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// RemoveGuarantor deletes a pledge only while it is still PENDING and
// the loan still accepts guarantor changes. Resolved guarantees are
// historical and immutable.
func (u *Usecase) RemoveGuarantor(ctx context.Context, loanID, guarantorMemberID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if !l.GuaranteeOpen() {
			return guaranteeDomain.ErrInvalidLoanState
		}
		m, err := r.Members.GetByMemberID(ctx, guarantorMemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return memberDomain.ErrNotFound
			}
			return err
		}
		if _, err := r.Guarantees.GetByLoanAndGuarantor(ctx, l.ID, m.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return guaranteeDomain.ErrNotFound
			}
			return err
		}
		rows, err := r.Guarantees.DeletePending(ctx, l.ID, m.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return guaranteeDomain.ErrInvalidState
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// loan row missing at lock time
		return loanDomain.ErrNotFound
	}
	return err
}

// Approve resolves a PENDING guarantee to APPROVED. The update is
// conditional on status, so of two concurrent resolvers the loser gets
// ErrAlreadyResolved instead of overwriting a terminal state.
func (u *Usecase) Approve(ctx context.Context, in ResolveInput) (*GuaranteeDTO, error) {
	g, err := u.authorize(ctx, in.GuaranteeID, in.ActingMemberID)
	if err != nil {
		return nil, err
	}
	if g.Status != guaranteeDomain.StatusPending {
		return nil, guaranteeDomain.ErrAlreadyResolved
	}
	if strings.TrimSpace(in.SignatureKey) == "" {
		return nil, guaranteeDomain.ErrSignatureRequired
	}

	rows, err := u.guarantees.MarkApproved(ctx, g.GuaranteeID, in.SignatureKey, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, guaranteeDomain.ErrAlreadyResolved
	}
	return u.Get(ctx, g.GuaranteeID)
}

// Decline mirrors Approve with a mandatory reason.
func (u *Usecase) Decline(ctx context.Context, in ResolveInput) (*GuaranteeDTO, error) {
	g, err := u.authorize(ctx, in.GuaranteeID, in.ActingMemberID)
	if err != nil {
		return nil, err
	}
	if g.Status != guaranteeDomain.StatusPending {
		return nil, guaranteeDomain.ErrAlreadyResolved
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, guaranteeDomain.ErrReasonRequired
	}

	rows, err := u.guarantees.MarkDeclined(ctx, g.GuaranteeID, in.Reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, guaranteeDomain.ErrAlreadyResolved
	}
	return u.Get(ctx, g.GuaranteeID)
}

func (u *Usecase) Get(ctx context.Context, guaranteeID string) (*GuaranteeDTO, error) {
	g, err := u.guarantees.GetByGuaranteeID(ctx, guaranteeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guaranteeDomain.ErrNotFound
		}
		return nil, err
	}
	l, err := u.loans.GetByID(ctx, g.LoanID)
	if err != nil {
		return nil, err
	}
	m, err := u.members.GetByID(ctx, g.GuarantorMemberID)
	if err != nil {
		return nil, err
	}
	return toDTO(g, l.LoanID, m.MemberID), nil
}

// ListForLoan returns all guarantees on a loan, resolved or not.
func (u *Usecase) ListForLoan(ctx context.Context, loanID string) ([]GuaranteeDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	gs, err := u.guarantees.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]GuaranteeDTO, 0, len(gs))
	for i := range gs {
		m, err := u.members.GetByID(ctx, gs[i].GuarantorMemberID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDTO(&gs[i], l.LoanID, m.MemberID))
	}
	return out, nil
}

// authorize loads the guarantee and checks the acting member is the
// named guarantor. An unknown actor gets ErrNotAuthorized, not a 404,
// so guarantee IDs cannot be probed.
func (u *Usecase) authorize(ctx context.Context, guaranteeID, actingMemberID string) (*guaranteeDomain.Guarantee, error) {
	g, err := u.guarantees.GetByGuaranteeID(ctx, guaranteeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guaranteeDomain.ErrNotFound
		}
		return nil, err
	}
	actor, err := u.members.GetByMemberID(ctx, actingMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guaranteeDomain.ErrNotAuthorized
		}
		return nil, err
	}
	if actor.ID != g.GuarantorMemberID {
		return nil, guaranteeDomain.ErrNotAuthorized
	}
	return g, nil
}

func toDTO(g *guaranteeDomain.Guarantee, loanID, memberID string) *GuaranteeDTO {
	return &GuaranteeDTO{
		GuaranteeID:       g.GuaranteeID,
		LoanID:            loanID,
		GuarantorMemberID: memberID,
		Amount:            g.Amount,
		Status:            string(g.Status),
		SignatureKey:      g.SignatureKey,
		DeclineReason:     g.DeclineReason,
		ApprovedAt:        g.ApprovedAt,
		DeclinedAt:        g.DeclinedAt,
		CreatedAt:         g.CreatedAt,
	}
}

// isRetryableConflict matches the lock/serialization failures the
// backing engines report when the member-row lock and an insert collide.
func isRetryableConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "Lock wait timeout") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
